package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

func TestMapFieldScalars(t *testing.T) {
	tests := []struct {
		kind schema.FieldKind
		want shape.ID
	}{
		{schema.KindKeyword, shape.String},
		{schema.KindText, shape.String},
		{schema.KindIP, shape.String},
		{schema.KindDate, shape.Timestamp},
		{schema.KindBoolean, shape.Boolean},
		{schema.KindInteger, shape.Integer},
		{schema.KindLong, shape.Long},
		{schema.KindFloat, shape.Float},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := field("x", tt.kind)
			got, err := mapField(id("HttpX"), &f, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.target)
			assert.Empty(t, got.shapes)
		})
	}
}

func TestMapFieldUnrecognizedKind(t *testing.T) {
	f := field("x", "nested")
	_, err := mapField(id("HttpX"), &f, false)
	assert.ErrorIs(t, err, ErrUnrecognizedKind)
}

func TestMapFieldEnum(t *testing.T) {
	f := field("x", schema.KindKeyword)
	f.AllowedValues = []schema.AllowedValue{
		{Name: "a", Description: "first"},
		{Name: "b b", Description: " second "},
		{Name: "C-c", Description: "third"},
	}

	got, err := mapField(id("HttpX"), &f, false)
	require.NoError(t, err)
	require.Len(t, got.shapes, 1)
	assert.Equal(t, id("HttpX"), got.target)

	enum, ok := got.shapes[0].(*shape.Enum)
	require.True(t, ok)
	assert.Equal(t, []shape.EnumVariant{
		{Tag: "A", Value: "a", Documentation: "first"},
		{Tag: "B_B", Value: "b b", Documentation: "second"},
		{Tag: "C_C", Value: "C-c", Documentation: "third"},
	}, enum.Variants)
}

func TestMapFieldEnumTagCollision(t *testing.T) {
	f := field("x", schema.KindText)
	f.AllowedValues = []schema.AllowedValue{{Name: "a b"}, {Name: "a-b"}}

	_, err := mapField(id("HttpX"), &f, false)
	assert.ErrorIs(t, err, shape.ErrDuplicateIdentifier)
}

func TestMapFieldList(t *testing.T) {
	f := field("ids", schema.KindLong)

	got, err := mapField(id("HttpIds"), &f, true)
	require.NoError(t, err)
	assert.Equal(t, id("HttpIdsList"), got.target)
	require.Len(t, got.shapes, 1)

	list, ok := got.shapes[0].(*shape.List)
	require.True(t, ok)
	assert.Equal(t, shape.Long, list.Element())
	assert.NotEqual(t, list.ID(), list.Element())
}

func TestMapFieldEnumList(t *testing.T) {
	f := field("kinds", schema.KindKeyword)
	f.AllowedValues = []schema.AllowedValue{{Name: "alert"}}

	got, err := mapField(id("EventKinds"), &f, true)
	require.NoError(t, err)
	require.Len(t, got.shapes, 2)
	assert.Equal(t, id("EventKinds"), got.shapes[0].ID())
	assert.Equal(t, id("EventKindsList"), got.target)
	assert.Equal(t, id("EventKinds"), got.shapes[1].(*shape.List).Element())
}

func TestMapFieldObject(t *testing.T) {
	t.Run("open structure", func(t *testing.T) {
		f := field("labels", schema.KindObject)
		got, err := mapField(id("BaseLabels"), &f, false)
		require.NoError(t, err)
		assert.Equal(t, []shape.Shape{shape.NewStructure(id("BaseLabels"))}, got.shapes)
	})

	t.Run("map of keyword", func(t *testing.T) {
		f := field("env", schema.KindObject)
		f.ObjectType = kindPtr(schema.KindKeyword)

		got, err := mapField(id("ProcessEnv"), &f, false)
		require.NoError(t, err)
		require.Len(t, got.shapes, 1)

		m, ok := got.shapes[0].(*shape.Map)
		require.True(t, ok)
		assert.Equal(t, shape.String, m.Key.Target)
		assert.Equal(t, shape.String, m.Value.Target)
	})

	t.Run("map of enum", func(t *testing.T) {
		f := field("states", schema.KindObject)
		f.ObjectType = kindPtr(schema.KindKeyword)
		f.AllowedValues = []schema.AllowedValue{{Name: "up"}, {Name: "down"}}

		got, err := mapField(id("HostStates"), &f, false)
		require.NoError(t, err)
		require.Len(t, got.shapes, 2)
		assert.Equal(t, id("HostStatesMember"), got.shapes[0].ID())
		assert.Equal(t, id("HostStatesMember"), got.shapes[1].(*shape.Map).Value.Target)
	})

	t.Run("blank object_type", func(t *testing.T) {
		f := field("env", schema.KindObject)
		f.ObjectType = kindPtr("")

		_, err := mapField(id("ProcessEnv"), &f, false)
		assert.ErrorIs(t, err, ErrMissingNestedKind)
	})

	t.Run("unknown object_type", func(t *testing.T) {
		f := field("env", schema.KindObject)
		f.ObjectType = kindPtr("nested")

		_, err := mapField(id("ProcessEnv"), &f, false)
		assert.ErrorIs(t, err, ErrUnrecognizedKind)
	})
}

func TestMapFieldGeoPoint(t *testing.T) {
	f := field("location", schema.KindGeoPoint)

	got, err := mapField(id("GeoLocation"), &f, false)
	require.NoError(t, err)
	require.Len(t, got.shapes, 1)

	point := got.shapes[0].(*shape.Structure)
	assert.Equal(t, []string{"lat", "lon"}, point.MemberNames())
	assert.Equal(t, shape.Double, point.Members["lat"].Target)
	assert.Equal(t, shape.Double, point.Members["lon"].Target)
}
