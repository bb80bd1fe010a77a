package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

func boolPtr(b bool) *bool { return &b }

func member(name string) shape.Member {
	return shape.Member{Container: shape.NewID("ecs", "Http"), Name: name, Target: shape.String}
}

func TestDocumentationDoesNotOverwrite(t *testing.T) {
	doc := &schema.Document{Description: "  HTTP fields.\n"}
	s := Documentation{}.UpdateStructure(shape.NewStructure(shape.NewID("ecs", "Http")), doc)

	got, ok := s.Traits.String(shape.TraitDocumentation)
	require.True(t, ok)
	assert.Equal(t, "HTTP fields.", got)

	again := Documentation{}.UpdateStructure(s, &schema.Document{Description: "other"})
	got, _ = again.Traits.String(shape.TraitDocumentation)
	assert.Equal(t, "HTTP fields.", got)
}

func TestDocumentationSkipsEmptyDescription(t *testing.T) {
	m := Documentation{}.UpdateMember(member("method"), &schema.Field{Name: "method", Description: "  "})
	assert.False(t, m.Traits.Has(shape.TraitDocumentation))
}

func TestRequired(t *testing.T) {
	m := Required{}.UpdateMember(member("method"), &schema.Field{Name: "method", Required: boolPtr(true)})
	assert.True(t, m.Traits.Has(shape.TraitRequired))

	m = Required{}.UpdateMember(member("method"), &schema.Field{Name: "method", Required: boolPtr(false)})
	assert.False(t, m.Traits.Has(shape.TraitRequired))
}

func TestJSONName(t *testing.T) {
	m := JSONName{}.UpdateMember(member("statusCode"), &schema.Field{Name: "status_code"})
	name, ok := m.Traits.String(shape.TraitJSONName)
	require.True(t, ok)
	assert.Equal(t, "status_code", name)

	m = JSONName{}.UpdateMember(member("method"), &schema.Field{Name: "method"})
	assert.False(t, m.Traits.Has(shape.TraitJSONName))
}

func TestTagsAccumulate(t *testing.T) {
	field := &schema.Field{Name: "body", Level: schema.LevelExtended, Index: boolPtr(false)}
	pre := member("body").WithTags("custom:tag")

	m := Tags{Prefix: DefaultTagPrefix}.UpdateMember(pre, field)
	assert.Equal(t, []string{"custom:tag", "ecs:extended", "ecs:unindexed"}, m.Traits.Tags())

	core := Tags{Prefix: DefaultTagPrefix}.UpdateMember(member("id"), &schema.Field{Name: "id"})
	assert.Nil(t, core.Traits)
}

func TestPipelineAppliesInOrder(t *testing.T) {
	field := &schema.Field{
		Name:        "status_code",
		Description: "Status.",
		Required:    boolPtr(true),
		Level:       schema.LevelExtended,
	}

	m := Defaults().ApplyMember(member("statusCode"), field)

	assert.Equal(t, []string{
		shape.TraitDocumentation, shape.TraitJSONName, shape.TraitRequired, shape.TraitTags,
	}, m.Traits.Names())
	assert.Equal(t, []string{"documentation", "required", "jsonName", "tags"}, Defaults().Names())
}

func TestEmptyPipelineIsIdentity(t *testing.T) {
	s := shape.NewStructure(shape.NewID("ecs", "Http"))
	assert.Same(t, s, Pipeline{}.ApplyStructure(s, &schema.Document{Description: "x"}))
}
