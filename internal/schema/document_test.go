package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocumentDecode(t *testing.T) {
	src := `
name: process
title: Process
type: group
description: Process fields.
reusable:
  top_level: true
  order: 2
  expected:
    - at: process
      as: parent
    - source
fields:
  - name: args
    type: keyword
    level: extended
    normalize: [array]
    description: Process arguments.
  - name: pid
    type: long
    required: true
    index: false
  - name: env
    type: object
    object_type: keyword
  - name: broken
    type: object
    object_type: ""
`

	var doc Document

	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	assert.Equal(t, "process", doc.Name)
	assert.False(t, doc.IsRoot())
	assert.True(t, doc.TopLevel())
	assert.Equal(t, 2, doc.Reusable.Order)
	assert.Equal(t, []ReuseExpectation{{At: "process", As: "parent"}, {At: "source"}}, doc.ReuseTargets())

	require.Len(t, doc.Fields, 4)
	assert.True(t, doc.Fields[0].IsList())
	assert.Equal(t, LevelExtended, doc.Fields[0].EffectiveLevel())
	assert.True(t, doc.Fields[1].IsRequired())
	assert.True(t, doc.Fields[1].IsUnindexed())
	assert.Equal(t, LevelCore, doc.Fields[1].EffectiveLevel())

	require.NotNil(t, doc.Fields[2].ObjectType)
	assert.Equal(t, KindKeyword, *doc.Fields[2].ObjectType)

	require.NotNil(t, doc.Fields[3].ObjectType)
	assert.Equal(t, FieldKind(""), *doc.Fields[3].ObjectType)
}

func TestDocumentTopLevelDefaults(t *testing.T) {
	no := false

	assert.True(t, (&Document{}).TopLevel())
	assert.True(t, (&Document{Reusable: &Reusable{}}).TopLevel())
	assert.False(t, (&Document{Reusable: &Reusable{TopLevel: &no}}).TopLevel())
}

func TestReuseExpectationRejectsSequence(t *testing.T) {
	var r ReuseExpectation

	err := yaml.Unmarshal([]byte(`[a, b]`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string or a mapping")
}

func TestReuseExpectationMarshal(t *testing.T) {
	out, err := yaml.Marshal([]ReuseExpectation{{At: "user"}, {At: "process", As: "parent"}})
	require.NoError(t, err)
	assert.Equal(t, "- user\n- at: process\n  as: parent\n", string(out))
}

func TestFieldKindClassification(t *testing.T) {
	assert.True(t, KindIP.IsStringLike())
	assert.False(t, KindLong.IsStringLike())
	assert.True(t, KindGeoPoint.Valid())
	assert.False(t, FieldKind("scaled_float").Valid())
}
