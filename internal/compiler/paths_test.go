package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecs-shapegen/internal/schema"
)

func TestGroupFieldsOrdersShortestPrefixFirst(t *testing.T) {
	groups, err := groupFields([]schema.Field{
		field("request.body.bytes", schema.KindLong),
		field("version", schema.KindKeyword),
		field("response.status_code", schema.KindLong),
		field("request.method", schema.KindKeyword),
		field("request.body.content", schema.KindText),
	})
	require.NoError(t, err)

	var prefixes [][]string
	for _, g := range groups {
		prefixes = append(prefixes, g.prefix)
	}

	assert.Equal(t, [][]string{
		{},
		{"request"},
		{"response"},
		{"request", "body"},
	}, prefixes)

	body := groups[3]
	assert.Equal(t, []string{"request.body.bytes", "request.body.content"}, body.paths)
	assert.Equal(t, "bytes", body.fields[0].Name)
	assert.Equal(t, "content", body.fields[1].Name)
}

func TestGroupFieldsRejectsEmptySegments(t *testing.T) {
	for _, name := range []string{"", "a..b", "a.", "a.__"} {
		_, err := groupFields([]schema.Field{field(name, schema.KindKeyword)})
		assert.ErrorIsf(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestComposeID(t *testing.T) {
	assert.Equal(t, id("Http"), composeID(id("Http"), nil))
	assert.Equal(t, id("HttpRequestBody"), composeID(id("Http"), []string{"request", "body"}))
	assert.Equal(t, id("HttpUserAgent"), composeID(id("Http"), []string{"user_agent"}))
}

func TestStructuralMember(t *testing.T) {
	m := structuralMember(id("Record"), "code_signature", id("CodeSignature"))
	assert.Equal(t, "codeSignature", m.Name)
	assert.Equal(t, id("Record"), m.Container)

	name, ok := m.Traits.String("smithy.api#jsonName")
	require.True(t, ok)
	assert.Equal(t, "code_signature", name)

	plain := structuralMember(id("Record"), "http", id("Http"))
	assert.Nil(t, plain.Traits)
}
