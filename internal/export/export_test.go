package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"

	"ecs-shapegen/internal/shape"
)

func sampleIndex() *shape.Index {
	ns := func(name string) shape.ID { return shape.NewID("ecs", name) }

	idx := shape.NewIndex()

	root := shape.NewStructure(ns("Record")).
		WithMember(shape.Member{Name: "http", Target: ns("Http")})

	http := shape.NewStructure(ns("Http")).
		WithTrait(shape.TraitDocumentation, "HTTP fields.").
		WithMember(shape.Member{Name: "method", Target: ns("HttpMethod")}.
			WithTrait(shape.TraitRequired, struct{}{})).
		WithMember(shape.Member{Name: "statusCode", Target: ns("HttpStatusCodeList")}.
			WithTrait(shape.TraitJSONName, "status_code").
			WithTags("ecs:extended")).
		WithMember(shape.Member{Name: "headers", Target: ns("HttpHeaders")})

	idx.Put(root)
	idx.Put(http)
	idx.Put(shape.NewList(ns("HttpStatusCodeList"), shape.Long))
	idx.Put(shape.NewMap(ns("HttpHeaders"), shape.String))
	idx.Put(&shape.Enum{ShapeID: ns("HttpMethod"), Variants: []shape.EnumVariant{
		{Tag: "GET", Value: "get", Documentation: "Read."},
		{Tag: "POST", Value: "post"},
	}})

	return idx
}

func TestSmithyJSON(t *testing.T) {
	data, err := SmithyJSON(sampleIndex())
	require.NoError(t, err)

	v, err := fastjson.ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "1.0", string(v.GetStringBytes("smithy")))

	shapes := v.GetObject("shapes")
	require.NotNil(t, shapes)
	assert.Equal(t, 5, shapes.Len())

	http := v.Get("shapes", "ecs#Http")
	assert.Equal(t, "structure", string(http.GetStringBytes("type")))
	assert.Equal(t, "HTTP fields.", string(http.GetStringBytes("traits", "smithy.api#documentation")))
	assert.Equal(t, "ecs#HttpMethod", string(http.GetStringBytes("members", "method", "target")))
	assert.Equal(t, 0, http.GetObject("members", "method", "traits", "smithy.api#required").Len())
	assert.Equal(t, "status_code", string(http.GetStringBytes("members", "statusCode", "traits", "smithy.api#jsonName")))
	assert.Equal(t, "ecs:extended", string(http.GetStringBytes("members", "statusCode", "traits", "smithy.api#tags", "0")))

	list := v.Get("shapes", "ecs#HttpStatusCodeList")
	assert.Equal(t, "list", string(list.GetStringBytes("type")))
	assert.Equal(t, "smithy.api#Long", string(list.GetStringBytes("member", "target")))

	m := v.Get("shapes", "ecs#HttpHeaders")
	assert.Equal(t, "smithy.api#String", string(m.GetStringBytes("key", "target")))
	assert.Equal(t, "smithy.api#String", string(m.GetStringBytes("value", "target")))

	enum := v.Get("shapes", "ecs#HttpMethod")
	assert.Equal(t, "string", string(enum.GetStringBytes("type")))

	defs := enum.GetArray("traits", "smithy.api#enum")
	require.Len(t, defs, 2)
	assert.Equal(t, "get", string(defs[0].GetStringBytes("value")))
	assert.Equal(t, "GET", string(defs[0].GetStringBytes("name")))
	assert.Equal(t, "Read.", string(defs[0].GetStringBytes("documentation")))
	assert.False(t, defs[1].Exists("documentation"))
}

func TestSmithyJSONIsDeterministic(t *testing.T) {
	first, err := SmithyJSON(sampleIndex())
	require.NoError(t, err)

	for range 5 {
		again, err := SmithyJSON(sampleIndex())
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestSmithyJSONRejectsUnknownTraitValues(t *testing.T) {
	idx := shape.NewIndex()
	idx.Put(shape.NewStructure(shape.NewID("ecs", "Record")).WithTrait("custom#weird", make(chan int)))

	_, err := SmithyJSON(idx)
	assert.ErrorContains(t, err, "unsupported trait value chan int")
}

func TestWriteSmithyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSmithyJSON(&buf, sampleIndex()))
	assert.True(t, fastjson.Exists(buf.Bytes(), "shapes", "ecs#Record"))
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleIndex(), shape.NewID("ecs", "Record")))

	var got struct {
		Root   string `yaml:"root"`
		Shapes []struct {
			ID      string `yaml:"id"`
			Type    string `yaml:"type"`
			Members []struct {
				Name   string         `yaml:"name"`
				Target string         `yaml:"target"`
				Traits map[string]any `yaml:"traits"`
			} `yaml:"members"`
			Variants []struct {
				Tag   string `yaml:"tag"`
				Value string `yaml:"value"`
			} `yaml:"variants"`
		} `yaml:"shapes"`
	}

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ecs#Record", got.Root)
	require.Len(t, got.Shapes, 5)

	var ids, types []string
	for _, s := range got.Shapes {
		ids = append(ids, s.ID)
		types = append(types, s.Type)
	}

	assert.Equal(t, []string{"ecs#Http", "ecs#HttpHeaders", "ecs#HttpMethod", "ecs#HttpStatusCodeList", "ecs#Record"}, ids)
	assert.Equal(t, []string{"structure", "map", "enum", "list", "structure"}, types)

	http := got.Shapes[0]
	require.Len(t, http.Members, 3)
	assert.Equal(t, "headers", http.Members[0].Name)
	assert.Equal(t, map[string]any{}, http.Members[1].Traits["smithy.api#required"])
	assert.Equal(t, "GET", got.Shapes[2].Variants[0].Tag)
}
