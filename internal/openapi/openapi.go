// Package openapi projects a compiled shape index onto OpenAPI 3 component
// schemas, so the record model can be consumed by JSON Schema tooling.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/getkin/kin-openapi/openapi3"

	"ecs-shapegen/internal/shape"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.3"

// TagsExtension carries member and structure tags.
const TagsExtension = "x-ecs-tags"

const componentPrefix = "#/components/schemas/"

// Info describes the generated document.
type Info struct {
	Title   string
	Version string
}

// Document builds an OpenAPI document holding one component schema per
// non-prelude shape and validates it.
func Document(ctx context.Context, idx *shape.Index, info Info) (*openapi3.T, error) {
	components, err := Components(idx)
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI:    Version,
		Info:       &openapi3.Info{Title: info.Title, Version: info.Version},
		Paths:      openapi3.Paths{},
		Components: components,
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("generated OpenAPI document is invalid: %w", err)
	}

	return doc, nil
}

// Write renders doc as indented JSON.
func Write(w io.Writer, doc *openapi3.T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Components converts every non-prelude shape into a component schema.
// References between components carry both the $ref and the resolved value.
func Components(idx *shape.Index) (*openapi3.Components, error) {
	shapes := idx.Shapes()
	schemas := make(openapi3.Schemas, len(shapes))
	values := make(map[shape.ID]*openapi3.Schema, len(shapes))

	for _, s := range shapes {
		if s.ID().IsPrelude() {
			continue
		}

		if _, dup := schemas[s.ID().Name]; dup {
			return nil, fmt.Errorf("%w: component %s", shape.ErrDuplicateIdentifier, s.ID().Name)
		}

		v := openapi3.NewSchema()
		values[s.ID()] = v
		schemas[s.ID().Name] = openapi3.NewSchemaRef("", v)
	}

	c := converter{idx: idx, values: values}

	for _, s := range shapes {
		if v, ok := values[s.ID()]; ok {
			if err := c.fill(v, s); err != nil {
				return nil, err
			}
		}
	}

	return &openapi3.Components{Schemas: schemas}, nil
}

type converter struct {
	idx    *shape.Index
	values map[shape.ID]*openapi3.Schema
}

func (c converter) fill(v *openapi3.Schema, s shape.Shape) error {
	switch s := s.(type) {
	case *shape.Structure:
		v.Type = openapi3.TypeObject
		v.Properties = make(openapi3.Schemas, len(s.Members))
		applyTraits(v, s.Traits)

		for _, name := range s.MemberNames() {
			m := s.Members[name]

			prop, err := c.ref(m.Target)
			if err != nil {
				return fmt.Errorf("%s: %w", m.ID(), err)
			}

			wire := wireName(m)
			if len(m.Traits) > 0 {
				prop = annotated(prop, m.Traits)
			}

			v.Properties[wire] = prop

			if m.Traits.Has(shape.TraitRequired) {
				v.Required = append(v.Required, wire)
			}
		}
	case *shape.List:
		items, err := c.ref(s.Element())
		if err != nil {
			return fmt.Errorf("%s: %w", s.ID(), err)
		}

		v.Type = openapi3.TypeArray
		v.Items = items
	case *shape.Map:
		values, err := c.ref(s.Value.Target)
		if err != nil {
			return fmt.Errorf("%s: %w", s.ID(), err)
		}

		v.Type = openapi3.TypeObject
		v.AdditionalProperties = openapi3.AdditionalProperties{Schema: values}
	case *shape.Enum:
		v.Type = openapi3.TypeString
		applyTraits(v, s.Traits)

		for _, variant := range s.Variants {
			v.Enum = append(v.Enum, variant.Value)
		}
	default:
		return fmt.Errorf("%s: unsupported shape kind %s", s.ID(), s.Kind())
	}

	return nil
}

// ref returns the schema a member targeting id should use: an inline schema
// for prelude scalars, a component reference otherwise.
func (c converter) ref(id shape.ID) (*openapi3.SchemaRef, error) {
	if id.IsPrelude() {
		v, err := scalar(id)
		if err != nil {
			return nil, err
		}

		return openapi3.NewSchemaRef("", v), nil
	}

	v, ok := c.values[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shape.ErrNotFound, id)
	}

	return openapi3.NewSchemaRef(componentPrefix+id.Name, v), nil
}

func scalar(id shape.ID) (*openapi3.Schema, error) {
	switch id {
	case shape.String:
		return openapi3.NewStringSchema(), nil
	case shape.Boolean:
		return openapi3.NewBoolSchema(), nil
	case shape.Integer:
		return openapi3.NewInt32Schema(), nil
	case shape.Long:
		return openapi3.NewInt64Schema(), nil
	case shape.Float:
		return openapi3.NewFloat64Schema().WithFormat("float"), nil
	case shape.Double:
		return openapi3.NewFloat64Schema(), nil
	case shape.Timestamp:
		return openapi3.NewDateTimeSchema(), nil
	default:
		return nil, fmt.Errorf("%w: prelude shape %s", shape.ErrNotFound, id)
	}
}

// annotated attaches member traits to a property. A component reference
// cannot carry siblings, so it is wrapped in allOf.
func annotated(prop *openapi3.SchemaRef, traits shape.Traits) *openapi3.SchemaRef {
	doc, _ := traits.String(shape.TraitDocumentation)
	tags := traits.Tags()

	if doc == "" && len(tags) == 0 {
		return prop
	}

	var v *openapi3.Schema

	if prop.Ref == "" {
		copied := *prop.Value
		v = &copied
	} else {
		v = openapi3.NewAllOfSchema()
		v.AllOf = openapi3.SchemaRefs{prop}
	}

	applyTraits(v, traits)

	return openapi3.NewSchemaRef("", v)
}

func applyTraits(v *openapi3.Schema, traits shape.Traits) {
	if doc, ok := traits.String(shape.TraitDocumentation); ok {
		v.Description = doc
	}

	if tags := traits.Tags(); len(tags) > 0 {
		if v.Extensions == nil {
			v.Extensions = make(map[string]any)
		}

		v.Extensions[TagsExtension] = tags
	}
}

func wireName(m shape.Member) string {
	if name, ok := m.Traits.String(shape.TraitJSONName); ok {
		return name
	}

	return m.Name
}
