package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

const ns = "ecs"

func boolPtr(b bool) *bool { return &b }

func kindPtr(k schema.FieldKind) *schema.FieldKind { return &k }

func id(name string) shape.ID { return shape.NewID(ns, name) }

func field(name string, kind schema.FieldKind) schema.Field {
	return schema.Field{Name: name, Type: kind, Description: name + " field."}
}

func document(name, title string, fields ...schema.Field) *schema.Document {
	return &schema.Document{
		Name:        name,
		Title:       title,
		Type:        schema.DocumentType,
		Description: title + " fields.",
		Fields:      fields,
	}
}

func reusable(doc *schema.Document, topLevel bool, targets ...schema.ReuseExpectation) *schema.Document {
	doc.Reusable = &schema.Reusable{TopLevel: boolPtr(topLevel), Expected: targets}
	return doc
}

func at(path string) schema.ReuseExpectation { return schema.ReuseExpectation{At: path} }

func newCompiler(t *testing.T, opts ...Option) *Compiler {
	t.Helper()

	c, err := New(ns, "Record", opts...)
	require.NoError(t, err)

	return c
}

func structure(t *testing.T, idx *shape.Index, name string) *shape.Structure {
	t.Helper()

	s, err := idx.Structure(id(name))
	require.NoError(t, err)

	return s
}

func memberTarget(t *testing.T, s *shape.Structure, name string) shape.ID {
	t.Helper()

	m, ok := s.Member(name)
	require.Truef(t, ok, "%s has no member %q (members: %v)", s.ID(), name, s.MemberNames())

	return m.Target
}
