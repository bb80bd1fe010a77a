// Package extension provides the ordered transform stages applied to freshly
// built structures and members.
//
// A stage sees every structure once, when it is created while compiling a
// schema document: the document's own structure, the intermediate structures
// of dotted paths, and the structures built for object and geo_point fields.
// It sees a member once, when a field is attached. Members added later by
// reuse grafting bypass the stages. Stages must not
// assume they run first: a stage that sets a trait checks whether the trait
// is already present before writing it.
package extension

import (
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

// Extension is one transform stage. Embed Base to get identity hooks.
type Extension interface {
	// Name identifies the stage in logs.
	Name() string
	// UpdateStructure transforms the structure built for doc.
	UpdateStructure(s *shape.Structure, doc *schema.Document) *shape.Structure
	// UpdateMember transforms the member built for field. The field name is
	// the last segment of the declared dot path.
	UpdateMember(m shape.Member, field *schema.Field) shape.Member
}

// Base implements identity hooks.
type Base struct{}

func (Base) UpdateStructure(s *shape.Structure, _ *schema.Document) *shape.Structure { return s }
func (Base) UpdateMember(m shape.Member, _ *schema.Field) shape.Member               { return m }

// Pipeline is an ordered sequence of stages fixed at construction.
type Pipeline []Extension

// Defaults returns the built-in stages in their conventional order.
func Defaults() Pipeline {
	return Pipeline{Documentation{}, Required{}, JSONName{}, Tags{Prefix: DefaultTagPrefix}}
}

// ApplyStructure runs every stage's structure hook in order.
func (p Pipeline) ApplyStructure(s *shape.Structure, doc *schema.Document) *shape.Structure {
	for _, ext := range p {
		s = ext.UpdateStructure(s, doc)
	}

	return s
}

// ApplyMember runs every stage's member hook in order.
func (p Pipeline) ApplyMember(m shape.Member, field *schema.Field) shape.Member {
	for _, ext := range p {
		m = ext.UpdateMember(m, field)
	}

	return m
}

// Names returns the stage names in order.
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p))
	for _, ext := range p {
		names = append(names, ext.Name())
	}

	return names
}
