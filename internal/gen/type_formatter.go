package gen

import (
	"fmt"

	"ecs-shapegen/internal/shape"
)

// typeRef is the Go spelling of a member target.
type typeRef struct {
	Name      string
	IsPointer bool
	IsSlice   bool
	IsMap     bool
	Elem      *typeRef
	// Import is the package the type needs, if any.
	Import string
}

// String returns the Go type expression, e.g. "*HttpRequest" or "[]int64".
func (t typeRef) String() string {
	switch {
	case t.IsSlice:
		return "[]" + t.Elem.String()
	case t.IsMap:
		return "map[string]" + t.Elem.String()
	case t.IsPointer:
		return "*" + t.Name
	default:
		return t.Name
	}
}

// imports returns the packages t and its elements need.
func (t typeRef) imports() []string {
	var out []string
	if t.Import != "" {
		out = append(out, t.Import)
	}

	if t.Elem != nil {
		out = append(out, t.Elem.imports()...)
	}

	return out
}

var scalarTypes = map[shape.ID]typeRef{
	shape.String:    {Name: "string"},
	shape.Boolean:   {Name: "bool"},
	shape.Integer:   {Name: "int32"},
	shape.Long:      {Name: "int64"},
	shape.Float:     {Name: "float32"},
	shape.Double:    {Name: "float64"},
	shape.Timestamp: {Name: "time.Time", Import: "time"},
}

// resolveType maps a target identifier to its Go type. Lists and maps are
// inlined; structures are referenced by pointer.
func (g *Generator) resolveType(id shape.ID) (typeRef, error) {
	if id.IsPrelude() {
		t, ok := scalarTypes[id]
		if !ok {
			return typeRef{}, fmt.Errorf("%w: prelude shape %s", shape.ErrNotFound, id)
		}

		return t, nil
	}

	s, ok := g.idx.Get(id)
	if !ok {
		return typeRef{}, fmt.Errorf("%w: %s", shape.ErrNotFound, id)
	}

	switch s := s.(type) {
	case *shape.Structure:
		return typeRef{Name: id.Name, IsPointer: true}, nil
	case *shape.Enum:
		return typeRef{Name: id.Name}, nil
	case *shape.List:
		elem, err := g.resolveType(s.Element())
		if err != nil {
			return typeRef{}, err
		}

		return typeRef{IsSlice: true, Elem: &elem}, nil
	case *shape.Map:
		elem, err := g.resolveType(s.Value.Target)
		if err != nil {
			return typeRef{}, err
		}

		return typeRef{IsMap: true, Elem: &elem}, nil
	default:
		return typeRef{}, fmt.Errorf("%s: unsupported shape kind %s", id, s.Kind())
	}
}
