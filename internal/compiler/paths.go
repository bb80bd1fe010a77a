package compiler

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"ecs-shapegen/internal/naming"
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

// fieldGroup holds the fields sharing one intermediate path.
type fieldGroup struct {
	// prefix is the intermediate path, empty for fields of the document itself.
	prefix []string
	// fields are copies of the declared fields renamed to their leaf segment.
	fields []schema.Field
	// paths are the declared dot paths, parallel to fields.
	paths []string
}

// groupFields partitions fields by intermediate path. Groups come back
// shortest prefix first so every parent exists before its children; equal
// lengths are ordered by the joined prefix.
func groupFields(fields []schema.Field) ([]*fieldGroup, error) {
	byPrefix := make(map[string]*fieldGroup)

	var groups []*fieldGroup

	for _, f := range fields {
		segments := strings.Split(f.Name, ".")
		for _, seg := range segments {
			if naming.Pascal(seg) == "" {
				return nil, fmt.Errorf("%w: field %q has an empty segment", ErrInvalidName, f.Name)
			}
		}

		prefix := segments[:len(segments)-1]
		key := strings.Join(prefix, ".")

		g, ok := byPrefix[key]
		if !ok {
			g = &fieldGroup{prefix: prefix}
			byPrefix[key] = g
			groups = append(groups, g)
		}

		leaf := f
		leaf.Name = segments[len(segments)-1]
		g.fields = append(g.fields, leaf)
		g.paths = append(g.paths, f.Name)
	}

	slices.SortStableFunc(groups, func(a, b *fieldGroup) int {
		if c := cmp.Compare(len(a.prefix), len(b.prefix)); c != 0 {
			return c
		}

		return strings.Compare(strings.Join(a.prefix, "."), strings.Join(b.prefix, "."))
	})

	return groups, nil
}

// composeID derives the identifier of the structure reached from owner by
// following segments.
func composeID(owner shape.ID, segments []string) shape.ID {
	id := owner
	for _, seg := range segments {
		id = id.WithSuffix(naming.Pascal(seg))
	}

	return id
}

// structuralMember builds a member introduced by the compiler itself rather
// than by a field. It carries the raw name as jsonName when sanitizing
// changed it.
func structuralMember(container shape.ID, raw string, target shape.ID) shape.Member {
	m := shape.Member{Container: container, Name: naming.Member(raw), Target: target}
	if m.Name != raw {
		m = m.WithTrait(shape.TraitJSONName, raw)
	}

	return m
}
