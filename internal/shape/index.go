package shape

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned when an identifier has no shape.
	ErrNotFound = errors.New("shape not found")
	// ErrNotAStructure is returned when a structure was expected.
	ErrNotAStructure = errors.New("shape is not a structure")
	// ErrDuplicateIdentifier is returned when two different shapes claim one identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// Index maps identifiers to shapes. It is append-mostly: shapes are inserted
// and replaced but never removed. An Index is not safe for concurrent writers.
type Index struct {
	shapes map[ID]Shape
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{shapes: make(map[ID]Shape)}
}

// Len returns the number of indexed shapes. Prelude scalars are not counted.
func (x *Index) Len() int {
	return len(x.shapes)
}

// Get returns the shape for id. Prelude scalars resolve without being indexed.
func (x *Index) Get(id ID) (Shape, bool) {
	if s, ok := x.shapes[id]; ok {
		return s, true
	}

	if p := Prelude(id); p != nil {
		return p, true
	}

	return nil, false
}

// Ensure inserts s when its identifier is absent and returns the shape
// stored under that identifier afterwards.
func (x *Index) Ensure(s Shape) Shape {
	if existing, ok := x.shapes[s.ID()]; ok {
		return existing
	}

	x.shapes[s.ID()] = s

	return s
}

// Put stores s, replacing any shape under the same identifier.
func (x *Index) Put(s Shape) {
	x.shapes[s.ID()] = s
}

// Register inserts a newly built shape. Registering a shape equal to the one
// already stored is a no-op; a different shape under the same identifier
// fails with ErrDuplicateIdentifier.
func (x *Index) Register(s Shape) error {
	existing, ok := x.shapes[s.ID()]
	if !ok {
		x.shapes[s.ID()] = s
		return nil
	}

	if reflect.DeepEqual(existing, s) {
		return nil
	}

	return fmt.Errorf("%w: %s already holds a %s, cannot register %s",
		ErrDuplicateIdentifier, s.ID(), kindName(existing), kindName(s))
}

// Structure returns the structure stored under id.
func (x *Index) Structure(id ID) (*Structure, error) {
	s, ok := x.shapes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	st, ok := s.(*Structure)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotAStructure, id, kindName(s))
	}

	return st, nil
}

// IDs returns all indexed identifiers sorted by their string form.
func (x *Index) IDs() []ID {
	ids := slices.Collect(maps.Keys(x.shapes))
	slices.SortFunc(ids, func(a, b ID) int {
		return strings.Compare(a.String(), b.String())
	})

	return ids
}

// Shapes returns all indexed shapes in IDs order.
func (x *Index) Shapes() []Shape {
	ids := x.IDs()
	out := make([]Shape, 0, len(ids))

	for _, id := range ids {
		out = append(out, x.shapes[id])
	}

	return out
}

// CountByKind returns the number of indexed shapes per kind.
func (x *Index) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, s := range x.shapes {
		counts[s.Kind()]++
	}

	return counts
}

// Validate reports every reference to an identifier that resolves to no shape.
func (x *Index) Validate() error {
	var errs []error

	for _, s := range x.Shapes() {
		for _, target := range s.Targets() {
			if _, ok := x.Get(target); !ok {
				errs = append(errs, fmt.Errorf("%w: %s refers to %s", ErrNotFound, s.ID(), target))
			}
		}
	}

	return errors.Join(errs...)
}

func kindName(s Shape) string {
	return strings.ToLower(s.Kind().String())
}
