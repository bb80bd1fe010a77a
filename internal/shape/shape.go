package shape

import (
	"maps"
	"slices"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the variant of a shape.
type Kind int

const (
	_ Kind = iota // zero value is an invalid kind

	KindStructure
	KindList
	KindMap
	KindEnum
	KindScalar
)

// Shape is one node of the compiled type graph.
type Shape interface {
	ID() ID
	Kind() Kind
	// Targets returns the identifiers this shape refers to, in a stable order.
	Targets() []ID
}

// Member is a named reference from a container shape to a target shape.
type Member struct {
	Container ID
	Name      string
	Target    ID
	Traits    Traits
}

// ID returns the member identifier.
func (m Member) ID() MemberID {
	return m.Container.Member(m.Name)
}

// WithTrait returns a copy of m with the trait set, replacing any previous value.
func (m Member) WithTrait(name string, value any) Member {
	m.Traits = m.Traits.With(name, value)
	return m
}

// WithTags returns a copy of m with tags accumulated into the tags trait.
func (m Member) WithTags(tags ...string) Member {
	m.Traits = m.Traits.WithTags(tags...)
	return m
}

// Structure is a composite shape with uniquely named members.
type Structure struct {
	ShapeID ID
	Members map[string]Member
	Traits  Traits
}

// NewStructure returns an empty structure with the given id.
func NewStructure(id ID) *Structure {
	return &Structure{ShapeID: id, Members: map[string]Member{}}
}

func (s *Structure) ID() ID     { return s.ShapeID }
func (s *Structure) Kind() Kind { return KindStructure }

func (s *Structure) Targets() []ID {
	out := make([]ID, 0, len(s.Members))
	for _, name := range s.MemberNames() {
		out = append(out, s.Members[name].Target)
	}

	return out
}

// Member returns the member called name.
func (s *Structure) Member(name string) (Member, bool) {
	m, ok := s.Members[name]
	return m, ok
}

// MemberNames returns the member names sorted lexically.
func (s *Structure) MemberNames() []string {
	return slices.Sorted(maps.Keys(s.Members))
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s *Structure) Clone() *Structure {
	members := make(map[string]Member, len(s.Members))
	for name, m := range s.Members {
		m.Traits = m.Traits.Clone()
		members[name] = m
	}

	return &Structure{ShapeID: s.ShapeID, Members: members, Traits: s.Traits.Clone()}
}

// WithMember returns a copy of s with m added or replaced. The member's
// container is rewritten to s's id.
func (s *Structure) WithMember(m Member) *Structure {
	out := s.Clone()
	m.Container = s.ShapeID
	out.Members[m.Name] = m

	return out
}

// WithTrait returns a copy of s with the trait set.
func (s *Structure) WithTrait(name string, value any) *Structure {
	out := s.Clone()
	out.Traits = out.Traits.With(name, value)

	return out
}

// List is an ordered collection of a single element shape.
type List struct {
	ShapeID ID
	Member  Member
}

// NewList returns a list of element.
func NewList(id, element ID) *List {
	return &List{ShapeID: id, Member: Member{Container: id, Name: "member", Target: element}}
}

func (l *List) ID() ID        { return l.ShapeID }
func (l *List) Kind() Kind    { return KindList }
func (l *List) Targets() []ID { return []ID{l.Member.Target} }

// Element returns the element shape identifier.
func (l *List) Element() ID { return l.Member.Target }

// Map is a string-keyed dictionary of a single value shape.
type Map struct {
	ShapeID ID
	Key     Member
	Value   Member
}

// NewMap returns a String-keyed map of value.
func NewMap(id, value ID) *Map {
	return &Map{
		ShapeID: id,
		Key:     Member{Container: id, Name: "key", Target: String},
		Value:   Member{Container: id, Name: "value", Target: value},
	}
}

func (m *Map) ID() ID        { return m.ShapeID }
func (m *Map) Kind() Kind    { return KindMap }
func (m *Map) Targets() []ID { return []ID{m.Key.Target, m.Value.Target} }

// EnumVariant is one allowed value of an enumeration.
type EnumVariant struct {
	// Tag is the normalized constant name, e.g. "B_B".
	Tag string
	// Value is the raw allowed value, e.g. "b b".
	Value string
	// Documentation is the variant description.
	Documentation string
}

// Enum is a string shape restricted to a fixed sequence of variants.
type Enum struct {
	ShapeID  ID
	Variants []EnumVariant
	Traits   Traits
}

func (e *Enum) ID() ID        { return e.ShapeID }
func (e *Enum) Kind() Kind    { return KindEnum }
func (e *Enum) Targets() []ID { return nil }

// Scalar is a built-in prelude shape.
type Scalar struct {
	ShapeID ID
}

func (s *Scalar) ID() ID        { return s.ShapeID }
func (s *Scalar) Kind() Kind    { return KindScalar }
func (s *Scalar) Targets() []ID { return nil }
