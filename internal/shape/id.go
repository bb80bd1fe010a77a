package shape

import (
	"fmt"
	"strings"
)

// PreludeNamespace is the namespace of the built-in scalar shapes.
const PreludeNamespace = "smithy.api"

// ID uniquely identifies a shape by namespace and name.
type ID struct {
	Namespace string // e.g., "ecs"
	Name      string // e.g., "HttpRequest"
}

// NewID returns the identifier for name in namespace.
func NewID(namespace, name string) ID {
	return ID{Namespace: namespace, Name: name}
}

// ParseID parses the "namespace#Name" form produced by String.
func ParseID(s string) (ID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok || ns == "" || name == "" {
		return ID{}, fmt.Errorf("invalid shape id %q: expected namespace#Name", s)
	}

	return ID{Namespace: ns, Name: name}, nil
}

// String returns the absolute "namespace#Name" form.
func (id ID) String() string {
	return id.Namespace + "#" + id.Name
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}

// IsPrelude reports whether the identifier names a built-in scalar.
func (id ID) IsPrelude() bool {
	return id.Namespace == PreludeNamespace
}

// WithSuffix returns a sibling identifier whose name has suffix appended.
func (id ID) WithSuffix(suffix string) ID {
	return ID{Namespace: id.Namespace, Name: id.Name + suffix}
}

// Member returns the identifier of the member name scoped to id.
func (id ID) Member(name string) MemberID {
	return MemberID{Container: id, Name: name}
}

// MemberID identifies a member by its owning shape and member name.
type MemberID struct {
	Container ID
	Name      string
}

// String returns the absolute "namespace#Name$member" form.
func (m MemberID) String() string {
	return m.Container.String() + "$" + m.Name
}

// Prelude scalar identifiers.
var (
	String    = ID{Namespace: PreludeNamespace, Name: "String"}
	Boolean   = ID{Namespace: PreludeNamespace, Name: "Boolean"}
	Integer   = ID{Namespace: PreludeNamespace, Name: "Integer"}
	Long      = ID{Namespace: PreludeNamespace, Name: "Long"}
	Float     = ID{Namespace: PreludeNamespace, Name: "Float"}
	Double    = ID{Namespace: PreludeNamespace, Name: "Double"}
	Timestamp = ID{Namespace: PreludeNamespace, Name: "Timestamp"}
)

var prelude = map[ID]*Scalar{
	String:    {ShapeID: String},
	Boolean:   {ShapeID: Boolean},
	Integer:   {ShapeID: Integer},
	Long:      {ShapeID: Long},
	Float:     {ShapeID: Float},
	Double:    {ShapeID: Double},
	Timestamp: {ShapeID: Timestamp},
}

// Prelude returns the built-in scalar for id, or nil if id is not a prelude scalar.
func Prelude(id ID) *Scalar {
	return prelude[id]
}
