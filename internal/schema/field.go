package schema

import (
	"slices"
)

// FieldKind is the declared type of a field.
type FieldKind string

const (
	KindKeyword  FieldKind = "keyword"
	KindText     FieldKind = "text"
	KindIP       FieldKind = "ip"
	KindDate     FieldKind = "date"
	KindBoolean  FieldKind = "boolean"
	KindInteger  FieldKind = "integer"
	KindLong     FieldKind = "long"
	KindFloat    FieldKind = "float"
	KindObject   FieldKind = "object"
	KindGeoPoint FieldKind = "geo_point"
)

// Kinds lists every recognized field kind.
var Kinds = []FieldKind{
	KindKeyword, KindText, KindIP, KindDate, KindBoolean,
	KindInteger, KindLong, KindFloat, KindObject, KindGeoPoint,
}

// Valid reports whether k is a recognized kind.
func (k FieldKind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// IsStringLike reports whether values of k are strings on the wire.
func (k FieldKind) IsStringLike() bool {
	switch k {
	case KindKeyword, KindText, KindIP:
		return true
	default:
		return false
	}
}

// Level classifies how widely a field is expected to be populated.
type Level string

const (
	LevelCore     Level = "core"
	LevelExtended Level = "extended"
	LevelCustom   Level = "custom"
)

// NormalizeArray is the normalize entry that marks a field as a collection.
const NormalizeArray = "array"

// AllowedValue is one permitted value of an enumerated field.
type AllowedValue struct {
	Name               string   `yaml:"name" json:"name"`
	Description        string   `yaml:"description" json:"description"`
	ExpectedEventTypes []string `yaml:"expected_event_types,omitempty" json:"expected_event_types,omitempty"`
}

// Field is one field declaration of a schema document.
type Field struct {
	// Name is the dot path of the field relative to its document, e.g. "request.method".
	Name string `yaml:"name" json:"name"`
	// Type is the declared field kind.
	Type FieldKind `yaml:"type" json:"type"`
	// Level defaults to core when empty.
	Level       Level  `yaml:"level,omitempty" json:"level,omitempty"`
	Required    *bool  `yaml:"required,omitempty" json:"required,omitempty"`
	Short       string `yaml:"short,omitempty" json:"short,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"`
	// Index is false for fields that are stored but not indexed.
	Index         *bool          `yaml:"index,omitempty" json:"index,omitempty"`
	AllowedValues []AllowedValue `yaml:"allowed_values,omitempty" json:"allowed_values,omitempty"`
	// ObjectType is the value kind of an object field that is a homogeneous map.
	// A key that is present but blank decodes to a pointer to the empty kind.
	ObjectType  *FieldKind `yaml:"object_type,omitempty" json:"object_type,omitempty"`
	Normalize   []string   `yaml:"normalize,omitempty" json:"normalize,omitempty"`
	Format      string     `yaml:"format,omitempty" json:"format,omitempty"`
	IgnoreAbove int        `yaml:"ignore_above,omitempty" json:"ignore_above,omitempty"`
}

// IsRequired reports whether the field is declared required.
func (f *Field) IsRequired() bool {
	return f.Required != nil && *f.Required
}

// IsUnindexed reports whether the field is explicitly excluded from indexing.
func (f *Field) IsUnindexed() bool {
	return f.Index != nil && !*f.Index
}

// IsList reports whether the field is normalized to an array.
func (f *Field) IsList() bool {
	return slices.Contains(f.Normalize, NormalizeArray)
}

// EffectiveLevel returns the field level, defaulting to core.
func (f *Field) EffectiveLevel() Level {
	if f.Level == "" {
		return LevelCore
	}

	return f.Level
}
