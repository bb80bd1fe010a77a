package shape

import (
	"maps"
	"slices"
)

// Well-known trait names.
const (
	TraitDocumentation = "smithy.api#documentation"
	TraitRequired      = "smithy.api#required"
	TraitJSONName      = "smithy.api#jsonName"
	TraitTags          = "smithy.api#tags"
)

// Traits is opaque metadata keyed by trait name. Values are JSON-compatible:
// strings for documentation and jsonName, an empty struct for annotation
// traits such as required, and []string for tags.
type Traits map[string]any

// Has reports whether the trait is set.
func (t Traits) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// String returns the trait value when it is a string.
func (t Traits) String(name string) (string, bool) {
	s, ok := t[name].(string)
	return s, ok
}

// Tags returns the accumulated tags.
func (t Traits) Tags() []string {
	tags, _ := t[TraitTags].([]string)
	return tags
}

// Clone returns a copy of t. A nil receiver yields nil.
func (t Traits) Clone() Traits {
	if t == nil {
		return nil
	}

	out := make(Traits, len(t))
	for k, v := range t {
		if tags, ok := v.([]string); ok {
			v = slices.Clone(tags)
		}

		out[k] = v
	}

	return out
}

// With returns a copy of t with name set to value. The last write wins.
func (t Traits) With(name string, value any) Traits {
	out := t.Clone()
	if out == nil {
		out = Traits{}
	}

	out[name] = value

	return out
}

// WithTags returns a copy of t with tags merged into the tags trait.
// Existing tags are kept, duplicates are dropped and the result is sorted.
func (t Traits) WithTags(tags ...string) Traits {
	if len(tags) == 0 {
		return t.Clone()
	}

	merged := append(slices.Clone(t.Tags()), tags...)
	slices.Sort(merged)

	return t.With(TraitTags, slices.Compact(merged))
}

// Names returns the trait names sorted lexically.
func (t Traits) Names() []string {
	return slices.Sorted(maps.Keys(t))
}
