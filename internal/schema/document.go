package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DocumentType is the only document type of the dialect.
const DocumentType = "group"

// Document is a named group of field declarations.
type Document struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Short       string `yaml:"short,omitempty" json:"short,omitempty"`
	Type        string `yaml:"type" json:"type"`
	Group       int    `yaml:"group,omitempty" json:"group,omitempty"`
	Footnote    string `yaml:"footnote,omitempty" json:"footnote,omitempty"`
	// Root marks the document whose fields live directly on the aggregate root.
	Root     *bool     `yaml:"root,omitempty" json:"root,omitempty"`
	Reusable *Reusable `yaml:"reusable,omitempty" json:"reusable,omitempty"`
	Fields   []Field   `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// IsRoot reports whether the document describes the aggregate root.
func (d *Document) IsRoot() bool {
	return d.Root != nil && *d.Root
}

// TopLevel reports whether the document should be a member of the aggregate
// root. Documents without a reuse declaration are always top level.
func (d *Document) TopLevel() bool {
	if d.Reusable == nil || d.Reusable.TopLevel == nil {
		return true
	}

	return *d.Reusable.TopLevel
}

// ReuseTargets returns the locations the document is grafted onto.
func (d *Document) ReuseTargets() []ReuseExpectation {
	if d.Reusable == nil {
		return nil
	}

	return d.Reusable.Expected
}

// Reusable declares where a document's structure is reused.
type Reusable struct {
	TopLevel *bool              `yaml:"top_level,omitempty" json:"top_level,omitempty"`
	Expected []ReuseExpectation `yaml:"expected,omitempty" json:"expected,omitempty"`
	// Order sequences reuse directives; lower orders are applied first.
	Order int `yaml:"order,omitempty" json:"order,omitempty"`
}

// ReuseExpectation is one graft location: a dot path from the aggregate root
// and an optional alias for the grafted member.
type ReuseExpectation struct {
	At string `yaml:"at" json:"at"`
	As string `yaml:"as,omitempty" json:"as,omitempty"`
}

// UnmarshalYAML accepts either a bare path string or an {at, as} mapping.
func (r *ReuseExpectation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var at string

		err := node.Decode(&at)
		if err != nil {
			return err
		}

		*r = ReuseExpectation{At: at}

		return nil

	case yaml.MappingNode:
		type plain ReuseExpectation

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		*r = ReuseExpectation(p)

		return nil

	default:
		return fmt.Errorf("line %d: reuse expectation must be a string or a mapping", node.Line)
	}
}

// MarshalYAML emits the bare path form when no alias is set.
func (r ReuseExpectation) MarshalYAML() (any, error) {
	if r.As == "" {
		return r.At, nil
	}

	type plain ReuseExpectation

	return plain(r), nil
}
