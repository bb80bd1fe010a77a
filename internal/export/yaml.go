package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"ecs-shapegen/internal/shape"
)

type yamlModel struct {
	Root   string      `yaml:"root"`
	Shapes []yamlShape `yaml:"shapes"`
}

type yamlShape struct {
	ID       string         `yaml:"id"`
	Type     string         `yaml:"type"`
	Members  []yamlMember   `yaml:"members,omitempty"`
	Variants []yamlVariant  `yaml:"variants,omitempty"`
	Traits   map[string]any `yaml:"traits,omitempty"`
}

type yamlMember struct {
	Name   string         `yaml:"name"`
	Target string         `yaml:"target"`
	Traits map[string]any `yaml:"traits,omitempty"`
}

type yamlVariant struct {
	Tag           string `yaml:"tag"`
	Value         string `yaml:"value"`
	Documentation string `yaml:"documentation,omitempty"`
}

// YAML renders idx as a YAML listing of shapes. root names the aggregate
// root structure.
func YAML(idx *shape.Index, root shape.ID) ([]byte, error) {
	model := yamlModel{Root: root.String()}

	for _, s := range idx.Shapes() {
		if s.ID().IsPrelude() {
			continue
		}

		ys := yamlShape{ID: s.ID().String(), Type: strings.ToLower(s.Kind().String())}

		switch s := s.(type) {
		case *shape.Structure:
			for _, name := range s.MemberNames() {
				ys.Members = append(ys.Members, yamlMemberOf(s.Members[name]))
			}

			ys.Traits = yamlTraits(s.Traits)
		case *shape.List:
			ys.Members = []yamlMember{yamlMemberOf(s.Member)}
		case *shape.Map:
			ys.Members = []yamlMember{yamlMemberOf(s.Key), yamlMemberOf(s.Value)}
		case *shape.Enum:
			for _, v := range s.Variants {
				ys.Variants = append(ys.Variants, yamlVariant(v))
			}

			ys.Traits = yamlTraits(s.Traits)
		default:
			return nil, fmt.Errorf("%s: unsupported shape kind %s", s.ID(), s.Kind())
		}

		model.Shapes = append(model.Shapes, ys)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(model); err != nil {
		return nil, fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteYAML writes the YAML listing of idx to w.
func WriteYAML(w io.Writer, idx *shape.Index, root shape.ID) error {
	data, err := YAML(idx, root)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func yamlMemberOf(m shape.Member) yamlMember {
	return yamlMember{Name: m.Name, Target: m.Target.String(), Traits: yamlTraits(m.Traits)}
}

func yamlTraits(t shape.Traits) map[string]any {
	if len(t) == 0 {
		return nil
	}

	out := make(map[string]any, len(t))
	for name, v := range t {
		if _, ok := v.(struct{}); ok {
			v = map[string]any{}
		}

		out[name] = v
	}

	return out
}
