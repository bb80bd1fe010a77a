package gen

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"ecs-shapegen/internal/naming"
	"ecs-shapegen/internal/shape"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written. It also
	// receives the unformatted sidecar when formatting fails.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// GenerateComments copies documentation traits into doc comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "ecs",
		OutputDir:        "./generated",
		Filename:         "model_gen.go",
		GenerateComments: true,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "model_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generator generates Go declarations from a shape index.
type Generator struct {
	config GeneratorConfig
	idx    *shape.Index
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Generate renders every non-prelude structure and enum of idx into one file.
// Lists and maps are inlined into the fields that use them.
func (g *Generator) Generate(idx *shape.Index) ([]GeneratedFile, error) {
	if g.config.PackageName == "" {
		return nil, errors.New("package name is required")
	}

	g.idx = idx

	data := &templateData{
		PackageName: g.config.PackageName,
		Filename:    g.config.Filename,
	}

	importSet := make(map[string]struct{})

	for _, s := range idx.Shapes() {
		if s.ID().IsPrelude() {
			continue
		}

		switch s := s.(type) {
		case *shape.Structure:
			st, err := g.structData(s, importSet)
			if err != nil {
				return nil, fmt.Errorf("generating %s: %w", s.ID(), err)
			}

			data.Structs = append(data.Structs, st)
		case *shape.Enum:
			en, err := g.enumData(s)
			if err != nil {
				return nil, fmt.Errorf("generating %s: %w", s.ID(), err)
			}

			data.Enums = append(data.Enums, en)
		}
	}

	for imp := range importSet {
		data.Imports = append(data.Imports, imp)
	}

	slices.Sort(data.Imports)

	file, err := g.render(data)
	if err != nil {
		return nil, err
	}

	return []GeneratedFile{*file}, nil
}

func (g *Generator) render(data *templateData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(data.Filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) structData(s *shape.Structure, importSet map[string]struct{}) (structData, error) {
	out := structData{Name: s.ID().Name, Doc: g.docLines(s.ID().Name, s.Traits)}
	seen := make(map[string]string, len(s.Members))

	for _, name := range s.MemberNames() {
		m := s.Members[name]

		t, err := g.resolveType(m.Target)
		if err != nil {
			return structData{}, fmt.Errorf("member %s: %w", m.Name, err)
		}

		for _, imp := range t.imports() {
			importSet[imp] = struct{}{}
		}

		field := naming.UpperFirst(m.Name)
		if prev, dup := seen[field]; dup {
			return structData{}, fmt.Errorf("%w: members %q and %q both become field %s",
				shape.ErrDuplicateIdentifier, prev, m.Name, field)
		}

		seen[field] = m.Name

		out.Fields = append(out.Fields, fieldData{
			Name: field,
			Type: t.String(),
			Tag:  jsonTag(m),
			Doc:  g.docLines(field, m.Traits),
		})
	}

	return out, nil
}

func (g *Generator) enumData(e *shape.Enum) (enumData, error) {
	out := enumData{Name: e.ShapeID.Name, Doc: g.docLines(e.ShapeID.Name, e.Traits)}
	seen := make(map[string]string, len(e.Variants))

	for _, v := range e.Variants {
		name := e.ShapeID.Name + naming.Pascal(v.Tag)
		if prev, dup := seen[name]; dup {
			return enumData{}, fmt.Errorf("%w: values %q and %q both become constant %s",
				shape.ErrDuplicateIdentifier, prev, v.Value, name)
		}

		seen[name] = v.Value

		c := constData{Name: name, Value: fmt.Sprintf("%q", v.Value)}
		if g.config.GenerateComments && v.Documentation != "" {
			c.Doc = commentLines(name + " " + lowerFirstWord(v.Documentation))
		}

		out.Consts = append(out.Consts, c)
	}

	return out, nil
}

func (g *Generator) docLines(name string, traits shape.Traits) []string {
	if !g.config.GenerateComments {
		return nil
	}

	doc, ok := traits.String(shape.TraitDocumentation)
	if !ok || doc == "" {
		return nil
	}

	return commentLines(name + " " + lowerFirstWord(doc))
}

// jsonTag renders the struct tag for m. Members not marked required are
// omitted when empty.
func jsonTag(m shape.Member) string {
	wire := m.Name
	if name, ok := m.Traits.String(shape.TraitJSONName); ok {
		wire = name
	}

	if !m.Traits.Has(shape.TraitRequired) {
		wire += ",omitempty"
	}

	return fmt.Sprintf("`json:%q`", wire)
}

// commentLines splits text into comment lines, one per source line.
func commentLines(text string) []string {
	var out []string
	for line := range strings.SplitSeq(strings.TrimSpace(text), "\n") {
		out = append(out, strings.TrimRight(line, " \t"))
	}

	return out
}

// lowerFirstWord lower-cases a leading capital unless the word is an acronym,
// so "Fields related to HTTP." reads "Http fields related to HTTP." after
// the declared name.
func lowerFirstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")
	if len(word) > 1 && strings.ToUpper(word) == word {
		return s
	}

	return naming.LowerFirst(s)
}
