package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"ecs-shapegen/internal/diagnostic"
	"ecs-shapegen/internal/extension"
	"ecs-shapegen/internal/naming"
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

// Model is the finalized output of a compilation run.
type Model struct {
	// Index holds every shape of the run.
	Index *shape.Index
	// Root identifies the aggregate root structure.
	Root shape.ID
	// Documents is the number of distinct documents compiled.
	Documents int
	// Grafts is the number of reuse members added by Finalize.
	Grafts int
	// Diagnostics collects non-fatal findings.
	Diagnostics diagnostic.Diagnostics
}

// RootStructure returns the aggregate root.
func (m *Model) RootStructure() *shape.Structure {
	s, err := m.Index.Structure(m.Root)
	if err != nil {
		return nil
	}

	return s
}

// Compiler accumulates schema documents into a shape index. It is not safe
// for concurrent use.
type Compiler struct {
	namespace string
	rootID    shape.ID
	index     *shape.Index
	pipeline  extension.Pipeline
	lists     map[string]map[string]struct{}
	strict    bool
	logger    *log.Logger

	docs       map[string][]byte
	owners     map[shape.ID]string
	directives []reuseDirective
	diags      diagnostic.Diagnostics

	finalized bool
	err       error
}

// New creates a compiler whose shapes live in namespace and whose aggregate
// root structure is named rootName. The index starts out holding only the
// empty root.
func New(namespace, rootName string, opts ...Option) (*Compiler, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: empty namespace", ErrInvalidName)
	}

	if tokens := naming.Tokens(rootName); len(tokens) != 1 || tokens[0] != rootName {
		return nil, fmt.Errorf("%w: root name %q must be alphanumeric", ErrInvalidName, rootName)
	}

	c := &Compiler{
		namespace: namespace,
		rootID:    shape.NewID(namespace, rootName),
		index:     shape.NewIndex(),
		pipeline:  extension.Defaults(),
		lists:     make(map[string]map[string]struct{}),
		strict:    true,
		logger:    log.New(io.Discard),
		docs:      make(map[string][]byte),
		owners:    make(map[shape.ID]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.index.Put(shape.NewStructure(c.rootID))

	return c, nil
}

// Namespace returns the namespace of every non-prelude shape.
func (c *Compiler) Namespace() string { return c.namespace }

// Root returns the identifier of the aggregate root.
func (c *Compiler) Root() shape.ID { return c.rootID }

// CompileAll compiles docs in order, stopping at the first error.
func (c *Compiler) CompileAll(docs []*schema.Document) error {
	for _, doc := range docs {
		if err := c.Compile(doc); err != nil {
			return err
		}
	}

	return nil
}

// Compile adds one document to the index. Compiling a document name a second
// time is a no-op when the content is identical and ErrDocumentConflict
// otherwise.
func (c *Compiler) Compile(doc *schema.Document) error {
	if c.err != nil {
		return c.err
	}

	if c.finalized {
		return ErrFinalized
	}

	if doc == nil {
		return c.fail("", fmt.Errorf("%w: nil document", ErrInvalidName))
	}

	snapshot, err := yaml.Marshal(doc)
	if err != nil {
		return c.fail(doc.Name, fmt.Errorf("snapshotting schema %q: %w", doc.Name, err))
	}

	if prev, ok := c.docs[doc.Name]; ok {
		if bytes.Equal(prev, snapshot) {
			c.diags.AddInfo(diagnostic.CodeDocumentRecompiled, "identical document compiled again", doc.Name, "")
			c.logger.Debug("skipping identical document", "document", doc.Name)

			return nil
		}

		return c.fail(doc.Name, fmt.Errorf("%w: %q", ErrDocumentConflict, doc.Name))
	}

	if err := c.compile(doc); err != nil {
		return c.fail(doc.Name, fmt.Errorf("compiling schema %q: %w", doc.Name, err))
	}

	c.docs[doc.Name] = snapshot

	return nil
}

func (c *Compiler) compile(doc *schema.Document) error {
	if naming.Member(doc.Name) == "" {
		return fmt.Errorf("%w: document name %q", ErrInvalidName, doc.Name)
	}

	id, err := c.documentStructure(doc)
	if err != nil {
		return err
	}

	groups, err := groupFields(doc.Fields)
	if err != nil {
		return err
	}

	for _, g := range groups {
		if err := c.materialize(doc, id, g.prefix); err != nil {
			return err
		}

		if err := c.attachFields(doc, id, g); err != nil {
			return err
		}
	}

	if !doc.IsRoot() && doc.TopLevel() {
		if err := c.addToRoot(doc, id); err != nil {
			return err
		}
	}

	if targets := doc.ReuseTargets(); len(targets) > 0 {
		c.directives = append(c.directives, reuseDirective{
			source:   doc.Name,
			sourceID: id,
			order:    doc.Reusable.Order,
			targets:  targets,
		})
	}

	c.logger.Debug("compiled document", "document", doc.Name, "shape", id, "fields", len(doc.Fields))

	return nil
}

// documentStructure resolves or creates the structure owning doc's fields and
// runs the structure hooks on it.
func (c *Compiler) documentStructure(doc *schema.Document) (shape.ID, error) {
	var id shape.ID

	if doc.IsRoot() {
		id = c.rootID
	} else {
		name := naming.Pascal(doc.Title)
		if name == "" {
			return shape.ID{}, fmt.Errorf("%w: title %q", ErrInvalidName, doc.Title)
		}

		id = shape.NewID(c.namespace, name)
	}

	owner, owned := c.owners[id]
	_, exists := c.index.Get(id)

	switch {
	case owned:
		if err := c.collide(diagnostic.CodeIdentifierCollision, doc.Name, "",
			fmt.Errorf("%w: documents %q and %q both derive %s", shape.ErrDuplicateIdentifier, owner, doc.Name, id)); err != nil {
			return shape.ID{}, err
		}
	case exists && !doc.IsRoot():
		if err := c.collide(diagnostic.CodeIdentifierCollision, doc.Name, "",
			fmt.Errorf("%w: document %q derives %s, which is already defined", shape.ErrDuplicateIdentifier, doc.Name, id)); err != nil {
			return shape.ID{}, err
		}
	}

	s, err := c.index.Structure(id)
	if err != nil {
		if !errors.Is(err, shape.ErrNotFound) {
			return shape.ID{}, err
		}

		s = shape.NewStructure(id)
	}

	c.index.Put(c.pipeline.ApplyStructure(s, doc))
	c.owners[id] = doc.Name

	return id, nil
}

// materialize creates the intermediate structures along prefix and links
// each to its parent.
func (c *Compiler) materialize(doc *schema.Document, owner shape.ID, prefix []string) error {
	for i := range prefix {
		id := composeID(owner, prefix[:i+1])
		path := strings.Join(prefix[:i+1], ".")

		if other, ok := c.owners[id]; ok {
			return fmt.Errorf("%w: path %q of %q derives %s, the structure of document %q",
				shape.ErrDuplicateIdentifier, path, doc.Name, id, other)
		}

		fresh := shape.NewStructure(id)

		stored := c.index.Ensure(fresh)
		if _, ok := stored.(*shape.Structure); !ok {
			_, err := c.index.Structure(id)
			return fmt.Errorf("path %q: %w", path, err)
		}

		if stored == fresh {
			c.index.Put(c.pipeline.ApplyStructure(fresh, doc))
		}

		parent, err := c.index.Structure(composeID(owner, prefix[:i]))
		if err != nil {
			return err
		}

		m := structuralMember(parent.ID(), prefix[i], id)

		existing, ok := parent.Member(m.Name)
		switch {
		case !ok:
			c.index.Put(parent.WithMember(m))
		case existing.Target == id:
		default:
			err := fmt.Errorf("%w: path %q needs member %q of %s to target %s, but it targets %s",
				shape.ErrDuplicateIdentifier, path, m.Name, parent.ID(), id, existing.Target)
			if err := c.collide(diagnostic.CodeShadowedIntermediate, doc.Name, path, err); err != nil {
				return err
			}
		}
	}

	return nil
}

// attachFields maps every field of g and adds it to the structure at g.prefix.
func (c *Compiler) attachFields(doc *schema.Document, owner shape.ID, g *fieldGroup) error {
	containerID := composeID(owner, g.prefix)

	for i := range g.fields {
		field := &g.fields[i]
		path := g.paths[i]

		if field.ObjectType != nil && field.Type != schema.KindObject {
			c.diags.AddInfo(diagnostic.CodeIgnoredObjectType,
				fmt.Sprintf("object_type ignored on %s field", field.Type), doc.Name, path)
		}

		leaf := naming.Pascal(field.Name)
		asList := field.IsList() || c.isListOverride(doc.Name, path)

		mapped, err := mapField(containerID.WithSuffix(leaf), field, asList)
		if err != nil {
			return fmt.Errorf("field %q: %w", path, err)
		}

		for _, s := range mapped.shapes {
			if st, ok := s.(*shape.Structure); ok {
				s = c.pipeline.ApplyStructure(st, doc)
			}

			if err := c.register(s, doc.Name, path); err != nil {
				return fmt.Errorf("field %q: %w", path, err)
			}
		}

		container, err := c.index.Structure(containerID)
		if err != nil {
			return fmt.Errorf("field %q: %w", path, err)
		}

		m := shape.Member{Container: containerID, Name: naming.LowerFirst(leaf), Target: mapped.target}
		m = c.pipeline.ApplyMember(m, field)

		if existing, dup := container.Member(m.Name); dup {
			err := fmt.Errorf("%w: field %q derives member %q of %s, which already targets %s",
				shape.ErrDuplicateIdentifier, path, m.Name, containerID, existing.Target)
			if err := c.collide(diagnostic.CodeMemberCollision, doc.Name, path, err); err != nil {
				return err
			}
		}

		c.index.Put(container.WithMember(m))
	}

	return nil
}

// register stores a shape created while mapping a field.
func (c *Compiler) register(s shape.Shape, doc, path string) error {
	if other, ok := c.owners[s.ID()]; ok {
		return fmt.Errorf("%w: %s is the structure of document %q", shape.ErrDuplicateIdentifier, s.ID(), other)
	}

	err := c.index.Register(s)
	if err == nil || !errors.Is(err, shape.ErrDuplicateIdentifier) {
		return err
	}

	if err := c.collide(diagnostic.CodeIdentifierCollision, doc, path, err); err != nil {
		return err
	}

	c.index.Put(s)

	return nil
}

// addToRoot links a top-level document structure to the aggregate root under
// the document name.
func (c *Compiler) addToRoot(doc *schema.Document, id shape.ID) error {
	root, err := c.index.Structure(c.rootID)
	if err != nil {
		return err
	}

	m := structuralMember(c.rootID, doc.Name, id)

	if existing, ok := root.Member(m.Name); ok && existing.Target != id {
		err := fmt.Errorf("%w: document %q derives root member %q, which already targets %s",
			shape.ErrDuplicateIdentifier, doc.Name, m.Name, existing.Target)
		if err := c.collide(diagnostic.CodeMemberCollision, doc.Name, "", err); err != nil {
			return err
		}
	}

	c.index.Put(root.WithMember(m))

	return nil
}

func (c *Compiler) isListOverride(doc, path string) bool {
	_, ok := c.lists[doc][path]
	return ok
}

// collide handles an identifier collision: fatal in strict mode, a warning
// otherwise.
func (c *Compiler) collide(code, doc, path string, err error) error {
	if c.strict {
		return err
	}

	c.diags.AddWarning(code, err.Error(), doc, path)
	c.logger.Warn("identifier collision", "document", doc, "field", path, "err", err)

	return nil
}

// Diagnostics returns the findings recorded so far, including the error
// that stopped the compiler, if any.
func (c *Compiler) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	d.Merge(c.diags)

	return d
}

// fail makes err sticky and records it as an error diagnostic.
func (c *Compiler) fail(doc string, err error) error {
	c.err = err
	c.diags.AddError(diagnostic.CodeCompileFailed, err.Error(), doc, "")

	return err
}
