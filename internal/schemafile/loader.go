package schemafile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"ecs-shapegen/internal/schema"
)

// Loader reads schema documents from a file system.
type Loader struct {
	fsys        fs.FS
	validator   *Validator
	knownFields bool
	parallelism int
	logger      *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithKnownFields rejects undeclared keys while decoding.
func WithKnownFields() Option {
	return func(l *Loader) { l.knownFields = true }
}

// WithoutValidation skips the CUE schema check.
func WithoutValidation() Option {
	return func(l *Loader) { l.validator = nil }
}

// WithParallelism bounds the number of files read at once.
func WithParallelism(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.parallelism = n
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader returns a loader reading from fsys.
func NewLoader(fsys fs.FS, opts ...Option) (*Loader, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}

	l := &Loader{
		fsys:        fsys,
		validator:   v,
		parallelism: runtime.GOMAXPROCS(0),
		logger:      log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// LoadFile reads, decodes and validates one schema file.
func (l *Loader) LoadFile(name string) ([]*schema.Document, error) {
	docs, err := l.read(name)
	if err != nil {
		return nil, err
	}

	if err := l.validate(name, docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// LoadFiles reads the named files concurrently. Documents come back in file
// order, then in declaration order within each file.
func (l *Loader) LoadFiles(ctx context.Context, names []string) ([]*schema.Document, error) {
	results := make([][]*schema.Document, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			docs, err := l.read(name)
			if err != nil {
				return err
			}

			results[i] = docs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*schema.Document

	for i, docs := range results {
		if err := l.validate(names[i], docs); err != nil {
			return nil, err
		}

		out = append(out, docs...)
	}

	l.logger.Debug("loaded schema files", "files", len(names), "documents", len(out))

	return out, nil
}

// LoadManifest loads every file listed by the manifest at name.
func (l *Loader) LoadManifest(ctx context.Context, name string) ([]*schema.Document, error) {
	names, err := l.ReadManifest(name)
	if err != nil {
		return nil, err
	}

	return l.LoadFiles(ctx, names)
}

// ReadManifest returns the schema files listed by a manifest, resolved
// relative to the manifest's directory.
func (l *Loader) ReadManifest(name string) ([]string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", name, err)
	}

	dir := path.Dir(name)

	var names []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		names = append(names, path.Join(dir, line))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", name, err)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyManifest, name)
	}

	return names, nil
}

// LoadDir loads every *.yml and *.yaml file directly inside dir, sorted by name.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*schema.Document, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list schema directory %s: %w", dir, err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch path.Ext(e.Name()) {
		case ".yml", ".yaml":
			names = append(names, path.Join(dir, e.Name()))
		}
	}

	slices.Sort(names)

	return l.LoadFiles(ctx, names)
}

func (l *Loader) read(name string) ([]*schema.Document, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", name, err)
	}

	return Parse(data, name, l.knownFields)
}

func (l *Loader) validate(name string, docs []*schema.Document) error {
	if l.validator == nil {
		return nil
	}

	for i, doc := range docs {
		if err := l.validator.Validate(doc, name, i); err != nil {
			return err
		}
	}

	return nil
}
