// Package app wires the loader, compiler and output collaborators into the
// runs the CLI exposes.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"ecs-shapegen/internal/compiler"
	"ecs-shapegen/internal/config"
	"ecs-shapegen/internal/export"
	"ecs-shapegen/internal/gen"
	"ecs-shapegen/internal/metrics"
	"ecs-shapegen/internal/openapi"
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/schemafile"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Result describes a finished run.
type Result struct {
	Model   *compiler.Model
	Elapsed time.Duration
	// Written lists the output files that changed, in the order written.
	Written []string
}

// Runner executes one configured run.
type Runner struct {
	cfg    *config.Config
	fsys   fs.FS
	logger *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithFS reads manifests and schema files from fsys instead of the host
// file system. Input paths are then interpreted relative to its root.
func WithFS(fsys fs.FS) Option {
	return func(r *Runner) { r.fsys = fsys }
}

// WithLogger sets the logger passed to every stage.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Runner for cfg.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, logger: log.New(io.Discard)}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load reads the configured documents.
func (r *Runner) Load(ctx context.Context) ([]*schema.Document, error) {
	var loaderOpts []schemafile.Option

	loaderOpts = append(loaderOpts, schemafile.WithLogger(r.logger))
	if r.cfg.KnownFields {
		loaderOpts = append(loaderOpts, schemafile.WithKnownFields())
	}

	if !r.cfg.Validate {
		loaderOpts = append(loaderOpts, schemafile.WithoutValidation())
	}

	switch {
	case r.cfg.Manifest != "":
		fsys, name := r.input(r.cfg.Manifest)

		l, err := schemafile.NewLoader(fsys, loaderOpts...)
		if err != nil {
			return nil, err
		}

		return l.LoadManifest(ctx, name)
	case r.cfg.SchemaDir != "":
		fsys, name := r.input(r.cfg.SchemaDir)
		if r.fsys == nil {
			fsys, name = os.DirFS(r.cfg.SchemaDir), "."
		}

		l, err := schemafile.NewLoader(fsys, loaderOpts...)
		if err != nil {
			return nil, err
		}

		return l.LoadDir(ctx, name)
	default:
		return nil, config.ErrNoInput
	}
}

// input resolves a host path to a file system and a name inside it.
func (r *Runner) input(p string) (fs.FS, string) {
	if r.fsys != nil {
		return r.fsys, filepath.ToSlash(filepath.Clean(p))
	}

	return os.DirFS(filepath.Dir(p)), filepath.Base(p)
}

// Compile loads, compiles and finalizes the configured documents and checks
// that every reference in the result resolves.
func (r *Runner) Compile(ctx context.Context) (*Result, error) {
	start := time.Now()

	docs, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	c, err := compiler.New(r.cfg.Namespace, r.cfg.RootName, r.compilerOptions()...)
	if err != nil {
		return nil, err
	}

	if err := c.CompileAll(docs); err != nil {
		return nil, r.failed(c, err)
	}

	model, err := c.Finalize()
	if err != nil {
		return nil, r.failed(c, err)
	}

	if err := model.Index.Validate(); err != nil {
		return nil, fmt.Errorf("compiled model is inconsistent: %w", err)
	}

	for _, d := range model.Diagnostics.Warnings {
		r.logger.Warn(d.Message, "code", d.Code, "document", d.Document, "path", d.FieldPath)
	}

	return &Result{Model: model, Elapsed: time.Since(start)}, nil
}

// failed logs the diagnostics collected before err stopped c.
func (r *Runner) failed(c *compiler.Compiler, err error) error {
	d := c.Diagnostics()
	if !d.HasErrors() {
		return err
	}

	for _, w := range d.Warnings {
		r.logger.Warn(w.Message, "code", w.Code, "document", w.Document, "path", w.FieldPath)
	}

	for _, e := range d.Errors {
		r.logger.Error("compilation stopped", "code", e.Code, "document", e.Document, "err", e.Message)
	}

	return err
}

func (r *Runner) compilerOptions() []compiler.Option {
	opts := []compiler.Option{compiler.WithLogger(r.logger)}

	if len(r.cfg.ListOverrides) > 0 {
		opts = append(opts, compiler.WithListOverrides(r.cfg.ListOverrides))
	}

	if !r.cfg.Strict {
		opts = append(opts, compiler.WithLenientIdentifiers())
	}

	return opts
}

// Build compiles the model and writes every configured output and the
// metrics file. Every output, Go source included, is rendered before any
// file is touched.
func (r *Runner) Build(ctx context.Context) (*Result, error) {
	res, err := r.Compile(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.render(ctx, res.Model)
	if err != nil {
		return nil, err
	}

	for _, o := range out.files {
		changed, err := writeFile(o.path, o.data)
		if err != nil {
			return nil, err
		}

		if changed {
			res.Written = append(res.Written, o.path)
		}
	}

	if len(out.goFiles) > 0 {
		n, err := gen.WriteFiles(out.goFiles, filepath.Dir(r.cfg.Output.Go))
		if err != nil {
			return nil, err
		}

		if n > 0 {
			res.Written = append(res.Written, r.cfg.Output.Go)
		}
	}

	if r.cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(res.Model, res.Elapsed)

		if err := rec.WriteFile(r.cfg.MetricsFile); err != nil {
			return nil, err
		}
	}

	r.logger.Info("build finished",
		"documents", res.Model.Documents,
		"shapes", res.Model.Index.Len(),
		"written", len(res.Written),
		"elapsed", res.Elapsed)

	return res, nil
}

type output struct {
	path string
	data []byte
}

type rendered struct {
	files   []output
	goFiles []gen.GeneratedFile
}

func (r *Runner) render(ctx context.Context, m *compiler.Model) (*rendered, error) {
	out := &rendered{}

	if p := r.cfg.Output.Smithy; p != "" {
		data, err := export.SmithyJSON(m.Index)
		if err != nil {
			return nil, fmt.Errorf("rendering smithy model: %w", err)
		}

		out.files = append(out.files, output{p, data})
	}

	if p := r.cfg.Output.YAML; p != "" {
		data, err := export.YAML(m.Index, m.Root)
		if err != nil {
			return nil, fmt.Errorf("rendering yaml model: %w", err)
		}

		out.files = append(out.files, output{p, data})
	}

	if p := r.cfg.Output.OpenAPI; p != "" {
		doc, err := openapi.Document(ctx, m.Index, openapi.Info{
			Title:   r.cfg.Output.OpenAPITitle,
			Version: r.cfg.Output.OpenAPIVersion,
		})
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := openapi.Write(&buf, doc); err != nil {
			return nil, fmt.Errorf("rendering openapi document: %w", err)
		}

		out.files = append(out.files, output{p, buf.Bytes()})
	}

	if p := r.cfg.Output.Go; p != "" {
		cfg := gen.DefaultGeneratorConfig()
		cfg.PackageName = r.cfg.Output.GoPackage
		cfg.OutputDir = filepath.Dir(p)
		cfg.Filename = filepath.Base(p)

		files, err := gen.NewGenerator(cfg).Generate(m.Index)
		if err != nil {
			return nil, fmt.Errorf("generating go types: %w", err)
		}

		out.goFiles = files
	}

	return out, nil
}

// writeFile writes data to p unless p already holds it.
func writeFile(p string, data []byte) (bool, error) {
	existing, err := os.ReadFile(p)

	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("reading %s: %w", p, err)
	}

	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", p, err)
	}

	if err := os.WriteFile(p, data, filePerm); err != nil {
		return false, fmt.Errorf("writing %s: %w", p, err)
	}

	return true, nil
}
