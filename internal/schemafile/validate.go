package schemafile

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"ecs-shapegen/internal/schema"
)

//go:embed schema.cue
var cueSchema []byte

const documentDefinition = "#Document"

// Validator checks decoded documents against the embedded CUE schema.
// A Validator is not safe for concurrent use.
type Validator struct {
	ctx *cue.Context
	def cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(cueSchema, cue.Filename("schema.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}

	def := compiled.LookupPath(cue.ParsePath(documentDefinition))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", documentDefinition, err)
	}

	return &Validator{ctx: ctx, def: def}, nil
}

// Validate checks one document. filename and index locate the document in
// error messages.
func (v *Validator) Validate(doc *schema.Document, filename string, index int) error {
	where := fmt.Sprintf("%s[%d]", filename, index)
	if doc.Name != "" {
		where = fmt.Sprintf("%s (%s)", where, doc.Name)
	}

	encoded := v.ctx.Encode(doc)
	if err := encoded.Err(); err != nil {
		return formatError(err, where)
	}

	if err := v.def.Unify(encoded).Validate(cue.Concrete(true)); err != nil {
		return formatError(err, where)
	}

	return nil
}

// formatError flattens a CUE error list into "<where>: <path>: <message>" lines.
func formatError(err error, where string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, where, err)
	}

	lines := make([]string, 0, len(errs))

	for _, e := range errs {
		path := strings.Join(cueerrors.Path(e), ".")
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		if path != "" {
			msg = path + ": " + msg
		}

		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, where, lines[0])
	}

	return fmt.Errorf("%w: %s:\n  %s", ErrInvalidDocument, where, strings.Join(lines, "\n  "))
}
