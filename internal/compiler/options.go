package compiler

import (
	"github.com/charmbracelet/log"

	"ecs-shapegen/internal/extension"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithExtensions replaces the default extension pipeline. An empty pipeline
// attaches no traits.
func WithExtensions(p extension.Pipeline) Option {
	return func(c *Compiler) {
		c.pipeline = p
	}
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithListOverrides wraps additional fields in lists. Keys are document names
// and values full dot paths of fields within that document, e.g.
// {"host": {"ip", "mac"}}. This complements the per-field normalize flag.
func WithListOverrides(overrides map[string][]string) Option {
	return func(c *Compiler) {
		for doc, paths := range overrides {
			set, ok := c.lists[doc]
			if !ok {
				set = make(map[string]struct{}, len(paths))
				c.lists[doc] = set
			}

			for _, p := range paths {
				set[p] = struct{}{}
			}
		}
	}
}

// WithLenientIdentifiers makes identifier collisions overwrite earlier shapes
// and members, recording a warning diagnostic, instead of failing.
func WithLenientIdentifiers() Option {
	return func(c *Compiler) {
		c.strict = false
	}
}
