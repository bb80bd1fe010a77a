package compiler

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"ecs-shapegen/internal/diagnostic"
	"ecs-shapegen/internal/match"
	"ecs-shapegen/internal/naming"
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

// reuseDirective records that a document structure must be grafted under
// each of targets once every document is known.
type reuseDirective struct {
	source   string
	sourceID shape.ID
	order    int
	targets  []schema.ReuseExpectation
}

// Finalize resolves every recorded reuse directive and returns the model.
// The compiler cannot be used afterwards.
func (c *Compiler) Finalize() (*Model, error) {
	if c.err != nil {
		return nil, c.err
	}

	if c.finalized {
		return nil, ErrFinalized
	}

	c.finalized = true

	grafts, err := c.resolveReuse()
	if err != nil {
		source := ""

		var reuseErr *ReuseError
		if errors.As(err, &reuseErr) {
			source = reuseErr.Source
		}

		return nil, c.fail(source, err)
	}

	c.logger.Info("compiled model",
		"documents", len(c.docs), "shapes", c.index.Len(), "grafts", grafts)

	return &Model{
		Index:       c.index,
		Root:        c.rootID,
		Documents:   len(c.docs),
		Grafts:      grafts,
		Diagnostics: c.diags,
	}, nil
}

// pendingGraft is one reuse target of one directive.
type pendingGraft struct {
	directive reuseDirective
	target    schema.ReuseExpectation
	depth     int
}

func (c *Compiler) resolveReuse() (int, error) {
	grafts := 0

	for _, p := range scheduleGrafts(c.directives) {
		added, err := c.graft(p.directive, p.target)
		if err != nil {
			return grafts, err
		}

		if added {
			grafts++
		}
	}

	return grafts, nil
}

// scheduleGrafts orders grafts by target path depth, then reusable order,
// then source name. A graft can only walk through a destination that is
// strictly shallower than its own target path, so applying shallower targets
// first resolves reuse of reused members without regard to compile order.
func scheduleGrafts(directives []reuseDirective) []pendingGraft {
	var pending []pendingGraft

	for _, d := range directives {
		for _, t := range d.targets {
			pending = append(pending, pendingGraft{
				directive: d,
				target:    t,
				depth:     strings.Count(t.At, ".") + 1,
			})
		}
	}

	slices.SortStableFunc(pending, func(a, b pendingGraft) int {
		if r := cmp.Compare(a.depth, b.depth); r != 0 {
			return r
		}

		if r := cmp.Compare(a.directive.order, b.directive.order); r != 0 {
			return r
		}

		return strings.Compare(a.directive.source, b.directive.source)
	})

	return pending
}

// graft adds the directive's source structure as a member of the structure
// at t.At. It reports false when an identical member is already present.
func (c *Compiler) graft(d reuseDirective, t schema.ReuseExpectation) (bool, error) {
	target, err := c.walk(d.source, t.At)
	if err != nil {
		return false, err
	}

	alias := t.As
	if alias == "" {
		alias = d.source
	}

	if naming.Member(alias) == "" {
		return false, fmt.Errorf("%w: reuse alias %q of %q", ErrInvalidName, alias, d.source)
	}

	m := structuralMember(target.ID(), alias, d.sourceID)

	if existing, ok := target.Member(m.Name); ok {
		if existing.Target == d.sourceID {
			return false, nil
		}

		err := fmt.Errorf("%w: reusing %q under %q: member %q of %s already targets %s",
			shape.ErrDuplicateIdentifier, d.source, t.At, m.Name, target.ID(), existing.Target)
		if err := c.collide(diagnostic.CodeMemberCollision, d.source, t.At, err); err != nil {
			return false, err
		}
	}

	c.index.Put(target.WithMember(m))
	c.logger.Debug("grafted reuse", "source", d.source, "at", t.At, "as", m.Name)

	return true, nil
}

// walk follows path from the aggregate root, one member per segment.
func (c *Compiler) walk(source, path string) (*shape.Structure, error) {
	cur, err := c.index.Structure(c.rootID)
	if err != nil {
		return nil, err
	}

	for _, seg := range strings.Split(path, ".") {
		name := naming.Member(seg)

		m, ok := cur.Member(name)
		if !ok {
			return nil, &ReuseError{
				Source:      source,
				Path:        path,
				Segment:     seg,
				Err:         fmt.Errorf("%w: member %q of %s", shape.ErrNotFound, name, cur.ID()),
				Suggestions: match.Suggest(name, cur.MemberNames(), match.DefaultThreshold, 3),
			}
		}

		next, err := c.index.Structure(m.Target)
		if err != nil {
			return nil, &ReuseError{Source: source, Path: path, Segment: seg, Err: err}
		}

		cur = next
	}

	return cur, nil
}
