package match

import (
	"cmp"
	"slices"
	"strings"

	"ecs-shapegen/internal/naming"
)

// DefaultThreshold is the minimum similarity for a candidate to be suggested.
const DefaultThreshold = 0.6

// Normalize folds an identifier to its lower-cased tokens without
// separators, so "user_agent", "userAgent" and "UserAgent" compare equal.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(naming.Tokens(s), ""))
}

// Suggest returns up to limit candidates whose similarity to name reaches
// threshold, best first. Ties keep lexical order. Exact matches of name are
// skipped.
func Suggest(name string, candidates []string, threshold float64, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= threshold {
			hits = append(hits, scored{c, s})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return strings.Compare(a.name, b.name)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
