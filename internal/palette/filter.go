package palette

import (
	"strings"
	"unicode"

	"rayline/pkg/types"
)

// ResultLimit caps the filtered view.
const ResultLimit = 60

// Filter derives the visible view from query and results.
//
// An empty (after trimming) query yields the first ResultLimit results. Any
// other query keeps, in order, the results whose case-folded "name path" text
// contains the case-folded trimmed query, and stops scanning at ResultLimit
// matches.
func Filter(query string, results []types.FileResult) []types.FileResult {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		n := min(len(results), ResultLimit)
		out := make([]types.FileResult, n)
		copy(out, results[:n])
		return out
	}

	out := make([]types.FileResult, 0, ResultLimit)
	for _, r := range results {
		if Matches(r, q) {
			out = append(out, r)
			if len(out) >= ResultLimit {
				break
			}
		}
	}
	return out
}

// Matches reports whether r contains needle, which must already be trimmed
// and folded.
func Matches(r types.FileResult, needle string) bool {
	return strings.Contains(Fold(r.Name+" "+r.Path), needle)
}

// Fold maps every rune of s to one representative of its simple case
// folding class, so "S", "s" and "ſ" compare equal. Rune count is kept.
func Fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	lowest := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		lowest = min(lowest, f)
	}
	return lowest
}
