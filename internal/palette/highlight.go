package palette

import (
	"strings"
)

// Segment is a run of text that either matches the query or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments, marking every non-overlapping
// case-insensitive occurrence of the trimmed query from left to right.
func Highlight(text, query string) []Segment {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return []Segment{{Text: text}}
	}

	hay := []rune(text)
	needle := []rune(Fold(q))
	lower := []rune(Fold(text))

	var segs []Segment
	start := 0
	for i := 0; i+len(needle) <= len(lower); {
		if !equalRunes(lower[i:i+len(needle)], needle) {
			i++
			continue
		}
		if i > start {
			segs = append(segs, Segment{Text: string(hay[start:i])})
		}
		segs = append(segs, Segment{Text: string(hay[i : i+len(needle)]), Match: true})
		i += len(needle)
		start = i
	}
	if start < len(hay) {
		segs = append(segs, Segment{Text: string(hay[start:])})
	}
	return segs
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
