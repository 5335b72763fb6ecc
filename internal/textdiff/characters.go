package textdiff

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Characters is a character-level diff of original and suggested, cleaned up
// to semantic boundaries. Unlike Diff it aligns by content. Spans carry no
// trailing separators: Original and Suggested reproduce the inputs exactly.
// If either input is empty it returns an empty slice.
func Characters(original, suggested string) []Span {
	spans := []Span{}
	if original == "" || suggested == "" {
		return spans
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Second
	diffs := dmp.DiffMain(original, suggested, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	pos := 0
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		n := width(d.Text)
		var kind Kind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = Unchanged
		case diffmatchpatch.DiffDelete:
			kind = Deletion
		case diffmatchpatch.DiffInsert:
			kind = Addition
		}
		spans = append(spans, Span{Kind: kind, Text: d.Text, StartPos: pos, EndPos: pos + n})
		pos += n
	}
	return spans
}
