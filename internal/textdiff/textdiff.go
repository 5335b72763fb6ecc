// Package textdiff compares an original text block with a suggested
// replacement and labels the pieces that were kept, removed or added.
//
// Diff works top-down: paragraphs are compared first, and only the paragraphs
// that differ are broken into sentences, and only the sentences that differ are
// broken into words. Units are aligned by position, not by content, so an
// inserted sentence shifts every sentence after it.
package textdiff

import (
	"regexp"
	"strings"
)

// space is the whitespace class of browser JavaScript. RE2's \s is ASCII only,
// so text pasted with no-break spaces would otherwise split differently.
const space = `[\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

var (
	paragraphBreak = regexp.MustCompile(`\n` + space + `*\n`)
	sentenceBreak  = regexp.MustCompile(`[.!?]` + space + `+`)
)

// isSpace reports whether r is in the same class as space.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// Span is one labeled piece of a diff.
//
// StartPos and EndPos are layout hints in a merged coordinate space, counted in
// UTF-16 code units so they match JavaScript string offsets.
type Span struct {
	Kind     Kind   `json:"type"`
	Text     string `json:"text"`
	StartPos int    `json:"startPos"`
	EndPos   int    `json:"endPos"`
}

// Diff compares original with suggested. If either input is empty it returns
// an empty slice.
func Diff(original, suggested string) []Span {
	b := &builder{spans: []Span{}}
	if original == "" || suggested == "" {
		return b.spans
	}

	origParas := paragraphBreak.Split(original, -1)
	suggParas := paragraphBreak.Split(suggested, -1)

	for i := 0; i < max(len(origParas), len(suggParas)); i++ {
		o, s := at(origParas, i), at(suggParas, i)
		if o == s {
			b.add(Unchanged, o, width(o))
			b.pos += width(o) + 2
			continue
		}
		b.sentences(o, s)
		b.pos += 2
	}
	return b.spans
}

type builder struct {
	spans []Span
	pos   int
}

// add appends a span starting at the current position. It does not advance pos.
func (b *builder) add(kind Kind, text string, n int) {
	b.spans = append(b.spans, Span{Kind: kind, Text: text, StartPos: b.pos, EndPos: b.pos + n})
}

func (b *builder) sentences(origPara, suggPara string) {
	origSents := splitSentences(origPara)
	suggSents := splitSentences(suggPara)

	for j := 0; j < max(len(origSents), len(suggSents)); j++ {
		o, s := at(origSents, j), at(suggSents, j)
		switch {
		case o == s:
			b.unit(Unchanged, o)
		case s == "":
			b.unit(Deletion, o)
		case o == "":
			b.unit(Addition, s)
		default:
			b.words(o, s)
		}
	}
}

func (b *builder) words(origSent, suggSent string) {
	origWords := strings.FieldsFunc(origSent, isSpace)
	suggWords := strings.FieldsFunc(suggSent, isSpace)

	for k := 0; k < max(len(origWords), len(suggWords)); k++ {
		o, s := at(origWords, k), at(suggWords, k)
		switch {
		case o == s:
			b.unit(Unchanged, o)
		case s == "":
			b.unit(Deletion, o)
		case o == "":
			b.unit(Addition, s)
		default:
			// Substitution: both spans share a start position.
			b.add(Deletion, o+" ", width(o)+1)
			b.add(Addition, s+" ", width(s)+1)
			b.pos += max(width(o), width(s)) + 1
		}
	}
}

// unit emits text followed by a single separating space and advances pos.
func (b *builder) unit(kind Kind, text string) {
	n := width(text) + 1
	b.add(kind, text+" ", n)
	b.pos += n
}

// splitSentences breaks p after every '.', '!' or '?' that is followed by
// whitespace. The whitespace is dropped. An empty paragraph yields one empty
// sentence, and trailing whitespace after the final punctuation yields a
// trailing empty sentence.
func splitSentences(p string) []string {
	var out []string
	start := 0
	for _, m := range sentenceBreak.FindAllStringIndex(p, -1) {
		out = append(out, p[start:m[0]+1])
		start = m[1]
	}
	return append(out, p[start:])
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// width is the length of s in UTF-16 code units.
func width(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Original reassembles the original side of spans (Unchanged and Deletion).
func Original(spans []Span) string {
	return join(spans, Addition)
}

// Suggested reassembles the suggested side of spans (Unchanged and Addition).
func Suggested(spans []Span) string {
	return join(spans, Deletion)
}

func join(spans []Span, skip Kind) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Kind != skip {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// Changed reports whether any span is a deletion or an addition.
func Changed(spans []Span) bool {
	for _, s := range spans {
		if s.Kind != Unchanged {
			return true
		}
	}
	return false
}
