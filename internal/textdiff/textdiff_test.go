package textdiff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_EmptyInput(t *testing.T) {
	for _, tc := range [][2]string{
		{"", ""},
		{"", "something."},
		{"something.", ""},
	} {
		got := Diff(tc[0], tc[1])
		require.NotNil(t, got)
		require.Empty(t, got, "Diff(%q, %q)", tc[0], tc[1])
	}
}

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		suggested string
		want      []Span
	}{
		{
			name:      "identical sentence",
			original:  "Hello world.",
			suggested: "Hello world.",
			want: []Span{
				{Kind: Unchanged, Text: "Hello world.", StartPos: 0, EndPos: 12},
			},
		},
		{
			name:      "word substitution",
			original:  "I like cats.",
			suggested: "I like dogs.",
			want: []Span{
				{Kind: Unchanged, Text: "I ", StartPos: 0, EndPos: 2},
				{Kind: Unchanged, Text: "like ", StartPos: 2, EndPos: 7},
				{Kind: Deletion, Text: "cats. ", StartPos: 7, EndPos: 13},
				{Kind: Addition, Text: "dogs. ", StartPos: 7, EndPos: 13},
			},
		},
		{
			name:      "second paragraph changed",
			original:  "Para one.\n\nPara two.",
			suggested: "Para one.\n\nPara TWO.",
			want: []Span{
				{Kind: Unchanged, Text: "Para one.", StartPos: 0, EndPos: 9},
				{Kind: Unchanged, Text: "Para ", StartPos: 11, EndPos: 16},
				{Kind: Deletion, Text: "two. ", StartPos: 16, EndPos: 21},
				{Kind: Addition, Text: "TWO. ", StartPos: 16, EndPos: 21},
			},
		},
		{
			name:      "trailing sentence added",
			original:  "A. B.",
			suggested: "A. B. C.",
			want: []Span{
				{Kind: Unchanged, Text: "A. ", StartPos: 0, EndPos: 3},
				{Kind: Unchanged, Text: "B. ", StartPos: 3, EndPos: 6},
				{Kind: Addition, Text: "C. ", StartPos: 6, EndPos: 9},
			},
		},
		{
			name:      "trailing paragraph removed",
			original:  "A.\n\nB.",
			suggested: "A.",
			want: []Span{
				{Kind: Unchanged, Text: "A.", StartPos: 0, EndPos: 2},
				{Kind: Deletion, Text: "B. ", StartPos: 4, EndPos: 7},
			},
		},
		{
			name:      "words removed at end of sentence",
			original:  "I like cats a lot.",
			suggested: "I like cats.",
			want: []Span{
				{Kind: Unchanged, Text: "I ", StartPos: 0, EndPos: 2},
				{Kind: Unchanged, Text: "like ", StartPos: 2, EndPos: 7},
				{Kind: Deletion, Text: "cats ", StartPos: 7, EndPos: 12},
				{Kind: Addition, Text: "cats. ", StartPos: 7, EndPos: 13},
				{Kind: Deletion, Text: "a ", StartPos: 13, EndPos: 15},
				{Kind: Deletion, Text: "lot. ", StartPos: 15, EndPos: 20},
			},
		},
		{
			name:      "positions count utf-16 units",
			original:  "Emoji 😀 here.",
			suggested: "Emoji 😀 there.",
			want: []Span{
				{Kind: Unchanged, Text: "Emoji ", StartPos: 0, EndPos: 6},
				{Kind: Unchanged, Text: "😀 ", StartPos: 6, EndPos: 9},
				{Kind: Deletion, Text: "here. ", StartPos: 9, EndPos: 15},
				{Kind: Addition, Text: "there. ", StartPos: 9, EndPos: 16},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Diff(tc.original, tc.suggested)
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("Diff(%q, %q) mismatch (-want +got):\n%s", tc.original, tc.suggested, d)
			}
		})
	}
}

func TestDiff_Identity(t *testing.T) {
	inputs := []string{
		"Hello world.",
		"One.\n\nTwo. Three!\n\nFour?",
		"no punctuation at all",
		"• Weekly meetings\n• Daily updates via Slack",
	}
	for _, s := range inputs {
		got := Diff(s, s)
		require.NotEmpty(t, got)
		for _, span := range got {
			assert.Equal(t, Unchanged, span.Kind, "input %q", s)
		}
		assert.False(t, Changed(got))
		assert.Equal(t, stripSpace(s), stripSpace(Original(got)))
	}
}

func TestDiff_IdenticalParagraphIsOneSpan(t *testing.T) {
	original := "Same para here. Two sentences.\n\nChanged one."
	suggested := "Same para here. Two sentences.\n\nChanged two."

	got := Diff(original, suggested)

	require.Len(t, got, 4)
	require.Equal(t, Span{Kind: Unchanged, Text: "Same para here. Two sentences.", StartPos: 0, EndPos: 30}, got[0])
	require.Equal(t, "Changed ", got[1].Text)
	require.Equal(t, Deletion, got[2].Kind)
	require.Equal(t, Addition, got[3].Kind)
}

func TestDiff_SubstitutionPairing(t *testing.T) {
	got := Diff("We need a fast developer.", "We need a skilled developer.")

	var i int
	for i = range got {
		if got[i].Kind == Deletion {
			break
		}
	}
	require.Less(t, i+1, len(got))
	require.Equal(t, Span{Kind: Deletion, Text: "fast ", StartPos: 10, EndPos: 15}, got[i])
	require.Equal(t, Span{Kind: Addition, Text: "skilled ", StartPos: 10, EndPos: 18}, got[i+1])
	require.Equal(t, Span{Kind: Unchanged, Text: "developer. ", StartPos: 18, EndPos: 29}, got[i+2])
}

func TestDiff_PositionalAlignment(t *testing.T) {
	// A sentence inserted at the front shifts every later sentence.
	got := Diff("A. B.", "X. A. B.")

	var kinds []Kind
	var texts []string
	for _, s := range got {
		kinds = append(kinds, s.Kind)
		texts = append(texts, s.Text)
	}
	require.Equal(t, []Kind{Deletion, Addition, Deletion, Addition, Addition}, kinds)
	require.Equal(t, []string{"A. ", "X. ", "B. ", "A. ", "B. "}, texts)
}

func TestDiff_Coverage(t *testing.T) {
	pairs := [][2]string{
		{"I like cats.", "I like dogs."},
		{"Para one.\n\nPara two.", "Para one.\n\nPara TWO.\n\nPara three."},
		{"A. B. C.", "A."},
		{"Build a site.  Fast!\n \nThen ship it?", "Build a website. Quickly!\n\nThen ship."},
		{"• Item one\n• Item two", "• Item one\n• Item 2\n• Item three"},
		{"Trailing space. ", "Trailing space."},
	}
	for _, p := range pairs {
		got := Diff(p[0], p[1])
		assert.Equal(t, stripSpace(p[0]), stripSpace(Original(got)), "original side of %q", p)
		assert.Equal(t, stripSpace(p[1]), stripSpace(Suggested(got)), "suggested side of %q", p)

		for i, s := range got {
			assert.GreaterOrEqual(t, s.EndPos, s.StartPos)
			if i > 0 {
				assert.GreaterOrEqual(t, s.StartPos, got[i-1].StartPos)
			}
		}
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"No punctuation here", []string{"No punctuation here"}},
		{"A. B.", []string{"A.", "B."}},
		{"Wait!  Really?\nYes.", []string{"Wait!", "Really?", "Yes."}},
		{"A. ", []string{"A.", ""}},
		{"Version 1.2 is out. Go", []string{"Version 1.2 is out.", "Go"}},
		{"Huh?! Ok.", []string{"Huh?!", "Ok."}},
		{"Hello.\u00a0World.", []string{"Hello.", "World."}},
		{"One.\vTwo.\u2028Three.", []string{"One.", "Two.", "Three."}},
		{"Bom.\ufeffNext.", []string{"Bom.", "Next."}},
		{"Not.\u0085Split.", []string{"Not.\u0085Split."}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, splitSentences(tc.in), "splitSentences(%q)", tc.in)
	}
}

func TestParagraphBreak(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, paragraphBreak.Split("a\n\nb\n  \n\nc", -1))
	require.Equal(t, []string{"a\nb"}, paragraphBreak.Split("a\nb", -1))
	require.Equal(t, []string{"One.", "Two."}, paragraphBreak.Split("One.\n\u00a0\nTwo.", -1))
	require.Equal(t, []string{"a", "b"}, paragraphBreak.Split("a\n\v\u3000\nb", -1))
}

func TestIsSpace(t *testing.T) {
	for _, r := range " \t\n\v\f\r\u00a0\u1680\u2000\u2005\u200a\u2028\u2029\u202f\u205f\u3000\ufeff" {
		require.True(t, isSpace(r), "isSpace(%U)", r)
	}
	for _, r := range "a.\u0085\u200b\u1fff\u200c" {
		require.False(t, isSpace(r), "isSpace(%U)", r)
	}
}

func TestDiff_UnicodeWhitespace(t *testing.T) {
	got := Diff("A.\u00a0B.", "A.\u00a0B. C.")
	want := []Span{
		{Kind: Unchanged, Text: "A. ", StartPos: 0, EndPos: 3},
		{Kind: Unchanged, Text: "B. ", StartPos: 3, EndPos: 6},
		{Kind: Addition, Text: "C. ", StartPos: 6, EndPos: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}

	// Words split on the same class as sentences.
	got = Diff("big\u00a0cat.", "big\u00a0dog.")
	want = []Span{
		{Kind: Unchanged, Text: "big ", StartPos: 0, EndPos: 4},
		{Kind: Deletion, Text: "cat. ", StartPos: 4, EndPos: 9},
		{Kind: Addition, Text: "dog. ", StartPos: 4, EndPos: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
}

func TestSpan_JSON(t *testing.T) {
	b, err := json.Marshal(Span{Kind: Deletion, Text: "cats. ", StartPos: 7, EndPos: 13})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"deletion","text":"cats. ","startPos":7,"endPos":13}`, string(b))

	var s Span
	require.NoError(t, json.Unmarshal([]byte(`{"type":"addition","text":"x","startPos":1,"endPos":2}`), &s))
	require.Equal(t, Span{Kind: Addition, Text: "x", StartPos: 1, EndPos: 2}, s)

	require.Error(t, json.Unmarshal([]byte(`{"type":"moved"}`), &s))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeHierarchical, m)

	m, err = ParseMode(" Character ")
	require.NoError(t, err)
	require.Equal(t, ModeCharacter, m)

	_, err = ParseMode("lcs")
	require.Error(t, err)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
