package textdiff

import (
	"fmt"
	"strings"
)

// Kind classifies a span relative to the original text.
type Kind int

const (
	Unchanged Kind = iota
	Deletion
	Addition
)

var kindNames = [...]string{
	Unchanged: "unchanged",
	Deletion:  "deletion",
	Addition:  "addition",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes k as its lower-case name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("textdiff: invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if string(b) == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("textdiff: unknown kind %q", b)
}

// Mode selects a diff algorithm.
type Mode string

const (
	// ModeHierarchical is the paragraph/sentence/word Diff.
	ModeHierarchical Mode = "hierarchical"
	// ModeCharacter is the character-level Characters diff.
	ModeCharacter Mode = "character"
)

// ParseMode maps a user-supplied name to a Mode. The empty string selects
// ModeHierarchical.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeHierarchical:
		return ModeHierarchical, nil
	case ModeCharacter:
		return ModeCharacter, nil
	}
	return "", fmt.Errorf("textdiff: unknown mode %q", s)
}

// Run dispatches to the algorithm for m.
func (m Mode) Run(original, suggested string) []Span {
	if m == ModeCharacter {
		return Characters(original, suggested)
	}
	return Diff(original, suggested)
}
