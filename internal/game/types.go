// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-tile feedback (absent/present/correct).
//   - Tile, Pattern, Code: one guess's feedback and its base-3 encoding.
//   - Ruleset: Strict (Wordle) or SingleLie (Fibble).
//   - Row, History: reported feedback rows in submission order.

package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/fibble/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values are the base-3 digits used by Encode.
type Mark uint8

const (
	MarkAbsent  Mark = 0 // letter not available in the secret
	MarkPresent Mark = 1 // letter in the secret at another position
	MarkCorrect Mark = 2 // letter at this exact position
)

// Symbol returns the display character: G (correct), Y (present), B (absent).
func (m Mark) Symbol() byte {
	switch m {
	case MarkCorrect:
		return 'G'
	case MarkPresent:
		return 'Y'
	default:
		return 'B'
	}
}

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkPresent:
		return "present"
	default:
		return "absent"
	}
}

func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mark) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "correct", "g":
		*m = MarkCorrect
	case "present", "y":
		*m = MarkPresent
	case "absent", "b":
		*m = MarkAbsent
	default:
		return fmt.Errorf("mark %q: %w", b, ErrBadPattern)
	}
	return nil
}

// Tile is the feedback for one position, tagged with the guessed letter.
type Tile struct {
	Letter byte
	Mark   Mark
}

func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string `json:"letter"`
		Mark   Mark   `json:"mark"`
	}{string(t.Letter), t.Mark})
}

// Pattern is the full feedback for one guess.
type Pattern [words.Length]Tile

// Code is the base-3 encoding of a Pattern, most significant position first.
type Code uint8

// PatternSpace is the number of distinct codes, 3^Length.
const PatternSpace = 243

// String renders the code as G/Y/B characters.
func (c Code) String() string { return Decode(c) }

// Code encodes the pattern.
func (p Pattern) Code() Code { return Encode(p) }

// String renders the pattern as G/Y/B characters, e.g. "GYBBB".
func (p Pattern) String() string {
	var b [words.Length]byte
	for i, t := range p {
		b[i] = t.Mark.Symbol()
	}
	return string(b[:])
}

// Marks returns the marks without letters.
func (p Pattern) Marks() [words.Length]Mark {
	var m [words.Length]Mark
	for i, t := range p {
		m[i] = t.Mark
	}
	return m
}

// Correct reports whether every tile is MarkCorrect.
func (p Pattern) Correct() bool {
	for _, t := range p {
		if t.Mark != MarkCorrect {
			return false
		}
	}
	return true
}

// Distance is the number of positions whose tiles differ.
func (p Pattern) Distance(q Pattern) int {
	n := 0
	for i := range p {
		if p[i] != q[i] {
			n++
		}
	}
	return n
}

// Ruleset selects how reported feedback relates to the truth.
type Ruleset uint8

const (
	// Strict: every reported pattern is the true pattern (Wordle).
	Strict Ruleset = iota
	// SingleLie: every reported pattern has exactly one false tile (Fibble).
	SingleLie
)

// ErrUnknownRuleset is returned by ParseRuleset.
var ErrUnknownRuleset = errors.New("unknown mode")

// ParseRuleset accepts "wordle"/"strict" and "fibble"/"single-lie".
func ParseRuleset(s string) (Ruleset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wordle", "strict":
		return Strict, nil
	case "fibble", "single-lie", "singlelie", "lie":
		return SingleLie, nil
	}
	return Strict, fmt.Errorf("%q: %w (wordle or fibble)", s, ErrUnknownRuleset)
}

func (r Ruleset) String() string {
	if r == SingleLie {
		return "fibble"
	}
	return "wordle"
}

// MaxAttempts is the number of guesses a round allows under the ruleset.
func (r Ruleset) MaxAttempts() int {
	if r == SingleLie {
		return 9
	}
	return 6
}

// Row is one accepted guess with its reported pattern.
type Row struct {
	guess   words.Word
	pattern Pattern
}

// NewRow builds a row. Letters in pattern are overwritten with guess's letters.
func NewRow(guess words.Word, pattern Pattern) Row {
	for i := range pattern {
		pattern[i].Letter = guess[i]
	}
	return Row{guess: guess, pattern: pattern}
}

func (r Row) Guess() words.Word { return r.guess }
func (r Row) Pattern() Pattern { return r.pattern }

// IsCorrect reports whether the reported pattern is all correct.
// Under SingleLie this is never true for the real secret.
func (r Row) IsCorrect() bool { return r.pattern.Correct() }

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Guess   string `json:"guess"`
		Pattern string `json:"pattern"`
		Tiles   []Tile `json:"tiles"`
	}{r.guess.String(), r.pattern.String(), r.pattern[:]})
}

// History is the append-only sequence of accepted rows.
// The zero value is an empty history.
type History struct {
	rows []Row
}

// NewHistory builds a history from rows, copying them.
func NewHistory(rows ...Row) History {
	return History{rows: append([]Row(nil), rows...)}
}

// Append returns a new History with r added; h is unchanged.
func (h History) Append(r Row) History {
	rows := make([]Row, len(h.rows), len(h.rows)+1)
	copy(rows, h.rows)
	return History{rows: append(rows, r)}
}

func (h History) Len() int { return len(h.rows) }

// Rows returns a copy of the rows in submission order.
func (h History) Rows() []Row { return append([]Row(nil), h.rows...) }

// Each calls fn for every row in order and stops when fn returns false.
func (h History) Each(fn func(Row) bool) {
	for _, r := range h.rows {
		if !fn(r) {
			return
		}
	}
}

func (h History) MarshalJSON() ([]byte, error) {
	if h.rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.rows)
}
