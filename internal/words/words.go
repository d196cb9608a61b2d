// internal/words/words.go
//
// Word type and input normalization.
//
// Responsibilities:
//   - Word: fixed-length, uppercase A–Z value type used everywhere in the solver.
//   - Normalize/Parse: the single validation path for user input
//     (trim, uppercase, length check, character check).
//   - Error kinds shared by every guess-accepting operation.
//
// Constraints:
//   • Length is a domain constant (5).
//   • The canonical form is uppercase; lookups never see lowercase input.

package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Length is the fixed number of letters in a word.
	Length = 5
	// AlphabetSize is the number of letters A–Z.
	AlphabetSize = 26
)

// Error kinds. Use errors.Is against these; the concrete types below carry detail.
var (
	ErrInvalidLength     = errors.New("invalid word length")
	ErrInvalidCharacters = errors.New("word must contain only letters A-Z")
	ErrUnknownWord       = errors.New("word not in list")
	ErrFatalConfig       = errors.New("invalid dictionary configuration")
)

// LengthError reports input whose letter count is not Length.
type LengthError struct {
	Expected int
	Found    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("expected a %d-letter word, but found %d letters", e.Expected, e.Found)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// UnknownWordError reports a well-formed word that is not an allowed guess.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("%s is not in the word list", e.Word)
}

func (e *UnknownWordError) Unwrap() error { return ErrUnknownWord }

// ConfigError reports a dictionary that violates its construction invariants.
// It is not recoverable: the process should abort before any game starts.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "dictionary: " + e.Reason }

func (e *ConfigError) Unwrap() error { return ErrFatalConfig }

// Word is a normalized, fixed-length uppercase word.
type Word [Length]byte

// String returns the word as text.
func (w Word) String() string { return string(w[:]) }

// MarshalText encodes the word as its uppercase text.
func (w Word) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText parses and normalizes text into a Word.
func (w *Word) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Normalize trims surrounding whitespace and uppercases ASCII letters.
// It performs no validation.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Parse normalizes s and validates length, then characters.
// It does not check dictionary membership; see Dictionary.Lookup.
func Parse(s string) (Word, error) {
	var w Word
	n := Normalize(s)
	if found := utf8.RuneCountInString(n); found != Length {
		return w, &LengthError{Expected: Length, Found: found}
	}
	for i := 0; i < Length; i++ {
		c := n[i]
		if c < 'A' || c > 'Z' {
			return w, fmt.Errorf("%q: %w", n, ErrInvalidCharacters)
		}
		w[i] = c
	}
	return w, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseAll parses every entry, failing on the first invalid one.
func ParseAll(list []string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// LetterIndex maps an uppercase ASCII letter to 0..25.
// Inputs are validated by Parse; no range check here.
func LetterIndex(c byte) int { return int(c - 'A') }

// Strings converts a word slice to plain strings, preserving order.
func Strings(list []Word) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.String()
	}
	return out
}
