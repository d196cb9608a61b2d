// internal/game/pattern.go
//
// Pattern computation and encoding.
//
// computeMarks implements the standard two-pass scoring algorithm:
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count the remaining (non-correct) secret letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter, left to right: if a leftover count
//     remains for that letter, mark Present and decrement; otherwise Absent.
//
// Present+Correct for a letter therefore never exceeds its count in the
// secret, and earlier duplicates in the guess win Present status.

package game

import (
	"fmt"

	"github.com/robalobadob/fibble/internal/words"
)

// ErrBadPattern is returned when a pattern string cannot be parsed.
var ErrBadPattern = fmt.Errorf("pattern must be %d of G, Y or B", words.Length)

func computeMarks(secret, guess words.Word) [words.Length]Mark {
	var marks [words.Length]Mark
	var leftovers [words.AlphabetSize]uint8

	for i := 0; i < words.Length; i++ {
		if guess[i] == secret[i] {
			marks[i] = MarkCorrect
		} else {
			leftovers[words.LetterIndex(secret[i])]++
		}
	}

	for i := 0; i < words.Length; i++ {
		if marks[i] == MarkCorrect {
			continue
		}
		j := words.LetterIndex(guess[i])
		if leftovers[j] > 0 {
			marks[i] = MarkPresent
			leftovers[j]--
		}
	}
	return marks
}

// ComputePattern scores guess against secret.
func ComputePattern(secret, guess words.Word) Pattern {
	marks := computeMarks(secret, guess)
	var p Pattern
	for i := range p {
		p[i] = Tile{Letter: guess[i], Mark: marks[i]}
	}
	return p
}

// ComputeCode scores guess against secret and returns the encoded pattern.
// Equivalent to Encode(ComputePattern(secret, guess)).
func ComputeCode(secret, guess words.Word) Code {
	return EncodeMarks(computeMarks(secret, guess))
}

// Encode returns the base-3 code of p.
func Encode(p Pattern) Code {
	return EncodeMarks(p.Marks())
}

// EncodeMarks returns the base-3 code of a mark sequence.
func EncodeMarks(marks [words.Length]Mark) Code {
	var c Code
	for _, m := range marks {
		c = c*3 + Code(m)
	}
	return c
}

// DecodeMarks is the inverse of EncodeMarks for codes below PatternSpace.
func DecodeMarks(c Code) [words.Length]Mark {
	var marks [words.Length]Mark
	for i := words.Length - 1; i >= 0; i-- {
		marks[i] = Mark(c % 3)
		c /= 3
	}
	return marks
}

// Decode renders a code as G/Y/B characters.
func Decode(c Code) string {
	marks := DecodeMarks(c)
	var b [words.Length]byte
	for i, m := range marks {
		b[i] = m.Symbol()
	}
	return string(b[:])
}

// ParsePattern reads a G/Y/B string (case-insensitive) as feedback for guess.
func ParsePattern(guess words.Word, s string) (Pattern, error) {
	var p Pattern
	if len(s) != words.Length {
		return p, fmt.Errorf("%q: %w", s, ErrBadPattern)
	}
	for i := 0; i < words.Length; i++ {
		var m Mark
		switch s[i] {
		case 'G', 'g':
			m = MarkCorrect
		case 'Y', 'y':
			m = MarkPresent
		case 'B', 'b', '-', '.':
			m = MarkAbsent
		default:
			return p, fmt.Errorf("%q: %w", s, ErrBadPattern)
		}
		p[i] = Tile{Letter: guess[i], Mark: m}
	}
	return p, nil
}
