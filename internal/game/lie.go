package game

import (
	"math/rand/v2"

	"github.com/robalobadob/fibble/internal/words"
)

// InjectLie returns p with exactly one tile's mark replaced by one of the two
// other marks. The position is uniform over the word and the replacement is
// chosen with equal probability. rng is the only source of randomness.
func InjectLie(p Pattern, rng *rand.Rand) Pattern {
	i := rng.IntN(words.Length)
	p[i].Mark = otherMark(p[i].Mark, rng.IntN(2))
	return p
}

// otherMark returns the pick-th (0 or 1) mark different from m, in digit order.
func otherMark(m Mark, pick int) Mark {
	var others [2]Mark
	n := 0
	for _, c := range [...]Mark{MarkAbsent, MarkPresent, MarkCorrect} {
		if c != m {
			others[n] = c
			n++
		}
	}
	return others[pick]
}
