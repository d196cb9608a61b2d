// Package solver scores guesses by expected information and narrows the
// secret list from reported feedback.
//
// Everything here is a pure function of its inputs and safe for concurrent
// use on shared dictionaries and histories.
package solver

import (
	"math"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/words"
)

// GuessEntropy is the pattern distribution of one guess over a candidate set.
// Derived values are computed once at construction.
type GuessEntropy struct {
	guess    words.Word
	counts   [game.PatternSpace]int
	total    int
	distinct int
	bits     float64
}

// PatternCount is one observed pattern and how many candidates produce it.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// Analyze validates guess against the dictionary and scores it over candidates.
func Analyze(dict *words.Dictionary, guess string, candidates []words.Word) (GuessEntropy, error) {
	w, err := dict.Lookup(guess)
	if err != nil {
		return GuessEntropy{}, err
	}
	return AnalyzeWord(w, candidates), nil
}

// AnalyzeAll scores guess over the dictionary's full secret list.
func AnalyzeAll(dict *words.Dictionary, guess string) (GuessEntropy, error) {
	return Analyze(dict, guess, dict.Secrets())
}

// AnalyzeWord scores an already validated guess over candidates.
func AnalyzeWord(guess words.Word, candidates []words.Word) GuessEntropy {
	e := GuessEntropy{guess: guess}
	for _, secret := range candidates {
		e.counts[game.ComputeCode(secret, guess)]++
	}
	e.total = len(candidates)
	e.bits = entropy(&e.counts, e.total)
	for _, c := range e.counts {
		if c > 0 {
			e.distinct++
		}
	}
	return e
}

// entropy is Σ −p·log2(p) over nonzero buckets, and 0 for an empty set.
func entropy(counts *[game.PatternSpace]int, total int) float64 {
	if total == 0 {
		return 0
	}
	t := float64(total)
	bits := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / t
		bits -= p * math.Log2(p)
	}
	return bits
}

func (e GuessEntropy) Guess() words.Word { return e.guess }

// TotalSecrets is the number of candidates scored.
func (e GuessEntropy) TotalSecrets() int { return e.total }

// DistinctPatterns is the number of patterns produced by at least one candidate.
func (e GuessEntropy) DistinctPatterns() int { return e.distinct }

// EntropyBits is the Shannon entropy of the pattern distribution.
func (e GuessEntropy) EntropyBits() float64 { return e.bits }

// Count returns how many candidates produce code.
func (e GuessEntropy) Count(code game.Code) int {
	if int(code) >= game.PatternSpace {
		return 0
	}
	return e.counts[code]
}

// PatternCounts lists the observed patterns in code order.
func (e GuessEntropy) PatternCounts() []PatternCount {
	out := make([]PatternCount, 0, e.distinct)
	for code, c := range e.counts {
		if c > 0 {
			out = append(out, PatternCount{Pattern: game.Decode(game.Code(code)), Count: c})
		}
	}
	return out
}

// Largest returns the most common pattern and its count; ties go to the lower code.
func (e GuessEntropy) Largest() PatternCount {
	var best PatternCount
	for code, c := range e.counts {
		if c > best.Count {
			best = PatternCount{Pattern: game.Decode(game.Code(code)), Count: c}
		}
	}
	return best
}
