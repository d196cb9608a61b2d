package solver

import (
	"runtime"
	"slices"
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/fibble/internal/words"
)

// Suggestion is a scored guess.
type Suggestion struct {
	Word            words.Word `json:"word"`
	EntropyBits     float64    `json:"entropyBits"`
	MatchingSecrets int        `json:"matchingSecrets"`
	IsCandidate     bool       `json:"isCandidate"`
}

// Option tunes a scan.
type Option func(*scanConfig)

type scanConfig struct {
	workers  int
	progress func(done, total int)
}

// WithWorkers bounds the number of goroutines scoring guesses. n < 1 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *scanConfig) { c.workers = n }
}

// WithProgress registers fn to be called as chunks of the allowed list finish.
// Calls are serialized; done increases monotonically up to total.
func WithProgress(fn func(done, total int)) Option {
	return func(c *scanConfig) { c.progress = fn }
}

func newScanConfig(opts []Option) scanConfig {
	var c scanConfig
	for _, o := range opts {
		o(&c)
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// scored is a guess's position in the ranking.
//
// Ranking: higher entropy first, then lower index in the allowed list, so a
// tie keeps the earliest-scanned word. At 0 bits a candidate outranks other
// words; that only happens with one candidate left, where guessing it is the
// only move that can win. The key only depends on the guess, so the result
// does not depend on which worker finishes first.
type scored struct {
	index     int
	candidate bool
	entropy   GuessEntropy
}

func (a *scored) beats(b *scored) bool {
	if a.entropy.bits != b.entropy.bits {
		return a.entropy.bits > b.entropy.bits
	}
	if a.entropy.bits == 0 && a.candidate != b.candidate {
		return a.candidate
	}
	return a.index < b.index
}

// BestGuess returns the allowed word with the highest entropy over candidates.
// It returns false when candidates is empty.
//
// A single candidate that is itself allowed is returned directly with 0 bits:
// every guess scores 0 bits against one secret and the ranking puts a
// candidate first at 0 bits, so the full scan would pick the same word.
func BestGuess(allowed, candidates []words.Word, opts ...Option) (GuessEntropy, bool) {
	if len(candidates) == 0 || len(allowed) == 0 {
		return GuessEntropy{}, false
	}
	if len(candidates) == 1 && slices.Contains(allowed, candidates[0]) {
		return AnalyzeWord(candidates[0], candidates), true
	}

	cfg := newScanConfig(opts)
	isCandidate := candidateSet(allowed, candidates)
	chunks := partition(len(allowed), cfg.workers)
	bests := make([]scored, len(chunks))

	runChunks(chunks, cfg, func(ci int, lo, hi int) {
		best := &bests[ci]
		best.index = -1
		for i := lo; i < hi; i++ {
			s := scored{
				index:     i,
				candidate: isCandidate.Test(uint(i)),
				entropy:   AnalyzeWord(allowed[i], candidates),
			}
			if best.index < 0 || s.beats(best) {
				*best = s
			}
		}
	})

	winner := &bests[0]
	for i := 1; i < len(bests); i++ {
		if bests[i].beats(winner) {
			winner = &bests[i]
		}
	}
	return winner.entropy, true
}

// ScanAll scores every allowed word and returns them in ranking order.
// The first element, if any, is the word BestGuess would return.
func ScanAll(allowed, candidates []words.Word, opts ...Option) []Suggestion {
	if len(candidates) == 0 {
		return nil
	}
	cfg := newScanConfig(opts)
	isCandidate := candidateSet(allowed, candidates)
	all := make([]scored, len(allowed))

	runChunks(partition(len(allowed), cfg.workers), cfg, func(_ int, lo, hi int) {
		for i := lo; i < hi; i++ {
			all[i] = scored{
				index:     i,
				candidate: isCandidate.Test(uint(i)),
				entropy:   AnalyzeWord(allowed[i], candidates),
			}
		}
	})

	sort.Slice(all, func(i, j int) bool { return all[i].beats(&all[j]) })

	out := make([]Suggestion, len(all))
	for i := range all {
		out[i] = Suggestion{
			Word:            all[i].entropy.guess,
			EntropyBits:     all[i].entropy.bits,
			MatchingSecrets: all[i].entropy.total,
			IsCandidate:     all[i].candidate,
		}
	}
	return out
}

// candidateSet marks the allowed indices whose word is a candidate.
func candidateSet(allowed, candidates []words.Word) *bitset.BitSet {
	lookup := make(map[words.Word]struct{}, len(candidates))
	for _, c := range candidates {
		lookup[c] = struct{}{}
	}
	set := bitset.New(uint(len(allowed)))
	for i, w := range allowed {
		if _, ok := lookup[w]; ok {
			set.Set(uint(i))
		}
	}
	return set
}

type chunk struct{ lo, hi int }

// partition splits [0, n) into contiguous chunks, a few per worker so that
// progress reporting stays smooth.
func partition(n, workers int) []chunk {
	size := (n + workers*4 - 1) / (workers * 4)
	if size < 1 {
		size = 1
	}
	out := make([]chunk, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		out = append(out, chunk{lo, min(lo+size, n)})
	}
	return out
}

func runChunks(chunks []chunk, cfg scanConfig, fn func(ci, lo, hi int)) {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		done int
	)
	total := 0
	if len(chunks) > 0 {
		total = chunks[len(chunks)-1].hi
	}
	g.SetLimit(cfg.workers)
	for ci, c := range chunks {
		g.Go(func() error {
			fn(ci, c.lo, c.hi)
			if cfg.progress != nil {
				mu.Lock()
				done += c.hi - c.lo
				cfg.progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never fail; Wait only joins them.
	_ = g.Wait()
}
