package solver

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fibble/internal/cache"
	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/words"
)

func parse(list ...string) []words.Word {
	out := make([]words.Word, len(list))
	for i, s := range list {
		out[i] = words.MustParse(s)
	}
	return out
}

func defaults(t *testing.T) *words.Dictionary {
	t.Helper()
	d, err := words.Load("", "")
	require.NoError(t, err)
	return d
}

func strictRow(secret, guess string) game.Row {
	s, g := words.MustParse(secret), words.MustParse(guess)
	return game.NewRow(g, game.ComputePattern(s, g))
}

// referenceBest is the plain serial scan: strictly greater entropy wins and
// ties keep the earliest word, except that at 0 bits a candidate replaces a
// non-candidate.
func referenceBest(allowed, candidates []words.Word) (words.Word, float64) {
	isCandidate := map[words.Word]bool{}
	for _, c := range candidates {
		isCandidate[c] = true
	}
	best, bestBits, bestCand := allowed[0], math.Inf(-1), false
	for _, w := range allowed {
		bits := AnalyzeWord(w, candidates).EntropyBits()
		if bits > bestBits || (bits == 0 && bestBits == 0 && isCandidate[w] && !bestCand) {
			best, bestBits, bestCand = w, bits, isCandidate[w]
		}
	}
	return best, bestBits
}

func TestAnalyzeSingleSecret(t *testing.T) {
	d := defaults(t)
	e, err := Analyze(d, "cigar", parse("CIGAR"))
	require.NoError(t, err)

	assert.Equal(t, "CIGAR", e.Guess().String())
	assert.Equal(t, 1, e.TotalSecrets())
	assert.Equal(t, 1, e.DistinctPatterns())
	assert.Equal(t, 0.0, e.EntropyBits())
	assert.Equal(t, []PatternCount{{Pattern: "GGGGG", Count: 1}}, e.PatternCounts())
	assert.Equal(t, 1, e.Count(game.PatternSpace-1))
}

func TestAnalyzeEmptyCandidates(t *testing.T) {
	e, err := Analyze(defaults(t), "cigar", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, e.TotalSecrets())
	assert.Equal(t, 0, e.DistinctPatterns())
	assert.Equal(t, 0.0, e.EntropyBits())
	assert.False(t, math.IsNaN(e.EntropyBits()))
	assert.Empty(t, e.PatternCounts())
}

func TestAnalyzeValidatesGuess(t *testing.T) {
	d := defaults(t)
	_, err := Analyze(d, "zzzzz", d.Secrets())
	assert.ErrorIs(t, err, words.ErrUnknownWord)
	_, err = Analyze(d, "cig", d.Secrets())
	assert.ErrorIs(t, err, words.ErrInvalidLength)
}

func TestAnalyzeEntropyValues(t *testing.T) {
	// Four candidates split four ways: 2 bits.
	cands := parse("CIGAR", "REBUT", "HUMPH", "SISSY")
	e := AnalyzeWord(words.MustParse("CIGAR"), cands)
	require.Equal(t, 4, e.DistinctPatterns())
	assert.InDelta(t, 2.0, e.EntropyBits(), 1e-12)

	// A guess sharing no letters with any candidate carries nothing.
	e = AnalyzeWord(words.MustParse("NYMPH"), parse("CIGAR", "REBUT"))
	assert.Equal(t, 0.0, e.EntropyBits())
	assert.Equal(t, PatternCount{Pattern: "BBBBB", Count: 2}, e.Largest())

	// Three candidates, three buckets.
	e = AnalyzeWord(words.MustParse("SOARE"), parse("CIGAR", "REBUT", "HUMPH"))
	assert.Equal(t, 3, e.DistinctPatterns())
	assert.InDelta(t, math.Log2(3), e.EntropyBits(), 1e-12)
	assert.Equal(t, 3, e.TotalSecrets())
}

func TestRemainingSecretsEmptyHistory(t *testing.T) {
	d := defaults(t)
	got := RemainingSecrets(d, game.History{}, game.Strict)
	assert.Equal(t, d.Secrets(), got)

	// Returned slice is the caller's.
	got[0] = words.MustParse("ZZZZZ")
	assert.NotEqual(t, got[0], d.Secrets()[0])
}

func TestRemainingSecretsStrictCollapsesOnSolution(t *testing.T) {
	d := defaults(t)
	h := game.NewHistory(strictRow("CIGAR", "CIGAR"))
	assert.Equal(t, parse("CIGAR"), RemainingSecrets(d, h, game.Strict))
}

func TestRemainingSecretsStrictKeepsSolution(t *testing.T) {
	d := defaults(t)
	h := game.NewHistory(strictRow("CIGAR", "CRANE"), strictRow("CIGAR", "SOARE"))
	got := RemainingSecrets(d, h, game.Strict)
	assert.Contains(t, got, words.MustParse("CIGAR"))
	for _, s := range got {
		for _, r := range h.Rows() {
			assert.Equal(t, r.Pattern(), game.ComputePattern(s, r.Guess()))
		}
	}
}

func TestRemainingSecretsSingleLie(t *testing.T) {
	d := defaults(t)
	guess := words.MustParse("CIGAR")
	truth := game.ComputePattern(words.MustParse("CIGAR"), guess)

	oneLie := truth
	oneLie[4].Mark = game.MarkPresent
	got := RemainingSecrets(d, game.NewHistory(game.NewRow(guess, oneLie)), game.SingleLie)
	assert.Contains(t, got, words.MustParse("CIGAR"))

	// Zero lies: the truth itself is not a legal single-lie report.
	got = RemainingSecrets(d, game.NewHistory(game.NewRow(guess, truth)), game.SingleLie)
	assert.NotContains(t, got, words.MustParse("CIGAR"))

	twoLies := oneLie
	twoLies[0].Mark = game.MarkAbsent
	got = RemainingSecrets(d, game.NewHistory(game.NewRow(guess, twoLies)), game.SingleLie)
	assert.NotContains(t, got, words.MustParse("CIGAR"))
}

func TestRemainingSecretsSingleLieEachRowIndependent(t *testing.T) {
	d := defaults(t)
	secret := words.MustParse("CIGAR")
	liar := game.NewRow(words.MustParse("CRANE"), game.InjectLie(game.ComputePattern(secret, words.MustParse("CRANE")), rand.New(rand.NewPCG(1, 2))))
	honest := strictRow("CIGAR", "SOARE")

	assert.Contains(t, RemainingSecrets(d, game.NewHistory(liar), game.SingleLie), secret)
	assert.NotContains(t, RemainingSecrets(d, game.NewHistory(liar, honest), game.SingleLie), secret)
}

func TestRemainingSecretsIdempotentAndOrdered(t *testing.T) {
	d := defaults(t)
	h := game.NewHistory(strictRow("SHORE", "CRANE"))
	a := RemainingSecrets(d, h, game.Strict)
	b := RemainingSecrets(d, h, game.Strict)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("non-deterministic filter (-first +second):\n%s", diff)
	}

	pos := map[words.Word]int{}
	for i, s := range d.Secrets() {
		pos[s] = i
	}
	for i := 1; i < len(a); i++ {
		assert.Less(t, pos[a[i-1]], pos[a[i]])
	}
}

func TestConsistentStrictMatchesExactPattern(t *testing.T) {
	r := strictRow("APPLE", "ALLOT")
	assert.True(t, Consistent(words.MustParse("APPLE"), r, game.Strict))
	assert.False(t, Consistent(words.MustParse("APPLE"), r, game.SingleLie))
}

func TestBestGuessEmpty(t *testing.T) {
	_, ok := BestGuess(defaults(t).Allowed(), nil)
	assert.False(t, ok)
}

func TestBestGuessSingletonMatchesFullScan(t *testing.T) {
	d := defaults(t)
	for _, s := range d.Secrets()[:10] {
		e, ok := BestGuess(d.Allowed(), []words.Word{s})
		require.True(t, ok)
		assert.Equal(t, s, e.Guess())
		assert.Equal(t, 0.0, e.EntropyBits())

		ref, bits := referenceBest(d.Allowed(), []words.Word{s})
		assert.Equal(t, ref, e.Guess())
		assert.Equal(t, bits, e.EntropyBits())
	}
}

func TestBestGuessMatchesReferenceAndIsScheduleIndependent(t *testing.T) {
	d := defaults(t)
	histories := []game.History{
		{},
		game.NewHistory(strictRow("SHORE", "CRANE")),
		game.NewHistory(strictRow("FIGHT", "SOARE")),
	}
	for _, h := range histories {
		cands := RemainingSecrets(d, h, game.Strict)
		require.NotEmpty(t, cands)
		wantWord, wantBits := referenceBest(d.Allowed(), cands)

		for _, workers := range []int{1, 2, 3, 8, 64} {
			e, ok := BestGuess(d.Allowed(), cands, WithWorkers(workers))
			require.True(t, ok)
			assert.Equal(t, wantWord, e.Guess(), "workers=%d", workers)
			assert.Equal(t, wantBits, e.EntropyBits(), "workers=%d", workers)
		}

		// Candidate order does not matter either.
		shuffled := append([]words.Word(nil), cands...)
		rand.New(rand.NewPCG(9, 9)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		e, _ := BestGuess(d.Allowed(), shuffled)
		assert.Equal(t, wantWord, e.Guess())
		assert.Equal(t, wantBits, e.EntropyBits())
	}
}

func TestBestGuessTieBreaks(t *testing.T) {
	cands := parse("CIGAR", "REBUT")

	// Equal entropy, neither a candidate: earliest wins.
	e, ok := BestGuess(parse("NYMPH", "LYMPH"), cands)
	require.True(t, ok)
	assert.Equal(t, "NYMPH", e.Guess().String())
	e, _ = BestGuess(parse("LYMPH", "NYMPH"), cands)
	assert.Equal(t, "LYMPH", e.Guess().String())

	// Equal positive entropy: the earliest word wins even over a candidate.
	soare := AnalyzeWord(words.MustParse("SOARE"), cands)
	cigar := AnalyzeWord(words.MustParse("CIGAR"), cands)
	require.Equal(t, soare.EntropyBits(), cigar.EntropyBits())
	e, _ = BestGuess(parse("SOARE", "CIGAR"), cands)
	assert.Equal(t, "SOARE", e.Guess().String())
	assert.Equal(t, 1.0, e.EntropyBits())
	e, _ = BestGuess(parse("CIGAR", "SOARE"), cands, WithWorkers(2))
	assert.Equal(t, "CIGAR", e.Guess().String())

	ranked := ScanAll(parse("SOARE", "CIGAR"), cands)
	assert.Equal(t, []string{"SOARE", "CIGAR"}, []string{ranked[0].Word.String(), ranked[1].Word.String()})
}

func TestZeroBitTiesPreferTheCandidate(t *testing.T) {
	ranked := ScanAll(parse("NYMPH", "LYMPH", "CIGAR"), parse("CIGAR"))
	require.Len(t, ranked, 3)
	assert.Equal(t, "CIGAR", ranked[0].Word.String())
	assert.True(t, ranked[0].IsCandidate)
	assert.Equal(t, "NYMPH", ranked[1].Word.String())
	assert.Equal(t, "LYMPH", ranked[2].Word.String())

	best, ok := BestGuess(parse("NYMPH", "LYMPH", "CIGAR"), parse("CIGAR"))
	require.True(t, ok)
	assert.Equal(t, ranked[0].Word, best.Guess())
}

func TestScanAllRanking(t *testing.T) {
	d := defaults(t)
	cands := RemainingSecrets(d, game.NewHistory(strictRow("SHORE", "CRANE")), game.Strict)

	var calls, last int
	all := ScanAll(d.Allowed(), cands, WithWorkers(4), WithProgress(func(done, total int) {
		calls++
		assert.GreaterOrEqual(t, done, last)
		assert.Equal(t, len(d.Allowed()), total)
		last = done
	}))
	require.Len(t, all, len(d.Allowed()))
	assert.Positive(t, calls)
	assert.Equal(t, len(d.Allowed()), last)

	best, _ := BestGuess(d.Allowed(), cands)
	assert.Equal(t, best.Guess(), all[0].Word)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].EntropyBits, all[i].EntropyBits)
		assert.Equal(t, len(cands), all[i].MatchingSecrets)
	}
	assert.Nil(t, ScanAll(d.Allowed(), nil))
}

type countingStore struct {
	cache.Store
	loads, saves int
	loadErr      error
}

func (c *countingStore) Load(ctx context.Context, k cache.Key) ([]cache.Entry, bool, error) {
	c.loads++
	if c.loadErr != nil {
		return nil, false, c.loadErr
	}
	return c.Store.Load(ctx, k)
}

func (c *countingStore) Save(ctx context.Context, k cache.Key, e []cache.Entry) error {
	c.saves++
	return c.Store.Save(ctx, k, e)
}

func TestAdvisorCacheDoesNotChangeResults(t *testing.T) {
	ctx := context.Background()
	d := defaults(t)

	uncached := NewAdvisor(d, nil).Suggest(ctx, game.History{}, game.Strict)
	require.NotNil(t, uncached.Best)
	assert.Equal(t, len(d.Secrets()), uncached.Remaining)
	assert.LessOrEqual(t, len(uncached.TopSecretGuesses), TopSecretCount)
	for _, s := range uncached.TopSecretGuesses {
		assert.True(t, s.IsCandidate)
	}

	store := &countingStore{Store: cache.NewMemory()}
	adv := NewAdvisor(d, store)

	miss := adv.Suggest(ctx, game.History{}, game.Strict)
	assert.Equal(t, 1, store.saves)
	hit := adv.Suggest(ctx, game.History{}, game.Strict)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 2, store.loads)

	assert.Equal(t, uncached, miss)
	assert.Equal(t, uncached, hit)

	// A broken or stale cache is a miss.
	store.loadErr = errors.New("disk on fire")
	assert.Equal(t, uncached, adv.Suggest(ctx, game.History{}, game.Strict))
	store.loadErr = nil

	require.NoError(t, store.Store.Save(ctx, cache.KeyFor(d), []cache.Entry{{Guess: "QQQQQ", EntropyBits: 9}}))
	assert.Equal(t, uncached, adv.Suggest(ctx, game.History{}, game.Strict))
}

func TestAdvisorScanMatchesFullRanking(t *testing.T) {
	d := defaults(t)
	adv := NewAdvisor(d, nil, WithWorkers(3))
	histories := []game.History{
		{},
		game.NewHistory(strictRow("SHORE", "CRANE")),
		game.NewHistory(strictRow("FIGHT", "SOARE")),
		game.NewHistory(strictRow("CIGAR", "REBUT")),
	}
	for _, h := range histories {
		cands := RemainingSecrets(d, h, game.Strict)
		want := fromRanking(len(cands), ScanAll(d.Allowed(), cands))
		got := adv.Suggest(context.Background(), h, game.Strict)
		assert.Equal(t, want, got)
	}
}

func TestAdvisorSkipsCacheAfterFirstGuess(t *testing.T) {
	store := &countingStore{Store: cache.NewMemory()}
	adv := NewAdvisor(defaults(t), store)
	h := game.NewHistory(strictRow("SHORE", "CRANE"))
	got := adv.Suggest(context.Background(), h, game.Strict)
	require.NotNil(t, got.Best)
	assert.Zero(t, store.loads)
	assert.Zero(t, store.saves)
}

func TestAdvisorSingletonAndEmpty(t *testing.T) {
	adv := NewAdvisor(defaults(t), nil)

	got := adv.Suggest(context.Background(), game.NewHistory(strictRow("CIGAR", "CIGAR")), game.Strict)
	require.NotNil(t, got.Best)
	assert.Equal(t, "CIGAR", got.Best.Word.String())
	assert.Equal(t, 0.0, got.Best.EntropyBits)
	assert.Equal(t, 1, got.Remaining)

	// Two different words both reported all green.
	impossible := game.NewHistory(strictRow("CIGAR", "CIGAR"), strictRow("REBUT", "REBUT"))
	got = adv.Suggest(context.Background(), impossible, game.Strict)
	assert.Nil(t, got.Best)
	assert.Zero(t, got.Remaining)
	assert.Empty(t, got.TopSecretGuesses)
}
