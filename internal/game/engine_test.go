package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fibble/internal/words"
)

func testDict(t *testing.T) *words.Dictionary {
	t.Helper()
	d, err := words.NewDictionary(
		[]string{"cigar", "cairn", "rebut", "sissy", "soare", "humph"},
		[]string{"cigar", "rebut", "sissy", "humph"},
	)
	require.NoError(t, err)
	return d
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func TestInjectLieChangesExactlyOneTile(t *testing.T) {
	rng := seeded(1)
	truth := ComputePattern(words.MustParse("APPLE"), words.MustParse("ALLOT"))
	positions := map[int]int{}
	for i := 0; i < 2000; i++ {
		lie := InjectLie(truth, rng)
		require.Equal(t, 1, truth.Distance(lie))
		for j := range lie {
			require.Equal(t, truth[j].Letter, lie[j].Letter)
			if lie[j] != truth[j] {
				positions[j]++
			}
		}
	}
	// Every position gets picked with a uniform source.
	assert.Len(t, positions, words.Length)
}

func TestOtherMark(t *testing.T) {
	assert.Equal(t, MarkPresent, otherMark(MarkCorrect, 1))
	assert.Equal(t, MarkAbsent, otherMark(MarkCorrect, 0))
	assert.Equal(t, MarkAbsent, otherMark(MarkPresent, 0))
	assert.Equal(t, MarkCorrect, otherMark(MarkPresent, 1))
	assert.Equal(t, MarkPresent, otherMark(MarkAbsent, 0))
	assert.Equal(t, MarkCorrect, otherMark(MarkAbsent, 1))
}

func TestInjectLieDeterministicForSeed(t *testing.T) {
	truth := ComputePattern(words.MustParse("CIGAR"), words.MustParse("CAIRN"))
	a := InjectLie(truth, seeded(42))
	b := InjectLie(truth, seeded(42))
	assert.Equal(t, a, b)
}

func TestSubmitRejectsInvalidGuessesWithoutRecording(t *testing.T) {
	g, err := New(testDict(t), "cigar", Strict, seeded(1))
	require.NoError(t, err)

	_, err = g.Submit("zzzzz")
	assert.ErrorIs(t, err, words.ErrUnknownWord)
	_, err = g.Submit("longer")
	assert.ErrorIs(t, err, words.ErrInvalidLength)
	_, err = g.Submit("tool")
	assert.ErrorIs(t, err, words.ErrInvalidLength)

	assert.Equal(t, 0, g.History().Len())
	assert.Equal(t, StatePlaying, g.State())
}

func TestNewValidatesSecret(t *testing.T) {
	_, err := New(testDict(t), "zzzzz", Strict, seeded(1))
	assert.ErrorIs(t, err, words.ErrUnknownWord)

	g, err := New(testDict(t), "", Strict, seeded(7))
	require.NoError(t, err)
	assert.Contains(t, words.Strings(testDict(t).Secrets()), g.Secret().String())
	assert.NotEmpty(t, g.ID())
}

func TestSubmitRecordsHistoryAndDetectsWin(t *testing.T) {
	g, err := New(testDict(t), "cigar", Strict, seeded(1))
	require.NoError(t, err)

	row, err := g.Submit(" cairn ")
	require.NoError(t, err)
	assert.Equal(t, "CAIRN", row.Guess().String())
	assert.False(t, row.IsCorrect())

	row, err = g.Submit("CIGAR")
	require.NoError(t, err)
	assert.True(t, row.IsCorrect())
	assert.Equal(t, StateWon, g.State())
	assert.Equal(t, 2, g.History().Len())

	_, err = g.Submit("rebut")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 2, g.History().Len())
}

func TestStrictRoundIsLostAfterMaxAttempts(t *testing.T) {
	g, err := New(testDict(t), "cigar", Strict, seeded(1))
	require.NoError(t, err)
	for i := 0; i < Strict.MaxAttempts(); i++ {
		_, err := g.Submit("rebut")
		require.NoError(t, err)
	}
	assert.Equal(t, StateLost, g.State())
}

func TestSingleLieRowsAlwaysLieOnce(t *testing.T) {
	g, err := New(testDict(t), "cigar", SingleLie, seeded(3))
	require.NoError(t, err)

	for _, guess := range []string{"cairn", "rebut", "cigar"} {
		row, err := g.Submit(guess)
		require.NoError(t, err)
		truth := ComputePattern(g.Secret(), row.Guess())
		assert.Equal(t, 1, truth.Distance(row.Pattern()), guess)
	}
	// Won by guessing the word even though the reported row is not all green.
	assert.Equal(t, StateWon, g.State())
	rows := g.History().Rows()
	assert.False(t, rows[len(rows)-1].IsCorrect())
}

func TestOpenerNeverUsesSecret(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g, err := New(testDict(t), "cigar", SingleLie, seeded(seed))
		require.NoError(t, err)
		row, err := g.Opener()
		require.NoError(t, err)
		assert.NotEqual(t, "CIGAR", row.Guess().String())
		assert.Equal(t, 1, g.History().Len())
	}
}

func TestOpenerFallsBackToAllowed(t *testing.T) {
	d, err := words.NewDictionary([]string{"cigar", "soare"}, []string{"cigar"})
	require.NoError(t, err)
	g, err := New(d, "cigar", SingleLie, seeded(1))
	require.NoError(t, err)
	row, err := g.Opener()
	require.NoError(t, err)
	assert.Equal(t, "SOARE", row.Guess().String())

	d, err = words.NewDictionary([]string{"cigar"}, []string{"cigar"})
	require.NoError(t, err)
	g, err = New(d, "cigar", SingleLie, seeded(1))
	require.NoError(t, err)
	_, err = g.Opener()
	assert.ErrorIs(t, err, ErrNoOpener)
}

func TestHistoryAppendDoesNotAlias(t *testing.T) {
	r1 := NewRow(words.MustParse("CIGAR"), Pattern{})
	r2 := NewRow(words.MustParse("REBUT"), Pattern{})
	base := NewHistory(r1)
	a := base.Append(r2)
	b := base.Append(r1)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "REBUT", a.Rows()[1].Guess().String())
	assert.Equal(t, "CIGAR", b.Rows()[1].Guess().String())
}

func TestParseRuleset(t *testing.T) {
	r, err := ParseRuleset("Fibble")
	require.NoError(t, err)
	assert.Equal(t, SingleLie, r)
	assert.Equal(t, 9, r.MaxAttempts())

	r, err = ParseRuleset("wordle")
	require.NoError(t, err)
	assert.Equal(t, Strict, r)

	_, err = ParseRuleset("absurdle")
	assert.ErrorIs(t, err, ErrUnknownRuleset)
}
