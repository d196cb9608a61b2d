// internal/game/engine.go
//
// Game engine for a single round.
// Responsibilities:
//   - Create rounds for a ruleset with a fixed or random secret.
//   - Validate and apply guesses (normalize, length, allowed list).
//   - Score guesses and, under SingleLie, corrupt exactly one tile.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The secret and guesses come from a words.Dictionary owned by the caller.
//   - The random source is supplied by the caller and only used for secret
//     selection, the automatic opener and lie injection.
//   - A Game is safe for concurrent use; the HTTP server shares them.

package game

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/fibble/internal/words"
)

// ErrGameOver is returned when guessing in a finished round.
var ErrGameOver = errors.New("game finished")

// ErrNoOpener is returned when no word other than the secret can open.
var ErrNoOpener = errors.New("no opener available")

// State is a coarse description of a round.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single round.
type Game struct {
	mu       sync.Mutex
	id       string
	dict     *words.Dictionary
	secret   words.Word
	rules    Ruleset
	rng      *rand.Rand
	history  History
	finished bool
	won      bool
}

// New constructs a round. If secret is empty, a random secret word is chosen.
// A non-empty secret is validated like a guess.
func New(dict *words.Dictionary, secret string, rules Ruleset, rng *rand.Rand) (*Game, error) {
	var w words.Word
	if secret == "" {
		secrets := dict.Secrets()
		w = secrets[rng.IntN(len(secrets))]
	} else {
		var err error
		if w, err = dict.Lookup(secret); err != nil {
			return nil, err
		}
	}
	return &Game{
		id:     uuid.NewString(),
		dict:   dict,
		secret: w,
		rules:  rules,
		rng:    rng,
	}, nil
}

func (g *Game) ID() string { return g.id }

// Secret returns the hidden word. Callers must not reveal it to players.
func (g *Game) Secret() words.Word { return g.secret }

func (g *Game) Ruleset() Ruleset { return g.rules }

func (g *Game) MaxAttempts() int { return g.rules.MaxAttempts() }

// History returns the rows recorded so far.
func (g *Game) History() History {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history
}

// State reports playing, won or lost.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() State {
	if g.finished {
		if g.won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Submit validates guess and records its reported row.
//
// Validation happens before any mutation: a rejected guess never reaches
// the history. The round is won when the guess equals the secret, which
// under SingleLie is not visible from the reported pattern.
func (g *Game) Submit(guess string) (Row, error) {
	w, err := g.dict.Lookup(guess)
	if err != nil {
		return Row{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return Row{}, ErrGameOver
	}
	return g.record(w), nil
}

func (g *Game) record(w words.Word) Row {
	p := ComputePattern(g.secret, w)
	if g.rules == SingleLie {
		p = InjectLie(p, g.rng)
	}
	row := NewRow(w, p)
	g.history = g.history.Append(row)

	if w == g.secret {
		g.finished, g.won = true, true
	} else if g.history.Len() >= g.rules.MaxAttempts() {
		g.finished = true
	}
	return row
}

// Opener submits a random secret-list word that is not the secret.
// Falls back to the allowed list when the secret list has a single word.
func (g *Game) Opener() (Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return Row{}, ErrGameOver
	}
	for _, pool := range [][]words.Word{g.dict.Secrets(), g.dict.Allowed()} {
		if w, ok := pickOther(pool, g.secret, g.rng); ok {
			return g.record(w), nil
		}
	}
	return Row{}, ErrNoOpener
}

func pickOther(pool []words.Word, not words.Word, rng *rand.Rand) (words.Word, bool) {
	n := len(pool)
	if n == 0 || (n == 1 && pool[0] == not) {
		return words.Word{}, false
	}
	for {
		if w := pool[rng.IntN(n)]; w != not {
			return w, true
		}
	}
}
