package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fibble/internal/daily"
	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/random"
	"github.com/robalobadob/fibble/internal/render"
	"github.com/robalobadob/fibble/internal/solver"
	"github.com/robalobadob/fibble/internal/words"
)

type playFlags struct {
	mode    string
	secret  string
	daily   bool
	seed    uint64
	noHints bool
}

func newPlayCmd(a *app) *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: `Play a round of Wordle or Fibble. Before every guess the solver prints the
number of secrets still possible, its best guess and the best guesses that
could themselves be the answer. Fibble rounds open with a random guess.
Type quit to leave the round.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "wordle", "wordle or fibble")
	cmd.Flags().StringVar(&f.secret, "secret", "", "fixed secret word")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "play today's secret")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for secret choice and lies (0 = random)")
	cmd.Flags().BoolVar(&f.noHints, "no-hints", false, "do not print solver suggestions")
	return cmd
}

func (a *app) play(cmd *cobra.Command, f *playFlags) error {
	rules, err := game.ParseRuleset(f.mode)
	if err != nil {
		return err
	}
	secret := f.secret
	if secret == "" && f.daily {
		secret = daily.SecretFor(a.dict, time.Now(), a.cfg.DailySalt).String()
	}
	rng, err := newRand(f.seed)
	if err != nil {
		return err
	}
	g, err := game.New(a.dict, secret, rules, rng)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := render.New(out)
	fmt.Fprintln(out, r.Header(rules, g.MaxAttempts()))

	if rules == game.SingleLie {
		row, err := g.Opener()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Opening guess:")
		fmt.Fprintln(out, r.Row(row))
	}

	adv := a.advisor(solver.WithProgress(progressPrinter(cmd.ErrOrStderr())))
	in := bufio.NewScanner(cmd.InOrStdin())
	for g.State() == game.StatePlaying {
		if !f.noHints {
			fmt.Fprint(out, r.Insights(adv.Suggest(cmd.Context(), g.History(), rules)))
		}
		fmt.Fprintf(out, "Guess %d/%d: ", g.History().Len()+1, g.MaxAttempts())
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			fmt.Fprintf(out, "Goodbye. The word was %s.\n", g.Secret())
			return nil
		}
		row, err := g.Submit(line)
		if err != nil {
			fmt.Fprintln(out, describe(err))
			continue
		}
		fmt.Fprintln(out, r.Row(row))
	}

	if g.State() == game.StateWon {
		fmt.Fprintf(out, "Solved in %s.\n", guessCount(g.History().Len()))
	} else {
		fmt.Fprintf(out, "Out of attempts. The word was %s.\n", g.Secret())
	}
	return nil
}

func guessCount(n int) string {
	if n == 1 {
		return "1 guess"
	}
	return fmt.Sprintf("%d guesses", n)
}

func newRand(seed uint64) (*rand.Rand, error) {
	if seed != 0 {
		return random.Seeded(seed), nil
	}
	return random.New()
}

// progressPrinter redraws a progress bar in place on w.
func progressPrinter(w io.Writer) func(done, total int) {
	return func(done, total int) {
		fmt.Fprintf(w, "\rScanning guesses %s", render.Progress(done, total, 30))
		if done >= total {
			fmt.Fprint(w, "\r\033[K")
		}
	}
}

// describe turns a rejected guess into a player-facing message.
func describe(err error) string {
	var le *words.LengthError
	switch {
	case errors.As(err, &le):
		return fmt.Sprintf("Guesses have %d letters; that one has %d.", le.Expected, le.Found)
	case errors.Is(err, words.ErrInvalidCharacters):
		return "Use letters A to Z only."
	case errors.Is(err, words.ErrUnknownWord):
		return "Not in the word list."
	default:
		return err.Error()
	}
}
