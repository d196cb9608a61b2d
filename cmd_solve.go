package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/render"
	"github.com/robalobadob/fibble/internal/solver"
	"github.com/robalobadob/fibble/internal/words"
)

// maxPrintedCandidates caps the candidate list printed by solve.
const maxPrintedCandidates = 20

func newSolveCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "solve GUESS=PATTERN...",
		Short: "Suggest the next guess for a round played elsewhere",
		Long: `Feed the rows of a round as GUESS=PATTERN pairs, where PATTERN uses
G (correct), Y (present) and B (absent), for example:

  fibble solve crane=BYBBG moist=BBBBB`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := game.ParseRuleset(mode)
			if err != nil {
				return err
			}
			h, err := parseRows(a.dict, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := render.New(out)
			fmt.Fprint(out, r.Board(h))

			cands := solver.RemainingSecrets(a.dict, h, rules)
			list := words.Strings(cands)
			if len(list) > maxPrintedCandidates {
				list = append(list[:maxPrintedCandidates], "...")
			}
			if len(cands) > 0 {
				fmt.Fprintf(out, "Candidates: %s\n", strings.Join(list, " "))
			}

			adv := a.advisor(solver.WithProgress(progressPrinter(cmd.ErrOrStderr())))
			fmt.Fprint(out, r.Insights(adv.Suggest(cmd.Context(), h, rules)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "wordle", "wordle or fibble")
	return cmd
}

// parseRows reads GUESS=PATTERN arguments into a history.
func parseRows(dict *words.Dictionary, args []string) (game.History, error) {
	var h game.History
	for _, arg := range args {
		guess, pattern, ok := strings.Cut(arg, "=")
		if !ok {
			return game.History{}, fmt.Errorf("row %q: want GUESS=PATTERN", arg)
		}
		w, err := dict.Lookup(guess)
		if err != nil {
			return game.History{}, fmt.Errorf("row %q: %w", arg, err)
		}
		p, err := game.ParsePattern(w, pattern)
		if err != nil {
			return game.History{}, fmt.Errorf("row %q: %w", arg, err)
		}
		h = h.Append(game.NewRow(w, p))
	}
	return h, nil
}
