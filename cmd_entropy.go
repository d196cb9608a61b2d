package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/render"
	"github.com/robalobadob/fibble/internal/solver"
)

func newEntropyCmd(a *app) *cobra.Command {
	var (
		mode string
		top  int
	)
	cmd := &cobra.Command{
		Use:   "entropy WORD [GUESS=PATTERN...]",
		Short: "Report the feedback distribution of one guess",
		Long: `Report how WORD splits the secrets still possible after the given rows:
the number of distinct patterns, the expected information in bits and the
largest pattern buckets.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := game.ParseRuleset(mode)
			if err != nil {
				return err
			}
			var e solver.GuessEntropy
			if len(args) == 1 {
				e, err = solver.AnalyzeAll(a.dict, args[0])
			} else {
				var h game.History
				if h, err = parseRows(a.dict, args[1:]); err != nil {
					return err
				}
				e, err = solver.Analyze(a.dict, args[0], solver.RemainingSecrets(a.dict, h, rules))
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.New(cmd.OutOrStdout()).Entropy(e, top))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "wordle", "wordle or fibble")
	cmd.Flags().IntVar(&top, "top", 10, "pattern buckets to list (0 = all)")
	return cmd
}
