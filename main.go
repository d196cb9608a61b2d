// main.go
//
// Entry point for the fibble command.
// Responsibilities:
//   - Load .env and parse configuration.
//   - Configure the global zerolog logger (console for the terminal
//     commands, JSON for serve).
//   - Load the dictionary and open the first-guess cache once, before any
//     subcommand runs.

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/fibble/assets"
	"github.com/robalobadob/fibble/internal/cache"
	"github.com/robalobadob/fibble/internal/config"
	"github.com/robalobadob/fibble/internal/solver"
	"github.com/robalobadob/fibble/internal/words"
)

// app holds what every subcommand shares.
type app struct {
	cfg     config.Config
	dict    *words.Dictionary
	store   cache.Store
	cleanup []func()
}

func (a *app) advisor(opts ...solver.Option) *solver.Advisor {
	return solver.NewAdvisor(a.dict, a.store, append([]solver.Option{solver.WithWorkers(a.cfg.ScanWorkers)}, opts...)...)
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

// setup runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	zerolog.SetGlobalLevel(cfg.Level())
	if cmd.Name() != "serve" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}

	if a.dict, err = words.Load(cfg.AnswersFile, cfg.AllowedFile); err != nil {
		return err
	}

	if cfg.CacheEnabled() {
		a.openCache(cfg.CacheDSN)
	}
	return nil
}

// openCache wires the sqlite cache. Failures only cost speed, so they are
// logged and the cache is skipped.
func (a *app) openCache(dsn string) {
	db, err := cache.Open(dsn)
	if err != nil {
		log.Warn().Err(err).Str("dsn", dsn).Msg("first-guess cache disabled")
		return
	}
	if err := cache.Migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		log.Warn().Err(err).Str("dsn", dsn).Msg("first-guess cache disabled")
		return
	}
	a.store = cache.NewSQLite(db)
	a.cleanup = append(a.cleanup, func() { _ = db.Close() })
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	play := newPlayCmd(a)
	root := &cobra.Command{
		Use:   "fibble",
		Short: "Wordle and Fibble with an entropy-based solver",
		Long: `fibble plays Wordle (honest feedback) and Fibble (exactly one lie per row)
in the terminal, and suggests the guess that maximizes expected information.

Without a subcommand it starts a round of "play".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              play.RunE,
	}
	root.Flags().AddFlagSet(play.Flags())
	root.AddCommand(play, newEntropyCmd(a), newSolveCmd(a), newServeCmd(a))
	return root, a
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
