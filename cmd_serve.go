package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/fibble/internal/httpserver"
	"github.com/robalobadob/fibble/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var sessionTTL time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game and solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := httpserver.New(httpserver.Deps{
				Dict:         a.dict,
				Sessions:     store.NewMemoryStore(sessionTTL),
				Advisor:      a.advisor(),
				Tickets:      httpserver.NewTickets(a.cfg.JWTSecret, a.cfg.TicketTTL),
				DailySalt:    a.cfg.DailySalt,
				ClientOrigin: a.cfg.ClientOrigin,
			})
			hs := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- hs.ListenAndServe() }()
			log.Info().Str("port", a.cfg.Port).Bool("cache", a.store != nil).Msg("starting fibble server")

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := hs.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 6*time.Hour, "drop rounds idle for longer than this")
	return cmd
}
