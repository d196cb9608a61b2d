// internal/httpserver/routes_game.go
//
// Round endpoints.
//   - POST /game/new            → start a round (random, fixed or daily secret)
//   - POST /game/guess          → submit a guess (ticket required)
//   - GET  /game/{id}/suggest   → solver insights for the round (ticket required)
//
// Fibble rounds open with one automatic guess, so the first response
// already carries a row.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fibble/internal/daily"
	"github.com/robalobadob/fibble/internal/game"
)

type newGameReq struct {
	Mode   string `json:"mode"`   // "wordle" | "fibble"
	Answer string `json:"answer"` // optional fixed answer (testing)
	Daily  bool   `json:"daily"`  // today's secret; ignored when Answer is set
}

type newGameRes struct {
	GameID      string       `json:"gameId"`
	Ticket      string       `json:"ticket"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	Mode        string       `json:"mode"`
	MaxAttempts int          `json:"maxAttempts"`
	State       game.State   `json:"state"`
	Rows        game.History `json:"rows"`
	Date        string       `json:"date,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	rules, err := game.ParseRuleset(req.Mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var date string
	answer := req.Answer
	if answer == "" && req.Daily {
		now := s.now()
		date = daily.DateKey(now)
		answer = daily.SecretFor(s.deps.Dict, now, s.deps.DailySalt).String()
	}

	rng, err := s.deps.NewRand()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	g, err := game.New(s.deps.Dict, answer, rules, rng)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rules == game.SingleLie {
		if _, err := g.Opener(); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if err := s.deps.Sessions.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	ticket, exp, err := s.deps.Tickets.Issue(g.ID())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	log.Info().Str("gameId", g.ID()).Str("mode", rules.String()).Bool("daily", date != "").Msg("new game")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:      g.ID(),
		Ticket:      ticket,
		ExpiresAt:   exp,
		Mode:        rules.String(),
		MaxAttempts: g.MaxAttempts(),
		State:       g.State(),
		Rows:        g.History(),
		Date:        date,
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Row          game.Row   `json:"row"`
	State        game.State `json:"state"`
	AttemptsLeft int        `json:"attemptsLeft"`
	Answer       string     `json:"answer,omitempty"` // revealed once the round ends
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	g, ok := s.ticketedGame(w, r, req.GameID)
	if !ok {
		return
	}
	row, err := g.Submit(req.Guess)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.deps.Sessions.Save(r.Context(), g); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID()).Msg("refresh game")
	}

	res := guessRes{
		Row:          row,
		State:        g.State(),
		AttemptsLeft: g.MaxAttempts() - g.History().Len(),
	}
	if res.State != game.StatePlaying {
		res.Answer = g.Secret().String()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	g, ok := s.ticketedGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Advisor.Suggest(r.Context(), g.History(), g.Ruleset()))
}

// ticketedGame loads id after checking it matches the request's ticket.
func (s *Server) ticketedGame(w http.ResponseWriter, r *http.Request, id string) (*game.Game, bool) {
	if id == "" || id != ticketGame(r) {
		writeError(w, http.StatusForbidden, "ticket_mismatch")
		return nil, false
	}
	g, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return g, true
}
