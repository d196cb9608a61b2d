// internal/httpserver/server.go
//
// HTTP server wiring for the Fibble solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /game/new issues a ticket; POST /game/guess and
//     GET /game/{id}/suggest require it.
//   - Stateless solver endpoints: POST /analyze, POST /solve.
//
// Notes:
//   - Rounds live in a store.Store; nothing about a round is written to disk.
//   - Suggestions go through solver.Advisor, so the opening scan is served
//     from the first-guess cache when one is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/random"
	"github.com/robalobadob/fibble/internal/solver"
	"github.com/robalobadob/fibble/internal/store"
	"github.com/robalobadob/fibble/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Dict     *words.Dictionary
	Sessions store.Store
	Advisor  *solver.Advisor
	Tickets  *Tickets

	DailySalt    string
	ClientOrigin string
	// Timeout bounds each request; zero means 30s.
	Timeout time.Duration
	// NewRand seeds each round; nil means crypto-seeded.
	NewRand func() (*rand.Rand, error)
}

// Server bundles the router and its dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
	now  func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}
	if d.NewRand == nil {
		d.NewRand = random.New
	}
	if d.ClientOrigin == "" {
		d.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), deps: d, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.Timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(d.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"fibble","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}/suggest","POST /analyze","POST /solve"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		sc, ac := d.Dict.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": sc, "allowed": ac, "sessions": d.Sessions.Len()})
	})

	// --- rounds ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(d.Tickets.requireTicket)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}/suggest", s.handleSuggest)
	})

	// --- solver ---
	s.r.Post("/analyze", s.handleAnalyze)
	s.r.Post("/solve", s.handleSolve)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeDomainError maps validation errors to 4xx codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, words.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, "invalid_length")
	case errors.Is(err, words.ErrInvalidCharacters):
		writeError(w, http.StatusBadRequest, "invalid_characters")
	case errors.Is(err, words.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, "unknown_word")
	case errors.Is(err, game.ErrBadPattern):
		writeError(w, http.StatusBadRequest, "bad_pattern")
	case errors.Is(err, game.ErrUnknownRuleset):
		writeError(w, http.StatusBadRequest, "unknown_mode")
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
