// internal/httpserver/routes_solver.go
//
// Stateless solver endpoints for rounds played elsewhere.
//   - POST /analyze → pattern distribution of one guess over the candidates
//   - POST /solve   → remaining candidates and suggestions

package httpserver

import (
	"net/http"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/solver"
	"github.com/robalobadob/fibble/internal/words"
)

// maxListedCandidates caps the candidate list in /solve responses.
const maxListedCandidates = 50

type rowReq struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

type positionReq struct {
	Mode string   `json:"mode"`
	Rows []rowReq `json:"rows"`
}

// position parses a ruleset and history from a request.
func (s *Server) position(p positionReq) (game.Ruleset, game.History, error) {
	rules, err := game.ParseRuleset(p.Mode)
	if err != nil {
		return rules, game.History{}, err
	}
	var h game.History
	for _, rr := range p.Rows {
		g, err := s.deps.Dict.Lookup(rr.Guess)
		if err != nil {
			return rules, game.History{}, err
		}
		pat, err := game.ParsePattern(g, rr.Pattern)
		if err != nil {
			return rules, game.History{}, err
		}
		h = h.Append(game.NewRow(g, pat))
	}
	return rules, h, nil
}

type analyzeReq struct {
	positionReq
	Guess string `json:"guess"`
}

type analyzeRes struct {
	Guess            string                `json:"guess"`
	TotalSecrets     int                   `json:"totalSecrets"`
	DistinctPatterns int                   `json:"distinctPatterns"`
	EntropyBits      float64               `json:"entropyBits"`
	Patterns         []solver.PatternCount `json:"patterns"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeReq
	if !decode(w, r, &req) {
		return
	}
	rules, h, err := s.position(req.positionReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	e, err := solver.Analyze(s.deps.Dict, req.Guess, solver.RemainingSecrets(s.deps.Dict, h, rules))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeRes{
		Guess:            e.Guess().String(),
		TotalSecrets:     e.TotalSecrets(),
		DistinctPatterns: e.DistinctPatterns(),
		EntropyBits:      e.EntropyBits(),
		Patterns:         e.PatternCounts(),
	})
}

type solveRes struct {
	Candidates []string        `json:"candidates"`
	Truncated  bool            `json:"truncated"`
	Insights   solver.Insights `json:"insights"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req positionReq
	if !decode(w, r, &req) {
		return
	}
	rules, h, err := s.position(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cands := solver.RemainingSecrets(s.deps.Dict, h, rules)
	res := solveRes{
		Candidates: words.Strings(cands),
		Insights:   s.deps.Advisor.Suggest(r.Context(), h, rules),
	}
	if len(res.Candidates) > maxListedCandidates {
		res.Candidates, res.Truncated = res.Candidates[:maxListedCandidates], true
	}
	writeJSON(w, http.StatusOK, res)
}
