package solver

import (
	"context"
	"slices"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fibble/internal/cache"
	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/words"
)

// TopSecretCount is how many candidate words Insights lists.
const TopSecretCount = 4

// Insights is what a player sees before a guess.
type Insights struct {
	Remaining        int          `json:"remaining"`
	Best             *Suggestion  `json:"best,omitempty"`
	TopSecretGuesses []Suggestion `json:"topSecretGuesses"`
}

// Advisor produces Insights for a dictionary, using an optional cache for
// the opening position.
type Advisor struct {
	dict  *words.Dictionary
	store cache.Store
	opts  []Option
}

// NewAdvisor builds an Advisor. store may be nil.
func NewAdvisor(dict *words.Dictionary, store cache.Store, opts ...Option) *Advisor {
	return &Advisor{dict: dict, store: store, opts: opts}
}

// Suggest ranks guesses for the position reached by history.
// opts are appended to the Advisor's options for this call.
func (a *Advisor) Suggest(ctx context.Context, history game.History, rules game.Ruleset, opts ...Option) Insights {
	candidates := RemainingSecrets(a.dict, history, rules)
	return a.suggest(ctx, candidates, history.Len() == 0, append(a.opts[:len(a.opts):len(a.opts)], opts...))
}

func (a *Advisor) suggest(ctx context.Context, candidates []words.Word, opening bool, opts []Option) Insights {
	switch len(candidates) {
	case 0:
		return Insights{TopSecretGuesses: []Suggestion{}}
	case 1:
		if a.dict.IsAllowed(candidates[0]) {
			only := Suggestion{Word: candidates[0], MatchingSecrets: 1, IsCandidate: true}
			return Insights{Remaining: 1, Best: &only, TopSecretGuesses: []Suggestion{only}}
		}
	}

	if !opening || a.store == nil {
		return a.scan(candidates, opts)
	}

	key := cache.KeyFor(a.dict)
	entries, ok, err := a.store.Load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("load first-guess cache")
	}
	if ok {
		if ranking, valid := a.fromEntries(entries, candidates); valid {
			log.Debug().Int("entries", len(entries)).Msg("first-guess cache hit")
			return fromRanking(len(candidates), ranking)
		}
		log.Warn().Msg("first-guess cache holds unknown words; rescanning")
	}

	ranking := ScanAll(a.dict.Allowed(), candidates, opts...)
	if err := a.store.Save(ctx, key, toEntries(ranking)); err != nil {
		log.Warn().Err(err).Msg("save first-guess cache")
	}
	return fromRanking(len(candidates), ranking)
}

// scan picks the best guess with BestGuess and ranks only the candidates
// for the top secret guesses. The result equals fromRanking over ScanAll.
func (a *Advisor) scan(candidates []words.Word, opts []Option) Insights {
	best, ok := BestGuess(a.dict.Allowed(), candidates, opts...)
	if !ok {
		return Insights{TopSecretGuesses: []Suggestion{}}
	}
	top := Suggestion{
		Word:            best.Guess(),
		EntropyBits:     best.EntropyBits(),
		MatchingSecrets: best.TotalSecrets(),
		IsCandidate:     slices.Contains(candidates, best.Guess()),
	}
	return Insights{
		Remaining:        len(candidates),
		Best:             &top,
		TopSecretGuesses: a.rankCandidates(candidates),
	}
}

// rankCandidates scores the allowed candidates against each other and
// returns the first TopSecretCount in ranking order.
func (a *Advisor) rankCandidates(candidates []words.Word) []Suggestion {
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		i, ok := a.dict.Index(c)
		if !ok {
			continue
		}
		ranked = append(ranked, scored{index: i, candidate: true, entropy: AnalyzeWord(c, candidates)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].beats(&ranked[j]) })

	out := make([]Suggestion, 0, TopSecretCount)
	for _, s := range ranked[:min(len(ranked), TopSecretCount)] {
		out = append(out, Suggestion{
			Word:            s.entropy.guess,
			EntropyBits:     s.entropy.bits,
			MatchingSecrets: s.entropy.total,
			IsCandidate:     true,
		})
	}
	return out
}

func fromRanking(remaining int, ranking []Suggestion) Insights {
	out := Insights{Remaining: remaining, TopSecretGuesses: []Suggestion{}}
	if len(ranking) == 0 {
		return out
	}
	best := ranking[0]
	out.Best = &best
	for _, s := range ranking {
		if len(out.TopSecretGuesses) == TopSecretCount {
			break
		}
		if s.IsCandidate {
			out.TopSecretGuesses = append(out.TopSecretGuesses, s)
		}
	}
	return out
}

func toEntries(ranking []Suggestion) []cache.Entry {
	out := make([]cache.Entry, len(ranking))
	for i, s := range ranking {
		out[i] = cache.Entry{Guess: s.Word.String(), EntropyBits: s.EntropyBits}
	}
	return out
}

// fromEntries rebuilds a ranking from cached entries. valid is false when an
// entry no longer names an allowed word.
func (a *Advisor) fromEntries(entries []cache.Entry, candidates []words.Word) ([]Suggestion, bool) {
	lookup := make(map[words.Word]struct{}, len(candidates))
	for _, c := range candidates {
		lookup[c] = struct{}{}
	}
	out := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		w, err := words.Parse(e.Guess)
		if err != nil || !a.dict.IsAllowed(w) {
			return nil, false
		}
		_, isCandidate := lookup[w]
		out = append(out, Suggestion{
			Word:            w,
			EntropyBits:     e.EntropyBits,
			MatchingSecrets: len(candidates),
			IsCandidate:     isCandidate,
		})
	}
	return out, true
}
