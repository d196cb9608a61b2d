package solver

import (
	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/words"
)

// Consistent reports whether row could have been reported for secret.
//
// Strict: the reported pattern is the true pattern.
// SingleLie: the reported pattern differs from the truth in exactly one tile.
// Each row is judged on its own; there is no lie budget across rows.
func Consistent(secret words.Word, row game.Row, rules game.Ruleset) bool {
	truth := game.ComputePattern(secret, row.Guess())
	d := truth.Distance(row.Pattern())
	if rules == game.SingleLie {
		return d == 1
	}
	return d == 0
}

// RemainingSecrets returns the secrets consistent with every row of history,
// in dictionary order. The result is a fresh slice owned by the caller.
func RemainingSecrets(dict *words.Dictionary, history game.History, rules game.Ruleset) []words.Word {
	secrets := dict.Secrets()
	if history.Len() == 0 {
		return append([]words.Word(nil), secrets...)
	}

	rows := history.Rows()
	out := make([]words.Word, 0, len(secrets))
next:
	for _, s := range secrets {
		for _, r := range rows {
			if !Consistent(s, r, rules) {
				continue next
			}
		}
		out = append(out, s)
	}
	return out
}
