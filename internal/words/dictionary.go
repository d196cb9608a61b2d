// internal/words/dictionary.go
//
// Dictionary: the immutable pair of word lists every solver operation reads.
//
// Invariants (checked once in NewDictionary, never rechecked):
//   • both lists are non-empty and contain only valid words;
//   • every secret is an allowed guess.
//
// Lists keep their input order; duplicates are dropped keeping the first
// occurrence so scans never score the same word twice.

package words

import "fmt"

// Dictionary holds the allowed guesses and the secret words.
// It is safe for concurrent reads and must not be modified after construction.
type Dictionary struct {
	allowed []Word
	secrets []Word
	index   map[Word]int // allowed word -> position in allowed
}

// NewDictionary validates and builds a Dictionary from raw word lists.
// Any failure is a *ConfigError (errors.Is(err, ErrFatalConfig)).
func NewDictionary(allowed, secrets []string) (*Dictionary, error) {
	aw, err := ParseAll(allowed)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("allowed list: %v", err)}
	}
	sw, err := ParseAll(secrets)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("secret list: %v", err)}
	}
	return FromWords(aw, sw)
}

// FromWords builds a Dictionary from already parsed words.
func FromWords(allowed, secrets []Word) (*Dictionary, error) {
	d := &Dictionary{index: make(map[Word]int, len(allowed))}
	for _, w := range allowed {
		if _, dup := d.index[w]; dup {
			continue
		}
		d.index[w] = len(d.allowed)
		d.allowed = append(d.allowed, w)
	}
	if len(d.allowed) == 0 {
		return nil, &ConfigError{Reason: "allowed list is empty"}
	}

	seen := make(map[Word]struct{}, len(secrets))
	for _, w := range secrets {
		if _, dup := seen[w]; dup {
			continue
		}
		if _, ok := d.index[w]; !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("secret word %s missing from allowed list", w)}
		}
		seen[w] = struct{}{}
		d.secrets = append(d.secrets, w)
	}
	if len(d.secrets) == 0 {
		return nil, &ConfigError{Reason: "secret list is empty"}
	}
	return d, nil
}

// Allowed returns the allowed guesses in list order. Callers must not modify it.
func (d *Dictionary) Allowed() []Word { return d.allowed }

// Secrets returns the secret words in list order. Callers must not modify it.
func (d *Dictionary) Secrets() []Word { return d.secrets }

// IsAllowed reports whether w is an allowed guess.
func (d *Dictionary) IsAllowed(w Word) bool {
	_, ok := d.index[w]
	return ok
}

// Index returns the position of w in the allowed list.
func (d *Dictionary) Index(w Word) (int, bool) {
	i, ok := d.index[w]
	return i, ok
}

// Lookup runs the full guess validation: normalize, length, characters,
// then membership. It is the entry point for user-supplied guesses.
func (d *Dictionary) Lookup(s string) (Word, error) {
	w, err := Parse(s)
	if err != nil {
		return w, err
	}
	if !d.IsAllowed(w) {
		return w, &UnknownWordError{Word: w.String()}
	}
	return w, nil
}

// Stats returns the list sizes: (secrets, allowed).
func (d *Dictionary) Stats() (secretCount int, allowedCount int) {
	return len(d.secrets), len(d.allowed)
}
