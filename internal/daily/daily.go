// internal/daily/daily.go
//
// Deterministic daily secret selection.
// The secret for a UTC date is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo
// the number of secret words, so every process sharing a salt and word list
// agrees on the word of the day.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/fibble/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as a big-endian uint64
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// SecretFor returns the secret word of the day for dict.
func SecretFor(dict *words.Dictionary, date time.Time, salt string) words.Word {
	secrets := dict.Secrets()
	return secrets[WordIndex(date, salt, len(secrets))]
}
