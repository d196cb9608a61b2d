// internal/httpserver/ticket.go
//
// Game tickets.
// A ticket is an HS256 JWT whose subject is a game ID. It is issued by
// POST /game/new and must accompany every request that reads or changes
// that round, so a client cannot act on a round it did not start.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoTicket = errors.New("missing ticket")

// Tickets signs and verifies game tickets.
type Tickets struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTickets builds a ticket issuer. ttl <= 0 means 24h.
func NewTickets(secret string, ttl time.Duration) *Tickets {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tickets{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a ticket for gameID.
func (t *Tickets) Issue(gameID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// Verify returns the game ID carried by a valid ticket.
func (t *Tickets) Verify(raw string) (string, error) {
	if raw == "" {
		return "", errNoTicket
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("verify ticket: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("verify ticket: empty subject")
	}
	return claims.Subject, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

type ctxTicketKey struct{}

// requireTicket rejects requests without a valid ticket and stores the
// ticket's game ID in the request context.
func (t *Tickets) requireTicket(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := t.Verify(bearer(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_ticket")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxTicketKey{}, id)))
	})
}

// ticketGame returns the game ID placed by requireTicket.
func ticketGame(r *http.Request) string {
	id, _ := r.Context().Value(ctxTicketKey{}).(string)
	return id
}
