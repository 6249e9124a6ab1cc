// Package auth issues and verifies the signed session tokens that identify
// a logged-in user, and moves them in and out of HTTP cookies.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// DefaultTTL is how long a session stays valid when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the JWT payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens using secret as the HMAC key. A non-positive
// ttl falls back to DefaultTTL.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL reports how long issued tokens stay valid.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for id and returns it with its expiry.
func (t *Tokens) Issue(id domain.Identity) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID:   id.UserID.String(),
		Username: id.Username,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth.Tokens.Issue: %w", err)
	}
	return signed, expires, nil
}

// Verify checks signature and expiry and returns the identity in the token.
// Every failure is reported as domain.ErrUnauthorized.
func (t *Tokens) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: token expired: %w", domain.ErrUnauthorized)
		}
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: %v: %w", err, domain.ErrUnauthorized)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: bad uid: %w", domain.ErrUnauthorized)
	}
	return domain.Identity{UserID: uid, Username: claims.Username}, nil
}
