// Package service contains the business logic for the RoamLog API.
// Services validate inputs, enforce business rules such as ownership, and
// orchestrate repo calls. No SQL lives here: services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/repo"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes and x/crypto rejects longer input.
	maxPasswordBytes = 72
)

// TokenIssuer signs and verifies session tokens. *auth.Tokens implements it.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, time.Time, error)
	Verify(token string) (domain.Identity, error)
}

// AuthService implements signup, login and session lookup.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
	cost   int
}

// NewAuthService constructs an AuthService. Passwords are hashed with
// bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Signup validates the credentials, stores a new user with a bcrypt hash of
// the password and returns a fresh session.
// Returns domain.ErrValidation for bad input and domain.ErrConflict when the
// username is already taken.
func (s *AuthService) Signup(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)

	var p problems
	if utf8.RuneCountInString(username) < minUsernameLen {
		p.add(fmt.Sprintf("username must be at least %d characters", minUsernameLen))
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		p.add(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if len(password) > maxPasswordBytes {
		p.add(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	if err := p.err(); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Signup: hash: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return s.session(user)
}

// Login checks the credentials and returns a fresh session.
// An unknown username and a wrong password both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison so response
			// timing does not reveal which usernames exist.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}
	return s.session(user)
}

// CurrentUser returns the identity carried by token, or nil when the token
// is missing, expired or forged. It never fails.
func (s *AuthService) CurrentUser(token string) *domain.Identity {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	return &id
}

func (s *AuthService) session(user domain.User) (domain.Session, error) {
	token, expires, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService: issue token: %w", err)
	}
	return domain.Session{User: user, Token: token, ExpiresAt: expires}, nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("roamlog-timing-equalizer"), bcrypt.DefaultCost)
	})
	return dummy
}
