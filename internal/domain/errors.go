package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is not owned by the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400. The concrete error is usually a
// *ValidationError carrying the individual problems.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with a uniqueness rule,
// e.g. signing up with a username that is already taken.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized means the request carries no usable session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidCredentials is returned by login for both an unknown username and
// a wrong password so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrProviderNotConfigured is returned when no itinerary provider credential
// has been configured on the server.
var ErrProviderNotConfigured = errors.New("itinerary provider not configured")

// ErrProviderRateLimited is returned when the itinerary provider rejects a
// call because of rate limits or exhausted quota. Callers may retry later.
var ErrProviderRateLimited = errors.New("itinerary provider rate limited")

// ErrGeneration covers every other itinerary provider failure.
var ErrGeneration = errors.New("itinerary generation failed")

// ValidationError lists every rule an input violated.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Problems []string
}

// Invalid builds a *ValidationError from one or more problem descriptions.
func Invalid(problems ...string) error {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message()
}

// Message joins the problems into a single human-readable sentence.
func (e *ValidationError) Message() string {
	return strings.Join(e.Problems, ", ")
}

// Is lets errors.Is match a *ValidationError against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
