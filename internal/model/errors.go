package model

import "errors"

// Rejection kinds. Every AccountError unwraps to exactly one of these.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrCascade    = errors.New("cascade failed")
)

// Storage errors
var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameServerNotFound = errors.New("game server not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// Session errors
var (
	ErrAlreadyInSession = errors.New("player is already in session")
	ErrNotInSession     = errors.New("player is not in session")
	ErrNotCreator       = errors.New("player is not the session creator")
	ErrSessionLaunched  = errors.New("session is already launched")
	ErrSessionFull      = errors.New("session is full")
	ErrTooFewPlayers    = errors.New("not enough players to launch")
)

// AccountError is a rejected account operation. Error returns the
// human-readable reason; errors.Is matches the Kind and the optional Cause.
type AccountError struct {
	Kind   error
	Reason string
	Cause  error
}

// NewAccountError creates an AccountError of the given kind
func NewAccountError(kind error, reason string) *AccountError {
	return &AccountError{Kind: kind, Reason: reason}
}

func (e *AccountError) Error() string {
	return e.Reason
}

func (e *AccountError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
