package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	"github.com/mcoot/lobby-accounts/internal/services/registry"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"

	// Account rejections
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNameTaken        = "NAME_TAKEN"
	CodeNoSuchUser       = "NO_SUCH_USER"
	CodeCascadeFailed    = "CASCADE_FAILED"

	// Registry and sessions
	CodeAdminRequired      = "ADMIN_REQUIRED"
	CodeIdentifierMismatch = "IDENTIFIER_MISMATCH"
	CodeInvalidGameServer  = "INVALID_GAME_SERVER"
	CodeGameServerNotFound = "GAME_SERVER_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeAlreadyInSession   = "ALREADY_IN_SESSION"
	CodeNotInSession       = "NOT_IN_SESSION"
	CodeNotCreator         = "NOT_CREATOR"
	CodeSessionLaunched    = "SESSION_LAUNCHED"
	CodeSessionFull        = "SESSION_FULL"
	CodeTooFewPlayers      = "TOO_FEW_PLAYERS"
)

// accountCodes maps each account rejection kind to its code. Account
// rejections are all client errors and keep their reason as message.
var accountCodes = []struct {
	kind error
	code string
}{
	{model.ErrValidation, CodeValidationFailed},
	{model.ErrConflict, CodeNameTaken},
	{model.ErrNotFound, CodeNoSuchUser},
	{model.ErrForbidden, CodeForbidden},
	{model.ErrCascade, CodeCascadeFailed},
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err is reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var accErr *model.AccountError
	if errors.As(err, &accErr) {
		for _, ac := range accountCodes {
			if errors.Is(accErr.Kind, ac.kind) {
				return &httpError{http.StatusBadRequest, APIError{ac.code, accErr.Reason}}
			}
		}
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, accErr.Reason}}
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid name or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	// Registry errors
	case errors.Is(err, registry.ErrAdminRequired):
		return &httpError{http.StatusForbidden, APIError{CodeAdminRequired, "Only admins can manage game servers"}}
	case errors.Is(err, registry.ErrIdentifierMismatch):
		return &httpError{http.StatusForbidden, APIError{CodeIdentifierMismatch, "Game server is owned by another admin"}}
	case errors.Is(err, registry.ErrInvalidGameServer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameServer, err.Error()}}

	// Model errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNoSuchUser, "Player not found"}}
	case errors.Is(err, model.ErrGameServerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameServerNotFound, "Game server not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrAlreadyInSession):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInSession, "Already in this session"}}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusNotFound, APIError{CodeNotInSession, "Not in this session"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotCreator, "Only the session creator can perform this action"}}
	case errors.Is(err, model.ErrSessionLaunched):
		return &httpError{http.StatusConflict, APIError{CodeSessionLaunched, "Session is already launched"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Session is full"}}
	case errors.Is(err, model.ErrTooFewPlayers):
		return &httpError{http.StatusConflict, APIError{CodeTooFewPlayers, "Not enough players to launch"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
