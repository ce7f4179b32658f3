package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/lobby-accounts/internal/api/apierr"
	"github.com/mcoot/lobby-accounts/internal/model"
)

type contextKey string

const (
	callerContextKey contextKey = "caller"
	tokenContextKey  contextKey = "token"
)

// Authenticator resolves an access token to the caller it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Caller, error)
}

// Auth creates authentication middleware. The caller's roles are resolved
// on every request from the token, never from the request body.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			caller, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, tokenContextKey, token)
			ctx = context.WithValue(ctx, callerContextKey, caller)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the access token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to the query string, which EventSource clients need
	return r.URL.Query().Get("access_token")
}

// GetCaller returns the authenticated caller from the request context
func GetCaller(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey).(model.Caller)
	return caller, ok
}

// GetToken returns the access token the request was authenticated with
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// MustGetCaller returns the authenticated caller or panics
func MustGetCaller(ctx context.Context) model.Caller {
	caller, ok := GetCaller(ctx)
	if !ok {
		panic("no caller in context - auth middleware not applied?")
	}
	return caller
}
