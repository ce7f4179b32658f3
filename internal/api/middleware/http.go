package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lobby-accounts/internal/api/apierr"
	"github.com/mcoot/lobby-accounts/internal/middleware"
)

// Logging tags API requests with a request ID and logs them
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With("component", "http"))
}

// Recovery answers a panicking API handler with the JSON internal error
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With("component", "http"), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
