package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobby-accounts/internal/api/handler"
	"github.com/mcoot/lobby-accounts/internal/api/middleware"
	"github.com/mcoot/lobby-accounts/internal/api/sse"
	"github.com/mcoot/lobby-accounts/internal/services/account"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	"github.com/mcoot/lobby-accounts/internal/services/lobby"
	"github.com/mcoot/lobby-accounts/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	AccountService  *account.Service
	RegistryService *registry.Service
	LobbyController *lobby.Controller
	Hub             *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tokenHandler := handler.NewTokenHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AccountService)
	gameServerHandler := handler.NewGameServerHandler(cfg.RegistryService)
	sessionHandler := handler.NewSessionHandler(cfg.LobbyController, cfg.Hub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/tokens", tokenHandler.Create).Methods(http.MethodPost)

	// Everything else requires a token
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/tokens", tokenHandler.Revoke).Methods(http.MethodDelete)
	protected.HandleFunc("/tokens/role", tokenHandler.Role).Methods(http.MethodGet)

	// Account routes; authorization is decided per operation by the account service
	protected.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{name}", userHandler.Create).Methods(http.MethodPut)
	protected.HandleFunc("/users/{name}", userHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{name}", userHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{name}/password", userHandler.UpdatePassword).Methods(http.MethodPost)
	protected.HandleFunc("/users/{name}/colour", userHandler.UpdateColour).Methods(http.MethodPost)
	protected.HandleFunc("/users/{name}/colour", userHandler.GetColour).Methods(http.MethodGet)

	// Game server registry
	protected.HandleFunc("/gameservices", gameServerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/gameservices/{name}", gameServerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/gameservices/{name}", gameServerHandler.Register).Methods(http.MethodPut)
	protected.HandleFunc("/gameservices/{name}", gameServerHandler.Unregister).Methods(http.MethodDelete)

	// Lobby sessions
	protected.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/events", sessionHandler.Events).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}/launch", sessionHandler.Launch).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}/players/{name}", sessionHandler.Join).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{id}/players/{name}", sessionHandler.Leave).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
