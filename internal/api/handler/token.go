package handler

import (
	"net/http"

	"github.com/mcoot/lobby-accounts/internal/api/middleware"
	"github.com/mcoot/lobby-accounts/internal/api/request"
	"github.com/mcoot/lobby-accounts/internal/api/response"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
)

// TokenHandler handles access token endpoints
type TokenHandler struct {
	authService *auth.Service
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(authService *auth.Service) *TokenHandler {
	return &TokenHandler{
		authService: authService,
	}
}

// Create handles POST /api/tokens
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TokenFromSession(session))
}

// Revoke handles DELETE /api/tokens
func (h *TokenHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.authService.InvalidateSession(middleware.GetToken(r.Context()))
	response.OK(w)
}

// Role handles GET /api/tokens/role
func (h *TokenHandler) Role(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())
	response.JSON(w, http.StatusOK, response.RolesFromCaller(caller))
}
