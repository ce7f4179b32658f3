package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobby-accounts/internal/api/middleware"
	"github.com/mcoot/lobby-accounts/internal/api/response"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/registry"
)

// GameServerHandler handles game-server registry endpoints
type GameServerHandler struct {
	registry *registry.Service
}

// NewGameServerHandler creates a new game server handler
func NewGameServerHandler(registry *registry.Service) *GameServerHandler {
	return &GameServerHandler{
		registry: registry,
	}
}

// List handles GET /api/gameservices
func (h *GameServerHandler) List(w http.ResponseWriter, r *http.Request) {
	servers, err := h.registry.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameServersFromModel(servers))
}

// Get handles GET /api/gameservices/{name}
func (h *GameServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	gs, err := h.registry.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameServerFromModel(gs))
}

// Register handles PUT /api/gameservices/{name}
func (h *GameServerHandler) Register(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var form model.GameServerForm
	if !decodeBody(w, r, &form) {
		return
	}
	if form.Name != mux.Vars(r)["name"] {
		WriteError(w, NewInvalidRequestError("game server name mismatch, comparing body and URL parameters"))
		return
	}

	gs, err := h.registry.Register(r.Context(), caller, form)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameServerFromModel(gs))
}

// Unregister handles DELETE /api/gameservices/{name}
func (h *GameServerHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	if err := h.registry.Unregister(r.Context(), caller, mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}
