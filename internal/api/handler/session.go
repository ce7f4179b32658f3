package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobby-accounts/internal/api/middleware"
	"github.com/mcoot/lobby-accounts/internal/api/request"
	"github.com/mcoot/lobby-accounts/internal/api/response"
	"github.com/mcoot/lobby-accounts/internal/api/sse"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/lobby"
)

// SessionHandler handles lobby session endpoints
type SessionHandler struct {
	controller lobby.ControllerInterface
	hub        *sse.Hub
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller lobby.ControllerInterface, hub *sse.Hub) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		hub:        hub,
	}
}

// List handles GET /api/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.controller.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionsFromModel(sessions))
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.CreateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GameServer == "" {
		WriteError(w, NewInvalidRequestError("gameServer is required"))
		return
	}

	session, err := h.controller.CreateSession(r.Context(), caller.Name, req.GameServer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.GetSession(r.Context(), model.SessionID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Join handles PUT /api/sessions/{id}/players/{name}
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	name, ok := h.self(w, r)
	if !ok {
		return
	}

	if err := h.controller.JoinSession(r.Context(), model.SessionID(mux.Vars(r)["id"]), name); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// Leave handles DELETE /api/sessions/{id}/players/{name}
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	name, ok := h.self(w, r)
	if !ok {
		return
	}

	if err := h.controller.LeaveSession(r.Context(), model.SessionID(mux.Vars(r)["id"]), name); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// Launch handles POST /api/sessions/{id}/launch
func (h *SessionHandler) Launch(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	if err := h.controller.LaunchSession(r.Context(), model.SessionID(mux.Vars(r)["id"]), caller.Name); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// Events handles GET /api/sessions/events
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())
	sse.ServeSSE(w, r, h.hub, caller.Name)
}

// self checks that the {name} path variable is the caller; players join and
// leave sessions only on their own behalf
func (h *SessionHandler) self(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := middleware.MustGetCaller(r.Context())
	name := mux.Vars(r)["name"]
	if name != caller.Name {
		WriteError(w, NewForbiddenError("Players can only join or leave sessions on their own behalf."))
		return "", false
	}
	return name, true
}
