package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobby-accounts/internal/api/middleware"
	"github.com/mcoot/lobby-accounts/internal/api/response"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/account"
)

// UserHandler handles account endpoints
type UserHandler struct {
	accounts *account.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(accounts *account.Service) *UserHandler {
	return &UserHandler{
		accounts: accounts,
	}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	players, err := h.accounts.ListPlayers(r.Context(), caller)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Create handles PUT /api/users/{name}
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var form model.AccountForm
	if !decodeBody(w, r, &form) {
		return
	}

	msg, err := h.accounts.CreatePlayer(r.Context(), caller, mux.Vars(r)["name"], form)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/users/{name}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	if err := h.accounts.DeletePlayer(r.Context(), caller, mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// Get handles GET /api/users/{name}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	player, err := h.accounts.GetPlayer(r.Context(), caller, mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// UpdatePassword handles POST /api/users/{name}/password
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var form model.PasswordForm
	if !decodeBody(w, r, &form) {
		return
	}

	if err := h.accounts.UpdatePassword(r.Context(), caller, mux.Vars(r)["name"], form); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// UpdateColour handles POST /api/users/{name}/colour
func (h *UserHandler) UpdateColour(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var form model.ColourForm
	if !decodeBody(w, r, &form) {
		return
	}

	if err := h.accounts.UpdateColour(r.Context(), caller, mux.Vars(r)["name"], form.Colour); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// GetColour handles GET /api/users/{name}/colour
func (h *UserHandler) GetColour(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	colour, err := h.accounts.GetColour(r.Context(), caller, mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Colour{Colour: colour})
}
