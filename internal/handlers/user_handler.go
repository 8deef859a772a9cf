package handlers

import (
	"log"
	"net/http"

	"haulcentral/internal/models"
	"haulcentral/internal/services"
)

type UserHandler struct {
	Service  *services.UserService
	ErrorLog *log.Logger
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *UserHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.Service.LogOut(r.Context(), userID); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// AuthState answers with the signed-in user or a null user. It never fails
// for a missing or stale token.
func (h *UserHandler) AuthState(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	state, err := h.Service.AuthState(r.Context(), id.UserID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": services.DashboardPath(id.Category)})
}

func (h *UserHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.RegisterDevice(r.Context(), userID, req.Token); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
