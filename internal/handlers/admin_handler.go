package handlers

import (
	"log"
	"net/http"

	"haulcentral/internal/models"
	"haulcentral/internal/services"
)

type AdminHandler struct {
	Service  *services.AdminService
	ErrorLog *log.Logger
}

// Verify exchanges the 4-digit keycode for an admin grant.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.VerifyKeycodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	grant, err := h.Service.Verify(r.Context(), userID, req.Keycode)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, grant)
}

func (h *AdminHandler) ChangeKeycode(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.VerifyKeycodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.ChangeKeycode(r.Context(), userID, req.Keycode); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	users, err := h.Service.ListCompanyUsers(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.AddCompanyUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Service.AddCompanyUser(r.Context(), userID, req)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
