package handlers

import (
	"log"
	"net/http"

	"haulcentral/internal/services"
)

type DashboardHandler struct {
	Service  *services.DashboardService
	ErrorLog *log.Logger
}

func (h *DashboardHandler) OwnerOperator(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	dash, err := h.Service.OwnerOperator(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Carrier(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	dash, err := h.Service.Carrier(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Broker(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	dash, err := h.Service.Broker(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
