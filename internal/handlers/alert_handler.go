package handlers

import (
	"log"
	"net/http"

	"haulcentral/internal/services"
)

type AlertHandler struct {
	Service  *services.AlertService
	ErrorLog *log.Logger
}

func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	alerts, err := h.Service.ListAlerts(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	alert, err := h.Service.UpdateStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}
