package handlers

import (
	"log"
	"net/http"

	"haulcentral/internal/models"
	"haulcentral/internal/services"
)

type TruckHandler struct {
	Service  *services.TruckService
	ErrorLog *log.Logger
}

func (h *TruckHandler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.CreateTruckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	truck, err := h.Service.CreateTruck(r.Context(), userID, req)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, truck)
}

func (h *TruckHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	trucks, err := h.Service.ListTrucks(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}
