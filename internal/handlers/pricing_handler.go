package handlers

import (
	"net/http"

	"haulcentral/internal/pricing"
)

type PricingHandler struct{}

func (h *PricingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Catalog())
}

func (h *PricingHandler) ForCategory(w http.ResponseWriter, r *http.Request) {
	category, err := pathParam(r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	plans, ok := pricing.ForCategory(category)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category "+category)
		return
	}
	writeJSON(w, http.StatusOK, pricing.CategoryPlans{Category: category, Plans: plans})
}
