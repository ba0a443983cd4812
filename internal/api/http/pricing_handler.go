package http

import (
	"net/http"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type PricingHandler struct {
	pricingSvc service.PricingService
}

func NewPricingHandler(pricingSvc service.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

func (h *PricingHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rule, err := h.pricingSvc.GetPrice(r.Context(),
		domain.BikeType(q.Get("bike_type")),
		domain.DurationUnit(q.Get("unit")),
		domain.Season(q.Get("season")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.pricingSvc.ListRules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (h *PricingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rule domain.PricingRule
	if err := decodeBody(r, &rule); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rule.Active = true
	if err := h.pricingSvc.CreateRule(r.Context(), &rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (h *PricingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rule id"})
		return
	}
	var rule domain.PricingRule
	if err := decodeBody(r, &rule); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rule.ID = id
	if err := h.pricingSvc.UpdateRule(r.Context(), &rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *PricingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rule id"})
		return
	}
	if err := h.pricingSvc.DeleteRule(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
