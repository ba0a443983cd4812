package http

import (
	"net/http"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type BikeHandler struct {
	catalogSvc service.CatalogService
}

func NewBikeHandler(catalogSvc service.CatalogService) *BikeHandler {
	return &BikeHandler{catalogSvc: catalogSvc}
}

func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bike domain.Bike
	if err := decodeBody(r, &bike); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.AddBike(r.Context(), &bike); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	bike, err := h.catalogSvc.GetBike(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	var bike domain.Bike
	if err := decodeBody(r, &bike); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	bike.ID = id
	if err := h.catalogSvc.UpdateBike(r.Context(), &bike); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	if err := h.catalogSvc.ArchiveBike(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BikeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(q.Get("page"), q.Get("page_size"))

	bikes, total, err := h.catalogSvc.ListBikes(r.Context(), q.Get("type"), q.Get("size"), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bikes": bikes,
		"total": total,
	})
}

func (h *BikeHandler) ListRentable(w http.ResponseWriter, r *http.Request) {
	bikes, err := h.catalogSvc.ListRentableBikes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bikes": bikes})
}

func (h *BikeHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	var body struct {
		InMaintenance bool `json:"in_maintenance"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	bike, err := h.catalogSvc.SetMaintenance(r.Context(), id, body.InMaintenance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	accessories, err := h.catalogSvc.ListAccessories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accessories": accessories})
}

func (h *BikeHandler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	var accessory domain.Accessory
	if err := decodeBody(r, &accessory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.AddAccessory(r.Context(), &accessory); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accessory)
}
