package http

import (
	"context"
	"net/http"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type ContractHandler struct {
	contractSvc service.ContractService
}

func NewContractHandler(contractSvc service.ContractService) *ContractHandler {
	return &ContractHandler{contractSvc: contractSvc}
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID      int32               `json:"customer_id"`
		ContractType    domain.ContractType `json:"contract_type"`
		DateStart       time.Time           `json:"date_start"`
		DiscountPercent float64             `json:"discount_percent"`
		Notes           string              `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	contract, err := h.contractSvc.CreateContract(r.Context(), body.CustomerID, body.ContractType,
		body.DateStart, body.DiscountPercent, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	contract, rentals, err := h.contractSvc.GetContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contract": contract,
		"rentals":  rentals,
	})
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(q.Get("page"), q.Get("page_size"))

	contracts, total, err := h.contractSvc.ListContracts(r.Context(), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contracts": contracts,
		"total":     total,
	})
}

func (h *ContractHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.ConfirmContract)
}

func (h *ContractHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.ActivateContract)
}

func (h *ContractHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.CompleteContract)
}

func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.CancelContract)
}

func (h *ContractHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.RecomputeContract)
}

func (h *ContractHandler) AcceptTerms(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.contractSvc.AcceptTerms)
}

func (h *ContractHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	var body struct {
		AmountCents int32 `json:"amount_cents"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	contract, err := h.contractSvc.RecordPayment(r.Context(), id, body.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int32) (*domain.Contract, error)) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	contract, err := op(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}
