package http

import (
	"net/http"

	"bikeshop-rental-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Rental   *RentalHandler
	Contract *ContractHandler
	Bike     *BikeHandler
	Pricing  *PricingHandler
	Customer *CustomerHandler
}

// NewRouter wires all routes under /api/v1. Everything except the health
// check sits behind staff authentication.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Bikes
	api.HandleFunc("/bikes", h.Bike.Create).Methods(http.MethodPost)
	api.HandleFunc("/bikes", h.Bike.List).Methods(http.MethodGet)
	api.HandleFunc("/bikes/rentable", h.Bike.ListRentable).Methods(http.MethodGet)
	api.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Get).Methods(http.MethodGet)
	api.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Update).Methods(http.MethodPut)
	api.HandleFunc("/bikes/{id:[0-9]+}", h.Bike.Archive).Methods(http.MethodDelete)
	api.HandleFunc("/bikes/{id:[0-9]+}/maintenance", h.Bike.SetMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/bikes/{id:[0-9]+}/availability", h.Rental.CheckAvailability).Methods(http.MethodGet)

	// Accessories
	api.HandleFunc("/accessories", h.Bike.ListAccessories).Methods(http.MethodGet)
	api.HandleFunc("/accessories", h.Bike.CreateAccessory).Methods(http.MethodPost)

	// Rentals
	api.HandleFunc("/rentals", h.Rental.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", h.Rental.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/confirm", h.Rental.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/start", h.Rental.Start).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", h.Rental.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", h.Rental.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/extend", h.Rental.Extend).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/deposit-return", h.Rental.ReturnDeposit).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/invoice-lines", h.Rental.InvoiceLines).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/invoice", h.Rental.CreateInvoice).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/events", h.Rental.Events).Methods(http.MethodGet)

	// Contracts
	api.HandleFunc("/contracts", h.Contract.Create).Methods(http.MethodPost)
	api.HandleFunc("/contracts", h.Contract.List).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id:[0-9]+}", h.Contract.Get).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id:[0-9]+}/confirm", h.Contract.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/activate", h.Contract.Activate).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/complete", h.Contract.Complete).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/cancel", h.Contract.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/recompute", h.Contract.Recompute).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/accept-terms", h.Contract.AcceptTerms).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id:[0-9]+}/payments", h.Contract.RecordPayment).Methods(http.MethodPost)

	// Pricing
	api.HandleFunc("/pricing/quote", h.Pricing.GetPrice).Methods(http.MethodGet)
	api.HandleFunc("/pricing/rules", h.Pricing.List).Methods(http.MethodGet)
	api.HandleFunc("/pricing/rules", h.Pricing.Create).Methods(http.MethodPost)
	api.HandleFunc("/pricing/rules/{id:[0-9]+}", h.Pricing.Update).Methods(http.MethodPut)
	api.HandleFunc("/pricing/rules/{id:[0-9]+}", h.Pricing.Delete).Methods(http.MethodDelete)

	// Customers
	api.HandleFunc("/customers", h.Customer.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers", h.Customer.List).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", h.Customer.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}/rentals", h.Customer.RentalHistory).Methods(http.MethodGet)

	return r
}
