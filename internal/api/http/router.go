package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router serves. Images may be nil when no
// image store is configured.
type Handlers struct {
	Auth     *AuthHandler
	Ledger   *LedgerHandler
	Invoices *InvoiceHandler
	Rental   *RentalHandler
	Images   *ImageHandler
}

func NewRouter(h Handlers, middleware ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(middleware...)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	api.HandleFunc("/ledger/preview", h.Ledger.Preview).Methods(http.MethodPost)
	api.HandleFunc("/records", h.Ledger.CreateRecord).Methods(http.MethodPost)
	api.HandleFunc("/records", h.Ledger.SearchRecords).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", h.Ledger.GetRecord).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", h.Ledger.UpdateRecord).Methods(http.MethodPut)
	api.HandleFunc("/accounts/running", h.Ledger.ListRunning).Methods(http.MethodGet)
	api.HandleFunc("/accounts/history", h.Ledger.ListHistory).Methods(http.MethodGet)
	api.HandleFunc("/accounts/rebuild", h.Ledger.Rebuild).Methods(http.MethodPost)

	api.HandleFunc("/invoices/{id}", h.Invoices.Get).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/send", h.Invoices.Send).Methods(http.MethodPost)

	api.HandleFunc("/inventory", h.Rental.ListInventory).Methods(http.MethodGet)
	api.HandleFunc("/inventory", h.Rental.AddInventory).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.Rental.ListBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.Rental.AddBooking).Methods(http.MethodPost)
	api.HandleFunc("/contacts", h.Rental.ListContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts", h.Rental.AddContact).Methods(http.MethodPost)

	if h.Images != nil {
		api.HandleFunc("/inventory/images", h.Images.Upload).Methods(http.MethodPost)
		api.HandleFunc("/images/{key}", h.Images.Download).Methods(http.MethodGet)
	}

	return r
}
