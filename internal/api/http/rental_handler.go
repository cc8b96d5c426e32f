package http

import (
	"net/http"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/service"
)

// RentalHandler serves the inventory, bookings and contacts screens.
type RentalHandler struct {
	inventory service.InventoryService
	bookings  service.BookingService
	contacts  service.ContactService
}

func NewRentalHandler(inventory service.InventoryService, bookings service.BookingService, contacts service.ContactService) *RentalHandler {
	return &RentalHandler{inventory: inventory, bookings: bookings, contacts: contacts}
}

func (h *RentalHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *RentalHandler) AddInventory(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if !decodeJSON(w, r, &item) {
		return
	}
	created, err := h.inventory.AddItem(r.Context(), &item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RentalHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListBookings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(bookings))
}

func (h *RentalHandler) AddBooking(w http.ResponseWriter, r *http.Request) {
	var booking domain.Booking
	if !decodeJSON(w, r, &booking) {
		return
	}
	created, err := h.bookings.AddBooking(r.Context(), &booking)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RentalHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.ListContacts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(contacts))
}

func (h *RentalHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	var contact domain.Contact
	if !decodeJSON(w, r, &contact) {
		return
	}
	created, err := h.contacts.AddContact(r.Context(), &contact)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
