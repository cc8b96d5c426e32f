package domain

import "time"

type StockStatus string

const (
	StockStatusAvailable  StockStatus = "Available"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// InventoryItem is a rentable stock line (tents, furniture, building material).
type InventoryItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" validate:"required"`
	Size      string      `json:"size"`
	Stock     int         `json:"stock" validate:"gte=0"`
	Price     string      `json:"price"`
	Image     string      `json:"image,omitempty" validate:"omitempty,url"`
	Status    StockStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking is an advance reservation taken before a ledger is opened.
type Booking struct {
	ID        string        `json:"id"`
	Customer  string        `json:"customer" validate:"required"`
	Email     string        `json:"email,omitempty" validate:"omitempty,email"`
	Date      string        `json:"date"`
	Items     string        `json:"items"`
	Amount    string        `json:"amount"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
