package domain

import "time"

// Contact is an address-book entry, independent of ledger records.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Orders    int       `json:"orders"`
	Spent     float64   `json:"spent"`
	CreatedAt time.Time `json:"createdAt"`
}
