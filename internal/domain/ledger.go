package domain

import "time"

type ItemType string

const (
	ItemTypeTent          ItemType = "Tent"
	ItemTypeCatering      ItemType = "Catering"
	ItemTypeHouseBuilding ItemType = "House Building"
)

// ItemStatus tracks physical handling of a rented item. It is operator-set
// and never feeds into account status.
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "Pending"
	ItemStatusTake    ItemStatus = "Take"
	ItemStatusGet     ItemStatus = "Get"
	ItemStatusClear   ItemStatus = "Clear"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnPaid PaymentStatus = "UnPaid"
)

type AccountStatus string

const (
	AccountStatusRunning   AccountStatus = "RUNNING"
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusCompleted AccountStatus = "COMPLETED"
)

// LedgerRow is one itemized rental line. Dates are calendar dates in
// YYYY-MM-DD form; an empty EndDate means the rental is still open.
type LedgerRow struct {
	ID           string     `json:"id"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	ItemName     string     `json:"itemName"`
	ItemType     ItemType   `json:"itemType" validate:"oneof=Tent Catering 'House Building'"`
	ItemStatus   ItemStatus `json:"itemStatus" validate:"oneof=Pending Take Get Clear"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	ReturnItems  int        `json:"returnItems" validate:"gte=0"`
	PerPieceRent float64    `json:"perPieceRent" validate:"gte=0"`
	// TotalPerDayRent is a display cache of Quantity * PerPieceRent.
	TotalPerDayRent float64 `json:"totalPerDayRent"`
}

// CustomerData is the authoritative ledger record for one customer
// transaction. It owns its rows exclusively.
type CustomerData struct {
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName" validate:"required"`
	Address       string        `json:"address,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Email         string        `json:"email,omitempty" validate:"omitempty,email"`
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"oneof=Paid UnPaid"`
	LedgerRows    []LedgerRow   `json:"ledgerRows" validate:"min=1,dive"`
	GrandTotal    float64       `json:"grandTotal"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// RecordFilter selects records on the history screen.
type RecordFilter string

const (
	RecordFilterAll      RecordFilter = "All"
	RecordFilterRunning  RecordFilter = "Running"
	RecordFilterPending  RecordFilter = "Pending"
	RecordFilterComplete RecordFilter = "Complete"
)

// Matches reports whether the record belongs under the filter. Complete
// means paid, regardless of open rows.
func (f RecordFilter) Matches(c *CustomerData) bool {
	switch f {
	case RecordFilterRunning:
		return c.Status == AccountStatusRunning
	case RecordFilterPending:
		return c.PaymentStatus == PaymentStatusUnPaid && c.Status != AccountStatusRunning
	case RecordFilterComplete:
		return c.PaymentStatus == PaymentStatusPaid
	default:
		return true
	}
}

func (f RecordFilter) Valid() bool {
	switch f {
	case RecordFilterAll, RecordFilterRunning, RecordFilterPending, RecordFilterComplete:
		return true
	}
	return false
}
