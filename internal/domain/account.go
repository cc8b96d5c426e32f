package domain

// SummaryView names the list view a summary is filed under.
type SummaryView string

const (
	SummaryViewRunning SummaryView = "running"
	SummaryViewHistory SummaryView = "history"
)

// AccountSummary is the lightweight list-view projection of a CustomerData.
// It is always derived from the record and never edited on its own.
type AccountSummary struct {
	ID            string        `json:"id"`
	View          SummaryView   `json:"-"`
	CustomerName  string        `json:"customerName"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	GrandTotal    float64       `json:"grandTotal"`
	Status        AccountStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
