package domain

// ShareMethod names a channel an invoice message can be sent over.
type ShareMethod string

const (
	ShareMethodMessage  ShareMethod = "Message"
	ShareMethodEmail    ShareMethod = "Email"
	ShareMethodWhatsapp ShareMethod = "Whatsapp"
)

type InvoiceLine struct {
	RowID      string   `json:"rowId"`
	ItemName   string   `json:"itemName"`
	ItemType   ItemType `json:"itemType"`
	Quantity   int      `json:"quantity"`
	Days       int      `json:"days"`
	PerDayRent float64  `json:"perDayRent"`
	Amount     float64  `json:"amount"`
}

// Invoice is rendered from a CustomerData on demand and never stored.
type Invoice struct {
	Number        string        `json:"number"`
	Date          string        `json:"date"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	Address       string        `json:"address,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Email         string        `json:"email,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Status        AccountStatus `json:"status"`
	Lines         []InvoiceLine `json:"lines"`
	GrandTotal    float64       `json:"grandTotal"`
	Message       string        `json:"message"`
	// Links holds ready-to-open share URLs keyed by method.
	Links map[ShareMethod]string `json:"links,omitempty"`
}
