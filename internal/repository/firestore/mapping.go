package firestore

import (
	"time"

	"tent-ledger-backend/internal/domain"
)

type rowDoc struct {
	ID              string  `firestore:"id"`
	StartDate       string  `firestore:"startDate"`
	EndDate         string  `firestore:"endDate"`
	ItemName        string  `firestore:"itemName"`
	ItemType        string  `firestore:"itemType"`
	ItemStatus      string  `firestore:"itemStatus"`
	Quantity        int64   `firestore:"quantity"`
	ReturnItems     int64   `firestore:"returnItems"`
	PerPieceRent    float64 `firestore:"perPieceRent"`
	TotalPerDayRent float64 `firestore:"totalPerDayRent"`
}

type customerDoc struct {
	CustomerID    string    `firestore:"customerId"`
	CustomerName  string    `firestore:"customerName"`
	Address       string    `firestore:"address"`
	Phone         string    `firestore:"phone"`
	Email         string    `firestore:"email"`
	PaymentStatus string    `firestore:"paymentStatus"`
	LedgerRows    []rowDoc  `firestore:"ledgerRows"`
	GrandTotal    float64   `firestore:"grandTotal"`
	Status        string    `firestore:"status"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

type summaryDoc struct {
	CustomerName  string  `firestore:"customerName"`
	StartDate     string  `firestore:"startDate"`
	EndDate       string  `firestore:"endDate"`
	GrandTotal    float64 `firestore:"grandTotal"`
	Status        string  `firestore:"status"`
	PaymentStatus string  `firestore:"paymentStatus"`
}

func customerToDoc(c *domain.CustomerData) customerDoc {
	rows := make([]rowDoc, 0, len(c.LedgerRows))
	for _, r := range c.LedgerRows {
		rows = append(rows, rowDoc{
			ID:              r.ID,
			StartDate:       r.StartDate,
			EndDate:         r.EndDate,
			ItemName:        r.ItemName,
			ItemType:        string(r.ItemType),
			ItemStatus:      string(r.ItemStatus),
			Quantity:        int64(r.Quantity),
			ReturnItems:     int64(r.ReturnItems),
			PerPieceRent:    r.PerPieceRent,
			TotalPerDayRent: r.TotalPerDayRent,
		})
	}
	return customerDoc{
		CustomerID:    c.CustomerID,
		CustomerName:  c.CustomerName,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		PaymentStatus: string(c.PaymentStatus),
		LedgerRows:    rows,
		GrandTotal:    c.GrandTotal,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// toDomain maps a stored document back. Documents written by older clients
// may lack the customerId field, so the document id wins.
func (d customerDoc) toDomain(docID string) *domain.CustomerData {
	var rows []domain.LedgerRow
	if d.LedgerRows != nil {
		rows = make([]domain.LedgerRow, 0, len(d.LedgerRows))
	}
	for _, r := range d.LedgerRows {
		rows = append(rows, domain.LedgerRow{
			ID:              r.ID,
			StartDate:       r.StartDate,
			EndDate:         r.EndDate,
			ItemName:        r.ItemName,
			ItemType:        domain.ItemType(r.ItemType),
			ItemStatus:      domain.ItemStatus(r.ItemStatus),
			Quantity:        int(r.Quantity),
			ReturnItems:     int(r.ReturnItems),
			PerPieceRent:    r.PerPieceRent,
			TotalPerDayRent: r.TotalPerDayRent,
		})
	}
	return &domain.CustomerData{
		CustomerID:    docID,
		CustomerName:  d.CustomerName,
		Address:       d.Address,
		Phone:         d.Phone,
		Email:         d.Email,
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		LedgerRows:    rows,
		GrandTotal:    d.GrandTotal,
		Status:        domain.AccountStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func summaryToDoc(s domain.AccountSummary) summaryDoc {
	return summaryDoc{
		CustomerName:  s.CustomerName,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		GrandTotal:    s.GrandTotal,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
	}
}

func (d summaryDoc) toDomain(docID string, view domain.SummaryView) domain.AccountSummary {
	return domain.AccountSummary{
		ID:            docID,
		View:          view,
		CustomerName:  d.CustomerName,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		GrandTotal:    d.GrandTotal,
		Status:        domain.AccountStatus(d.Status),
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
	}
}
