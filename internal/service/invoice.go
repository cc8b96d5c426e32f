package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
	"tent-ledger-backend/internal/utils"
)

const invoiceDateLayout = "2/1/2006"

var (
	ErrNoRecipient = errors.New("no recipient address")
	nonDigits      = regexp.MustCompile(`\D`)
)

type invoiceService struct {
	customers repository.CustomerRepository
	email     EmailService
	business  config.BusinessConfig
	now       func() time.Time
}

func NewInvoiceService(customers repository.CustomerRepository, email EmailService, business config.BusinessConfig, now func() time.Time) InvoiceService {
	if now == nil {
		now = time.Now
	}
	if business.CurrencySymbol == "" {
		business.CurrencySymbol = "₹"
	}
	return &invoiceService{
		customers: customers,
		email:     email,
		business:  business,
		now:       now,
	}
}

// Build renders an invoice. Line days and amounts are re-derived with the
// same rules used at save time, as of today.
func (s *invoiceService) Build(ctx context.Context, customerID string) (*domain.Invoice, error) {
	record, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	ledger.Normalize(record)

	now := s.now()
	today := utils.CalendarDate(now)
	totals := ledger.Calculate(record.LedgerRows, record.PaymentStatus, today)

	inv := &domain.Invoice{
		Number:        invoiceNumber(record.CustomerID),
		Date:          now.Format(invoiceDateLayout),
		CustomerID:    record.CustomerID,
		CustomerName:  record.CustomerName,
		Address:       record.Address,
		Phone:         record.Phone,
		Email:         record.Email,
		PaymentStatus: record.PaymentStatus,
		Status:        totals.Status,
		Lines:         make([]domain.InvoiceLine, 0, len(record.LedgerRows)),
		GrandTotal:    totals.GrandTotal,
	}
	for i, row := range record.LedgerRows {
		accrual := totals.Rows[i]
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			RowID:      row.ID,
			ItemName:   row.ItemName,
			ItemType:   row.ItemType,
			Quantity:   row.Quantity,
			Days:       accrual.Days,
			PerDayRent: accrual.PerDayRent,
			Amount:     accrual.Total,
		})
	}

	inv.Message = s.message(inv)
	inv.Links = map[domain.ShareMethod]string{}
	if inv.Phone != "" {
		inv.Links[domain.ShareMethodMessage] = ShareLink(inv, domain.ShareMethodMessage, inv.Phone)
		inv.Links[domain.ShareMethodWhatsapp] = ShareLink(inv, domain.ShareMethodWhatsapp, inv.Phone)
	}
	if inv.Email != "" {
		inv.Links[domain.ShareMethodEmail] = ShareLink(inv, domain.ShareMethodEmail, inv.Email)
	}
	return inv, nil
}

func (s *invoiceService) Send(ctx context.Context, customerID, to string) (*domain.Invoice, error) {
	inv, err := s.Build(ctx, customerID)
	if err != nil {
		return nil, err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = inv.Email
	}
	if to == "" {
		return nil, fmt.Errorf("invoice %s: %w", inv.Number, ErrNoRecipient)
	}

	if err := s.email.SendInvoice(ctx, to, inv.CustomerName, invoiceSubject(inv), inv.Message); err != nil {
		return nil, err
	}
	logger.Info("Invoice sent", "invoice", inv.Number, "customer_id", inv.CustomerID, "to", to)
	return inv, nil
}

func (s *invoiceService) message(inv *domain.Invoice) string {
	cur := s.business.CurrencySymbol
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s, here is your invoice details.\n\n", inv.CustomerName)
	fmt.Fprintf(&b, "Invoice #: %s\n", inv.Number)
	fmt.Fprintf(&b, "Date: %s\n\n", inv.Date)
	fmt.Fprintf(&b, "Total Amount: %s%s\n\n", cur, formatAmount(inv.GrandTotal))
	b.WriteString("*ITEMS & CHARGES:*\n")
	if len(inv.Lines) == 0 {
		b.WriteString("No items in this invoice.\n\n")
	}
	for _, line := range inv.Lines {
		fmt.Fprintf(&b, "%s (%s)\n", line.ItemName, line.ItemType)
		fmt.Fprintf(&b, "   Qty: %d pcs | Days: %d | Rate: %s%s/day\n", line.Quantity, line.Days, cur, formatAmount(line.PerDayRent))
		fmt.Fprintf(&b, "   Amount: %s%s\n\n", cur, formatAmount(line.Amount))
	}

	fmt.Fprintf(&b, "Thank you from %s\n", s.business.Name)
	if s.business.Address != "" {
		b.WriteString(s.business.Address + "\n")
	}
	if len(s.business.Phones) > 0 {
		b.WriteString("Phone: " + strings.Join(s.business.Phones, ", ") + "\n")
	}
	return b.String()
}

// ShareLink builds the URL that opens a prepared invoice message in the
// given channel.
func ShareLink(inv *domain.Invoice, method domain.ShareMethod, to string) string {
	body := encodeComponent(inv.Message)
	switch method {
	case domain.ShareMethodEmail:
		return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, encodeComponent(invoiceSubject(inv)), body)
	case domain.ShareMethodWhatsapp:
		return fmt.Sprintf("https://wa.me/%s?text=%s", nonDigits.ReplaceAllString(to, ""), body)
	default:
		return fmt.Sprintf("sms:%s?body=%s", to, body)
	}
}

func invoiceNumber(customerID string) string {
	if len(customerID) > 8 {
		customerID = customerID[:8]
	}
	return strings.ToUpper(customerID)
}

func invoiceSubject(inv *domain.Invoice) string {
	return fmt.Sprintf("Invoice #%s - %s", inv.Number, inv.CustomerName)
}

// componentUnescape restores the marks encodeURIComponent leaves alone.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
