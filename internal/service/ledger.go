package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
	"tent-ledger-backend/internal/utils"
)

type ledgerService struct {
	customers repository.CustomerRepository
	summaries repository.SummaryRepository
	now       func() time.Time
}

// NewLedgerService wires the ledger use cases. now supplies the clock that
// decides "today" for open rows; nil means time.Now.
func NewLedgerService(customers repository.CustomerRepository, summaries repository.SummaryRepository, now func() time.Time) LedgerService {
	if now == nil {
		now = time.Now
	}
	return &ledgerService{
		customers: customers,
		summaries: summaries,
		now:       now,
	}
}

func (s *ledgerService) today() time.Time {
	return utils.CalendarDate(s.now())
}

func (s *ledgerService) Preview(rows []domain.LedgerRow, payment domain.PaymentStatus) ledger.Totals {
	return ledger.Calculate(rows, payment, s.today())
}

func (s *ledgerService) SaveRecord(ctx context.Context, draft *domain.CustomerData) (*domain.CustomerData, error) {
	logger.EnterMethod("LedgerService.SaveRecord", "customer_id", draft.CustomerID)

	var existing *domain.CustomerData
	if id := strings.TrimSpace(draft.CustomerID); id != "" {
		found, err := s.customers.Get(ctx, id)
		if err != nil {
			logger.ExitMethodWithError("LedgerService.SaveRecord", err)
			return nil, fmt.Errorf("failed to load record for edit: %w", err)
		}
		existing = found
	}

	record, err := ledger.Assemble(draft, existing, s.now())
	if err != nil {
		logger.Debug("Record rejected", "error", err)
		return nil, err
	}

	summary := ledger.Project(record, s.today())
	if err := s.customers.Put(ctx, record, summary); err != nil {
		logger.ExitMethodWithError("LedgerService.SaveRecord", err)
		return nil, err
	}

	logger.Info("Ledger record saved",
		"customer_id", record.CustomerID,
		"status", record.Status,
		"grand_total", record.GrandTotal,
		"rows", len(record.LedgerRows),
		"edit", existing != nil)
	logger.ExitMethod("LedgerService.SaveRecord")
	return record, nil
}

func (s *ledgerService) GetRecord(ctx context.Context, customerID string) (*domain.CustomerData, error) {
	record, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	ledger.Normalize(record)
	return record, nil
}

func (s *ledgerService) SearchRecords(ctx context.Context, filter domain.RecordFilter, query string) ([]domain.CustomerData, error) {
	if filter == "" {
		filter = domain.RecordFilterAll
	}
	if !filter.Valid() {
		return nil, &ledger.ValidationError{Messages: []string{
			fmt.Sprintf("filter must be one of [%s %s %s %s]", domain.RecordFilterAll, domain.RecordFilterRunning, domain.RecordFilterPending, domain.RecordFilterComplete),
		}}
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	records, err := s.customers.Query(ctx, func(c *domain.CustomerData) bool {
		return filter.Matches(c) && matchesText(c, needle)
	})
	if err != nil {
		return nil, err
	}
	for i := range records {
		ledger.Normalize(&records[i])
	}
	return records, nil
}

func matchesText(c *domain.CustomerData, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{c.CustomerName, c.Phone, c.CustomerID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *ledgerService) ListAccounts(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error) {
	switch view {
	case domain.SummaryViewRunning, domain.SummaryViewHistory:
	default:
		return nil, &ledger.ValidationError{Messages: []string{fmt.Sprintf("unknown account view %q", view)}}
	}
	return s.summaries.List(ctx, view)
}

// RebuildProjections recomputes every summary from the stored records and
// replaces both views, dropping entries whose record no longer qualifies.
func (s *ledgerService) RebuildProjections(ctx context.Context) (int, error) {
	logger.EnterMethod("LedgerService.RebuildProjections")

	records, err := s.customers.Query(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("LedgerService.RebuildProjections", err)
		return 0, err
	}
	for i := range records {
		ledger.Normalize(&records[i])
		if records[i].Status == "" {
			records[i].Status = ledger.DeriveStatus(records[i].LedgerRows, records[i].PaymentStatus)
		}
	}

	summaries := ledger.ProjectAll(records, s.today())
	if err := s.summaries.Replace(ctx, summaries); err != nil {
		logger.ExitMethodWithError("LedgerService.RebuildProjections", err)
		return 0, err
	}

	logger.ExitMethod("LedgerService.RebuildProjections", "count", len(summaries))
	return len(summaries), nil
}

// RefreshRunningTotals re-derives the grand total snapshot of every running
// record as of today. A record whose last open row was closed out of band
// moves to history in the same write.
func (s *ledgerService) RefreshRunningTotals(ctx context.Context) (int, error) {
	logger.EnterMethod("LedgerService.RefreshRunningTotals")

	records, err := s.customers.Query(ctx, func(c *domain.CustomerData) bool {
		return c.Status == domain.AccountStatusRunning
	})
	if err != nil {
		logger.ExitMethodWithError("LedgerService.RefreshRunningTotals", err)
		return 0, err
	}

	today := s.today()
	refreshed := 0
	for i := range records {
		record := &records[i]
		ledger.Normalize(record)
		ledger.Derive(record, today)
		if err := s.customers.Put(ctx, record, ledger.Project(record, today)); err != nil {
			logger.ExitMethodWithError("LedgerService.RefreshRunningTotals", err, "customer_id", record.CustomerID)
			return refreshed, err
		}
		refreshed++
	}

	logger.ExitMethod("LedgerService.RefreshRunningTotals", "count", refreshed)
	return refreshed, nil
}
