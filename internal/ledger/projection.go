package ledger

import (
	"time"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/utils"
)

// RunningEndDate marks a running summary as still open.
const RunningEndDate = "Running"

// Project builds the single list-view summary for a record. Running records
// go to the running view; everything else is filed in history with the last
// row's end date, or today when that row has none.
func Project(record *domain.CustomerData, today time.Time) domain.AccountSummary {
	summary := domain.AccountSummary{
		ID:            record.CustomerID,
		CustomerName:  record.CustomerName,
		GrandTotal:    record.GrandTotal,
		Status:        record.Status,
		PaymentStatus: record.PaymentStatus,
	}

	rows := record.LedgerRows
	if len(rows) > 0 {
		summary.StartDate = rows[0].StartDate
	}

	if record.Status == domain.AccountStatusRunning {
		summary.View = domain.SummaryViewRunning
		summary.EndDate = RunningEndDate
		return summary
	}

	summary.View = domain.SummaryViewHistory
	if len(rows) > 0 && rows[len(rows)-1].EndDate != "" {
		summary.EndDate = rows[len(rows)-1].EndDate
	} else {
		summary.EndDate = utils.FormatDate(today)
	}
	return summary
}

// ProjectAll rebuilds both views from the authoritative records.
func ProjectAll(records []domain.CustomerData, today time.Time) []domain.AccountSummary {
	summaries := make([]domain.AccountSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, Project(&records[i], today))
	}
	return summaries
}
