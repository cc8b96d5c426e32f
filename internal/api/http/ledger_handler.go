package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/service"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type previewRequest struct {
	LedgerRows    []domain.LedgerRow   `json:"ledgerRows"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

func (h *LedgerHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.Preview(req.LedgerRows, req.PaymentStatus))
}

func (h *LedgerHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var draft domain.CustomerData
	if !decodeJSON(w, r, &draft) {
		return
	}
	draft.CustomerID = ""

	saved, err := h.ledger.SaveRecord(r.Context(), &draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *LedgerHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var draft domain.CustomerData
	if !decodeJSON(w, r, &draft) {
		return
	}
	draft.CustomerID = mux.Vars(r)["id"]

	saved, err := h.ledger.SaveRecord(r.Context(), &draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *LedgerHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.ledger.GetRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *LedgerHandler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.ledger.SearchRecords(r.Context(), domain.RecordFilter(q.Get("filter")), q.Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *LedgerHandler) ListRunning(w http.ResponseWriter, r *http.Request) {
	h.listAccounts(w, r, domain.SummaryViewRunning)
}

func (h *LedgerHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	h.listAccounts(w, r, domain.SummaryViewHistory)
}

func (h *LedgerHandler) listAccounts(w http.ResponseWriter, r *http.Request, view domain.SummaryView) {
	summaries, err := h.ledger.ListAccounts(r.Context(), view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(summaries))
}

func (h *LedgerHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.RebuildProjections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rebuilt": n})
}
