package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// handleListTransactions returns every transaction, newest date first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondInternalError(w, r, "List transactions error", err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

// handleCreateTransaction validates and persists a new transaction.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string      `json:"description"`
		Amount      core.Money  `json:"amount"`
		Type        core.TxType `json:"type"`
		Category    string      `json:"category"`
		Date        core.Date   `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction data: "+err.Error())
		return
	}

	tx := core.Transaction{
		Description: sanitizeInput(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    sanitizeInput(req.Category),
		Date:        req.Date,
	}
	if err := tx.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction data: "+err.Error())
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		respondInternalError(w, r, "Create transaction error", err)
		return
	}

	s.slog.LogTransactionCreated(r.Context(), created.ID, created.Description,
		created.Amount.Cents, string(created.Type), created.Category)
	respondJSON(w, http.StatusCreated, created)
}

// handleDeleteTransaction removes a transaction by id.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		respondInternalError(w, r, "Delete transaction error", err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction deleted",
		log.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary reduces the full transaction set to dashboard totals.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondInternalError(w, r, "Summary list error", err)
		return
	}
	respondJSON(w, http.StatusOK, core.Summarize(txs))
}

// handleRange lists transactions inside an explicit inclusive date interval.
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		respondError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := core.ParseDate(startStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid startDate: use YYYY-MM-DD")
		return
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid endDate: use YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "endDate must not precede startDate")
		return
	}

	txs, err := s.store.ListTransactionsByDateRange(r.Context(), start, end)
	if err != nil {
		respondInternalError(w, r, "Range list error", err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

// handleChart returns the bucketed income/expense series for a period token.
// The period selects both the trailing date range and the bucket granularity.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(core.WindowMonth)
	}
	window, err := core.ParseWindow(period)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid period: use 1M, 6M or 1Y")
		return
	}

	start, end := window.Range(time.Now())
	txs, err := s.store.ListTransactionsByDateRange(r.Context(), start, end)
	if err != nil {
		respondInternalError(w, r, "Chart list error", err)
		return
	}

	series := core.BuildChartSeries(txs, window)
	if series == nil {
		series = core.ChartSeries{}
	}
	respondJSON(w, http.StatusOK, series)
}

// handleCategories exposes the suggested category vocabulary.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, core.SuggestedCategories())
}
