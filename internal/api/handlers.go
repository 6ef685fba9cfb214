package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/emberworks/ember/internal/engine"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/types"
	"github.com/emberworks/ember/internal/validation"
)

// Handler implements the API handlers
type Handler struct {
	store   store.Store
	engine  *engine.Engine
	apiKey  string
	version string
	now     func() time.Time
}

// NewHandler creates a new Handler over the store and engine.
func NewHandler(s store.Store, e *engine.Engine, apiKey, version string) *Handler {
	return &Handler{
		store:   s,
		engine:  e,
		apiKey:  apiKey,
		version: version,
		now:     time.Now,
	}
}

func ownerID(r *http.Request) string {
	return chi.URLParam(r, "owner")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

// StartSession handles POST /api/v1/owners/{owner}/session. It runs due
// subscription renewals and the daily catch-up, then returns the state the
// client renders.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.OnSessionStart(r.Context(), ownerID(r))
	if err != nil {
		slog.Error("session start failed", "owner_id", ownerID(r), "error", err)
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetProgression handles GET /api/v1/owners/{owner}/progression.
func (h *Handler) GetProgression(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.GetProgression(r.Context(), ownerID(r))
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ListSubscriptions handles GET /api/v1/owners/{owner}/subscriptions.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubscriptions(r.Context(), ownerID(r))
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	if subs == nil {
		subs = []types.Subscription{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// CreateSubscription handles POST /api/v1/owners/{owner}/subscriptions.
func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req types.NewSubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateNewSubscription(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	sub, err := h.engine.Scheduler.Create(r.Context(), ownerID(r), req)
	if err != nil {
		slog.Error("subscription create failed", "owner_id", ownerID(r), "error", err)
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// UpdateSubscription handles PATCH /api/v1/owners/{owner}/subscriptions/{id}.
func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req types.SubscriptionUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateSubscriptionUpdate(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	sub, err := h.engine.Scheduler.Update(r.Context(), ownerID(r), chi.URLParam(r, "id"), req)
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// DeleteSubscription handles DELETE /api/v1/owners/{owner}/subscriptions/{id}.
// Ledger entries already materialized stay in place.
func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Scheduler.Delete(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		MapEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFocus handles GET /api/v1/owners/{owner}/focus.
func (h *Handler) GetFocus(w http.ResponseWriter, r *http.Request) {
	session, err := h.engine.Focus.Active(r.Context(), ownerID(r))
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// StartFocusRequest is the POST focus payload.
type StartFocusRequest struct {
	Category     types.Category `json:"category"`
	DailyLimit   float64        `json:"daily_limit"`
	DurationDays int            `json:"duration_days"`
}

// StartFocus handles POST /api/v1/owners/{owner}/focus.
func (h *Handler) StartFocus(w http.ResponseWriter, r *http.Request) {
	var req StartFocusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateFocusStart(req.Category, req.DailyLimit, req.DurationDays); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	session, err := h.engine.Focus.Start(r.Context(), ownerID(r), req.Category, req.DailyLimit, req.DurationDays)
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// CancelFocus handles DELETE /api/v1/owners/{owner}/focus.
func (h *Handler) CancelFocus(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Focus.Cancel(r.Context(), ownerID(r)); err != nil {
		MapEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FocusSpendResponse is the GET focus/spend payload.
type FocusSpendResponse struct {
	Date     string         `json:"date"`
	Category types.Category `json:"category"`
	Spend    float64        `json:"spend"`
}

// FocusSpend handles GET /api/v1/owners/{owner}/focus/spend?date=&category=.
// It reports the tracked spend for a single day in one category, the same
// number the daily evaluation compares against the session limit.
func (h *Handler) FocusSpend(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = types.DateKey(h.now())
	}
	category := types.Category(r.URL.Query().Get("category"))

	var c validation.Collector
	c.Add(validation.ValidateDateKey("date", date))
	c.Add(validation.ValidateCategory("category", category))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	spend, err := h.engine.Focus.DailySpend(r.Context(), ownerID(r), date, category)
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FocusSpendResponse{Date: date, Category: category, Spend: spend})
}

// NewExpenseRequest is the POST expenses payload.
type NewExpenseRequest struct {
	Amount   float64        `json:"amount"`
	Category types.Category `json:"category"`
	Note     string         `json:"note"`
	Date     string         `json:"date,omitempty"` // defaults to today
}

// CreateExpense handles POST /api/v1/owners/{owner}/expenses.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req NewExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	now := h.now()
	if req.Date == "" {
		req.Date = types.DateKey(now)
	}

	entry := &types.LedgerEntry{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID(r),
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		Date:      req.Date,
		Month:     types.MonthOfDate(req.Date),
		Time:      now.Format("15:04"),
		CreatedAt: now.UTC(),
	}

	if errs := validation.ValidateLedgerEntry(*entry); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	if err := h.store.AppendEntry(r.Context(), entry); err != nil {
		slog.Error("expense append failed", "owner_id", ownerID(r), "error", err)
		MapEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListExpenses handles GET /api/v1/owners/{owner}/expenses?date= or ?month=.
// Without a filter it returns the current month.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		entries []types.LedgerEntry
		err     error
	)

	switch {
	case r.URL.Query().Get("date") != "":
		date := r.URL.Query().Get("date")
		if verr := validation.ValidateDateKey("date", date); verr != nil {
			WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{*verr})
			return
		}
		entries, err = h.store.EntriesByDate(r.Context(), ownerID(r), date)
	case r.URL.Query().Get("month") != "":
		entries, err = h.store.EntriesByMonth(r.Context(), ownerID(r), r.URL.Query().Get("month"))
	default:
		entries, err = h.store.EntriesByMonth(r.Context(), ownerID(r), types.MonthKey(h.now()))
	}
	if err != nil {
		MapEngineError(w, r, err)
		return
	}
	if entries == nil {
		entries = []types.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteExpense handles DELETE /api/v1/owners/{owner}/expenses/{id}.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEntry(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		MapEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
