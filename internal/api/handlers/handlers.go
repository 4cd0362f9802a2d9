package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/api/middleware"
	"github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/budget"
	infraBQ "github.com/dvloznov/budgetwise/internal/infra/bigquery"
	"github.com/dvloznov/budgetwise/internal/logger"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/dvloznov/budgetwise/internal/recurring"
	"github.com/dvloznov/budgetwise/internal/report"
	"github.com/dvloznov/budgetwise/internal/snapshot"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxSnapshotBytes caps request bodies carrying a snapshot.
const maxSnapshotBytes = 10 << 20

// Defaults are the server-wide settings a request can override.
type Defaults struct {
	Currency string
	Period   period.Period
	Location *time.Location
}

// ReportHandler serves insight computations over posted snapshots and, when
// a repository is configured, over stored user data.
type ReportHandler struct {
	repo     bigquery.BudgetRepository
	defaults Defaults
	log      zerolog.Logger
	now      func() time.Time
}

// NewReportHandler creates a new report handler. repo may be nil, in which
// case the stored-data endpoint answers 503.
func NewReportHandler(repo bigquery.BudgetRepository, defaults Defaults, log zerolog.Logger) *ReportHandler {
	if defaults.Location == nil {
		defaults.Location = time.UTC
	}
	if !defaults.Period.Valid() {
		defaults.Period = period.Monthly
	}
	if defaults.Currency == "" {
		defaults.Currency = budget.DefaultCurrency
	}
	return &ReportHandler{
		repo:     repo,
		defaults: defaults,
		log:      log,
		now:      time.Now,
	}
}

// Report handles POST /api/report
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	opts, snap, ok := h.decode(w, r)
	if !ok {
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report.Build(snap, opts))
}

// Insights handles POST /api/insights
func (h *ReportHandler) Insights(w http.ResponseWriter, r *http.Request) {
	opts, snap, ok := h.decode(w, r)
	if !ok {
		return
	}

	calc := budget.NewCalculator(budget.WithCurrency(opts.Currency))
	insights := calc.AllInsights(snap.Categories, snap.Transactions, opts.Now)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"insights": insights,
		"health":   budget.HealthOf(insights),
		"count":    len(insights),
	})
}

// Recurring handles POST /api/recurring
func (h *ReportHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	_, snap, ok := h.decode(w, r)
	if !ok {
		return
	}

	patterns := recurring.Detect(snap.Transactions)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": patterns,
		"count":    len(patterns),
	})
}

// UserReport handles GET /api/users/{id}/report
func (h *ReportHandler) UserReport(w http.ResponseWriter, r *http.Request, userID string) {
	if h.repo == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Stored data is not configured")
		return
	}

	opts, err := h.options(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	log := logger.FromContext(r.Context())
	snap, err := infraBQ.NewSnapshotSource(h.repo, userID, opts.Now).Load(r.Context())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user data")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load user data")
		return
	}

	log.Info().
		Str("user_id", userID).
		Int("transactions", len(snap.Transactions)).
		Str("period", string(opts.Period)).
		Msg("Building report")

	middleware.WriteJSON(w, http.StatusOK, report.Build(snap, opts))
}

// decode reads options from the query and a snapshot from the body. It
// writes the error response itself and reports whether to continue.
func (h *ReportHandler) decode(w http.ResponseWriter, r *http.Request) (report.Options, *snapshot.Snapshot, bool) {
	opts, err := h.options(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return report.Options{}, nil, false
	}

	snap, err := snapshot.Decode(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Snapshot too large")
			return report.Options{}, nil, false
		}
		h.log.Warn().Err(err).Msg("Rejected snapshot")
		middleware.WriteError(w, http.StatusBadRequest, "Invalid snapshot: "+err.Error())
		return report.Options{}, nil, false
	}

	return opts, snap, true
}

// options parses the period, now, bills and currency query parameters.
func (h *ReportHandler) options(r *http.Request) (report.Options, error) {
	query := r.URL.Query()
	opts := report.Options{
		Now:           h.now().In(h.defaults.Location),
		Period:        h.defaults.Period,
		Currency:      h.defaults.Currency,
		UpcomingBills: decimal.Zero,
	}

	if p := query.Get("period"); p != "" {
		parsed, err := period.Parse(p)
		if err != nil {
			return report.Options{}, fmt.Errorf("Invalid period %q", p)
		}
		opts.Period = parsed
	}

	if s := query.Get("now"); s != "" {
		d, err := civil.ParseDate(s)
		if err != nil {
			return report.Options{}, fmt.Errorf("Invalid now format, expected YYYY-MM-DD")
		}
		opts.Now = d.In(h.defaults.Location)
	}

	if s := query.Get("bills"); s != "" {
		bills, err := decimal.NewFromString(s)
		if err != nil || bills.IsNegative() {
			return report.Options{}, fmt.Errorf("Invalid bills amount %q", s)
		}
		opts.UpcomingBills = bills
	}

	if c := strings.TrimSpace(query.Get("currency")); c != "" {
		opts.Currency = c
	}

	return opts, nil
}
