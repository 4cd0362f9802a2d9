// Package report runs every insight computation once over a snapshot.
package report

import (
	"time"

	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/analytics"
	"github.com/dvloznov/budgetwise/internal/budget"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/dvloznov/budgetwise/internal/recurring"
	"github.com/dvloznov/budgetwise/internal/snapshot"
	"github.com/shopspring/decimal"
)

// Options control how a report is computed.
type Options struct {
	// Now anchors every window. Zero means time.Now(). Dates are taken in
	// Now's location.
	Now           time.Time
	Period        period.Period
	Currency      string
	UpcomingBills decimal.Decimal
}

// Report is the full set of derived records for one snapshot.
type Report struct {
	UserID        string        `json:"user_id,omitempty"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Period        period.Period `json:"period"`
	Range         period.Range  `json:"range"`
	PreviousRange period.Range  `json:"previous_range"`

	Insights  []budget.Insight    `json:"insights"`
	Health    budget.Health       `json:"health"`
	Available analytics.Available `json:"available"`

	Trend          analytics.TrendComparison  `json:"trend"`
	CategoryTrends []analytics.CategoryTrend  `json:"category_trends"`
	Spending       analytics.SpendingInsights `json:"spending"`
	Breakdown      []aggregate.CategoryAmount `json:"breakdown"`
	Daily          []aggregate.DayAmount      `json:"daily"`

	Recurring []recurring.Pattern `json:"recurring"`
}

// Build computes a Report. The period window is the trailing one ending on
// Now's date and the comparison window is the equally long span before it.
// Budget insights use each category's own calendar window and recurring
// detection looks at the whole snapshot.
func Build(snap *snapshot.Snapshot, opts Options) Report {
	opts = withDefaults(opts)

	current := period.Trailing(opts.Period, opts.Now)
	previous := period.Previous(current)

	inCurrent := period.Filter(snap.Transactions, current)
	currentExpenses := aggregate.Expenses(inCurrent)
	previousExpenses := aggregate.Expenses(period.Filter(snap.Transactions, previous))

	calc := budget.NewCalculator(budget.WithCurrency(opts.Currency))
	insights := calc.AllInsights(snap.Categories, snap.Transactions, opts.Now)

	return Report{
		UserID:        snap.UserID,
		GeneratedAt:   opts.Now,
		Period:        opts.Period,
		Range:         current,
		PreviousRange: previous,

		Insights: insights,
		Health:   budget.HealthOf(insights),
		Available: analytics.AvailableToSpend(analytics.AvailableInput{
			Income:        aggregate.Incomes(inCurrent),
			Expenses:      currentExpenses,
			Goals:         snap.Goals,
			Period:        opts.Period,
			Now:           opts.Now,
			UpcomingBills: opts.UpcomingBills,
		}),

		Trend:          analytics.CompareTrend(currentExpenses, previousExpenses),
		CategoryTrends: analytics.CategoryTrends(currentExpenses, previousExpenses, snap.Categories),
		Spending:       analytics.Summarize(currentExpenses, snap.Categories),
		Breakdown:      aggregate.ByCategory(currentExpenses, snap.Categories),
		Daily:          aggregate.ByDay(currentExpenses),

		Recurring: recurring.Detect(snap.Transactions),
	}
}

func withDefaults(opts Options) Options {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if !opts.Period.Valid() {
		opts.Period = period.Monthly
	}
	if opts.Currency == "" {
		opts.Currency = budget.DefaultCurrency
	}
	return opts
}
