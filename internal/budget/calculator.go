// Package budget measures category spending against category budgets and
// turns the result into insights.
package budget

import (
	"sort"
	"time"

	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the symbol money amounts are rendered with.
const DefaultCurrency = "₪"

// Insight is the derived per-category budget summary. It is computed fresh
// on every call and never stored.
type Insight struct {
	CategoryID            string          `json:"category_id"`
	CategoryName          string          `json:"category_name"`
	Status                Status          `json:"status"`
	UtilizationPercentage float64         `json:"utilization_percentage"`
	AmountSpent           decimal.Decimal `json:"amount_spent"`
	AmountRemaining       decimal.Decimal `json:"amount_remaining"`
	BudgetAmount          decimal.Decimal `json:"budget_amount"`
	Period                period.Period   `json:"period"`
	PreviousSpent         decimal.Decimal `json:"previous_spent"`
	PercentageChange      float64         `json:"percentage_change"`
	ComparisonText        string          `json:"comparison_text,omitempty"`
	Suggestion            string          `json:"suggestion,omitempty"`
}

// Calculator produces budget insights. The zero value is not usable; build
// one with NewCalculator.
type Calculator struct {
	currency string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithCurrency sets the symbol used in suggestion text.
func WithCurrency(symbol string) Option {
	return func(c *Calculator) {
		if symbol != "" {
			c.currency = symbol
		}
	}
}

// NewCalculator creates a Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{currency: DefaultCurrency}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SpendingInRange sums the expenses of one category dated inside r.
// Income and other categories are ignored.
func SpendingInRange(txs []domain.Transaction, categoryID string, r period.Range) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.IsExpense() && t.CategoryID == categoryID && r.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Utilization returns spent as a percentage of budget. A zero budget carries
// no utilization signal and yields 0.
func Utilization(spent, budget decimal.Decimal) float64 {
	return aggregate.Percent(spent, budget)
}

// Insight computes the insight for one category over the calendar window of
// its own budget period containing now.
func (c *Calculator) Insight(category domain.Category, txs []domain.Transaction, now time.Time) Insight {
	p := period.FromBudget(category.BudgetPeriod)
	current := period.Calendar(p, now)
	previous := period.Previous(current)

	spent := SpendingInRange(txs, category.ID, current)
	previousSpent := SpendingInRange(txs, category.ID, previous)
	remaining := category.BudgetAmount.Sub(spent)
	utilization := Utilization(spent, category.BudgetAmount)
	change := aggregate.PercentChange(spent, previousSpent)

	name := category.Name
	if name == "" {
		name = domain.FallbackCategoryName
	}

	return Insight{
		CategoryID:            category.ID,
		CategoryName:          name,
		Status:                StatusFor(utilization),
		UtilizationPercentage: utilization,
		AmountSpent:           spent,
		AmountRemaining:       remaining,
		BudgetAmount:          category.BudgetAmount,
		Period:                p,
		PreviousSpent:         previousSpent,
		PercentageChange:      change,
		ComparisonText:        ComparisonText(spent, previousSpent, p),
		Suggestion: c.Suggestion(SuggestionInput{
			CategoryName:     name,
			Utilization:      utilization,
			Remaining:        remaining,
			PercentageChange: change,
			DaysLeft:         period.DaysRemaining(current, now),
			Period:           p,
		}),
	}
}

// AllInsights computes insights for every active category with a positive
// budget, most urgent first. Categories with the same status keep their
// input order.
func (c *Calculator) AllInsights(categories []domain.Category, txs []domain.Transaction, now time.Time) []Insight {
	insights := make([]Insight, 0, len(categories))
	for _, cat := range categories {
		if !cat.HasBudget() {
			continue
		}
		insights = append(insights, c.Insight(cat, txs, now))
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Status.Severity() < insights[j].Status.Severity()
	})
	return insights
}
