package budget

import (
	"fmt"
	"math"

	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/shopspring/decimal"
)

// Changes smaller than this, in percent, read as "No change".
const noChangeBand = 1.0

// Trend thresholds used by the suggestion table, in percent.
const (
	risingTrendThreshold  = 20.0
	fallingTrendThreshold = -20.0
	lowUtilization        = 50.0
)

// ComparisonText describes the change from the previous window, e.g.
// "↑ 25% vs last month".
func ComparisonText(current, previous decimal.Decimal, p period.Period) string {
	change := aggregate.PercentChange(current, previous)
	if math.Abs(change) < noChangeBand {
		return "No change"
	}

	arrow := "↑"
	if change < 0 {
		arrow = "↓"
	}
	return fmt.Sprintf("%s %.0f%% %s", arrow, math.Round(math.Abs(change)), comparisonPhrase(p))
}

func comparisonPhrase(p period.Period) string {
	switch p {
	case period.Daily:
		return "vs yesterday"
	case period.Weekly:
		return "vs last week"
	case period.Monthly:
		return "vs last month"
	case period.Yearly:
		return "vs last year"
	}
	return "vs last period"
}

func periodNoun(p period.Period) string {
	switch p {
	case period.Daily:
		return "day"
	case period.Weekly:
		return "week"
	case period.Monthly:
		return "month"
	case period.Yearly:
		return "year"
	}
	return "period"
}

// SuggestionInput carries what the suggestion table looks at.
type SuggestionInput struct {
	CategoryName     string
	Utilization      float64
	Remaining        decimal.Decimal
	PercentageChange float64
	DaysLeft         int
	Period           period.Period
}

// Suggestion evaluates the suggestion table top to bottom and returns the
// first matching advice, or "" when no row applies.
func (c *Calculator) Suggestion(in SuggestionInput) string {
	switch {
	case in.Utilization >= ExceededThreshold:
		return fmt.Sprintf("You're %s over budget on %s. Cut back for the rest of the %s or raise the budget.",
			c.money(in.Remaining.Neg()), in.CategoryName, periodNoun(in.Period))

	case in.Utilization >= CriticalThreshold:
		return fmt.Sprintf("Only %s left, spend carefully.", c.money(in.Remaining))

	case in.Utilization >= WarningThreshold && in.PercentageChange > risingTrendThreshold:
		return fmt.Sprintf("Spending on %s is up %.0f%% %s. Keep an eye on this category.",
			in.CategoryName, math.Round(in.PercentageChange), comparisonPhrase(in.Period))

	case in.Utilization < lowUtilization && in.PercentageChange < fallingTrendThreshold:
		return fmt.Sprintf("Great job! Spending on %s is down %.0f%% %s.",
			in.CategoryName, math.Round(math.Abs(in.PercentageChange)), comparisonPhrase(in.Period))

	case in.Utilization < WarningThreshold:
		days := in.DaysLeft
		if days < 1 {
			days = 1
		}
		daily := in.Remaining.Div(decimal.NewFromInt(int64(days)))
		if !daily.IsPositive() {
			return ""
		}
		return fmt.Sprintf("You can spend about %s per day for the rest of the %s.", c.money(daily), periodNoun(in.Period))
	}
	return ""
}

func (c *Calculator) money(d decimal.Decimal) string {
	return c.currency + d.StringFixed(2)
}
