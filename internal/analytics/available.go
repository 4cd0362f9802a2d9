// Package analytics derives period-level insights from transactions:
// spendable money left, period-over-period trends and headline facts.
package analytics

import (
	"time"

	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/shopspring/decimal"
)

// AvailableInput is everything the spend-availability projection needs.
type AvailableInput struct {
	Income   []domain.Transaction
	Expenses []domain.Transaction
	Goals    []domain.Goal
	Period   period.Period
	Now      time.Time

	// UpcomingBills is subtracted from the available amount. Bills are not
	// integrated yet, so callers pass zero unless they computed it.
	UpcomingBills decimal.Decimal
}

// AvailableBreakdown shows how the available amount was reached.
type AvailableBreakdown struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	GoalAllocations decimal.Decimal `json:"goal_allocations"`
	UpcomingBills   decimal.Decimal `json:"upcoming_bills"`
}

// Available is the estimated discretionary spending room for a period.
// Amount and DailyAmount are negative when the period is overspent.
type Available struct {
	Amount        decimal.Decimal    `json:"amount"`
	DailyAmount   decimal.Decimal    `json:"daily_amount"`
	DaysRemaining int                `json:"days_remaining"`
	Period        period.Period      `json:"period"`
	Breakdown     AvailableBreakdown `json:"breakdown"`
}

// AvailableToSpend computes income minus expenses, active goal allocations
// and upcoming bills, spread over the days left in the calendar period
// containing in.Now. Days remaining is never below 1.
func AvailableToSpend(in AvailableInput) Available {
	income := aggregate.Sum(in.Income)
	expenses := aggregate.Sum(in.Expenses)
	goals := GoalAllocations(in.Goals)
	bills := in.UpcomingBills

	amount := income.Sub(expenses).Sub(goals).Sub(bills)
	days := period.DaysRemaining(period.Calendar(in.Period, in.Now), in.Now)

	return Available{
		Amount:        amount,
		DailyAmount:   amount.Div(decimal.NewFromInt(int64(days))),
		DaysRemaining: days,
		Period:        in.Period,
		Breakdown: AvailableBreakdown{
			TotalIncome:     income,
			TotalExpenses:   expenses,
			GoalAllocations: goals,
			UpcomingBills:   bills,
		},
	}
}

// GoalAllocations sums the current amount of every active goal.
func GoalAllocations(goals []domain.Goal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		if g.Allocates() {
			total = total.Add(g.CurrentAmount)
		}
	}
	return total
}
