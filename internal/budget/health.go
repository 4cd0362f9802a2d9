package budget

import "github.com/shopspring/decimal"

// Health aggregates a set of insights into overall totals.
type Health struct {
	TotalBudget        decimal.Decimal `json:"total_budget"`
	TotalSpent         decimal.Decimal `json:"total_spent"`
	TotalRemaining     decimal.Decimal `json:"total_remaining"`
	OverallUtilization float64         `json:"overall_utilization"`
	Categories         int             `json:"categories"`
	OK                 int             `json:"ok"`
	Warning            int             `json:"warning"`
	Critical           int             `json:"critical"`
	Exceeded           int             `json:"exceeded"`
}

// HealthOf reduces insights to a Health summary.
func HealthOf(insights []Insight) Health {
	h := Health{TotalBudget: decimal.Zero, TotalSpent: decimal.Zero}

	for _, in := range insights {
		h.TotalBudget = h.TotalBudget.Add(in.BudgetAmount)
		h.TotalSpent = h.TotalSpent.Add(in.AmountSpent)
		h.Categories++

		switch in.Status {
		case StatusOK:
			h.OK++
		case StatusWarning:
			h.Warning++
		case StatusCritical:
			h.Critical++
		case StatusExceeded:
			h.Exceeded++
		}
	}

	h.TotalRemaining = h.TotalBudget.Sub(h.TotalSpent)
	h.OverallUtilization = Utilization(h.TotalSpent, h.TotalBudget)
	return h
}
