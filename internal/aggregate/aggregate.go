// Package aggregate holds the summing primitives the budget and analytics
// layers are built on.
package aggregate

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Expenses returns the expense transactions of txs.
func Expenses(txs []domain.Transaction) []domain.Transaction {
	return OfType(txs, domain.TransactionTypeExpense)
}

// Incomes returns the income transactions of txs.
func Incomes(txs []domain.Transaction) []domain.Transaction {
	return OfType(txs, domain.TransactionTypeIncome)
}

// OfType returns the transactions of the given type, in order.
func OfType(txs []domain.Transaction, typ domain.TransactionType) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// Sum adds up the amounts of txs regardless of type.
func Sum(txs []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}

// Total adds up the amounts of the transactions of the given type.
func Total(txs []domain.Transaction, typ domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryAmount is the spend attributed to one category.
type CategoryAmount struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Count        int             `json:"count"`
	Percentage   float64         `json:"percentage"`
}

// ByCategory groups txs by category id. Transactions without a category are
// grouped under "Other". Results are sorted by amount descending; ties keep
// first-seen order. Percentage is each group's share of the grand total.
func ByCategory(txs []domain.Transaction, categories []domain.Category) []CategoryAmount {
	names := domain.CategoryNames(categories)
	index := make(map[string]int)
	var groups []CategoryAmount
	total := decimal.Zero

	for _, t := range txs {
		key := t.CategoryID
		name := domain.ResolveCategoryName(t, names)
		if key == "" {
			name = domain.FallbackCategoryKey
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CategoryAmount{CategoryID: key, CategoryName: name, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(t.Amount)
		groups[i].Count++
		total = total.Add(t.Amount)
	}

	for i := range groups {
		groups[i].Percentage = Percent(groups[i].Amount, total)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Amount.GreaterThan(groups[b].Amount)
	})
	return groups
}

// DayAmount is the total moved on one calendar day.
type DayAmount struct {
	Date   civil.Date      `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// ByDay totals txs per calendar day, ordered by date. Days without
// transactions are absent.
func ByDay(txs []domain.Transaction) []DayAmount {
	index := make(map[civil.Date]int)
	var days []DayAmount

	for _, t := range txs {
		i, ok := index[t.Date]
		if !ok {
			i = len(days)
			index[t.Date] = i
			days = append(days, DayAmount{Date: t.Date, Amount: decimal.Zero})
		}
		days[i].Amount = days[i].Amount.Add(t.Amount)
		days[i].Count++
	}

	sort.Slice(days, func(a, b int) bool {
		return days[a].Date.Before(days[b].Date)
	})
	return days
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}

// PercentChange returns the relative change from previous to current in
// percent. When previous is zero the change is 100 if current is positive
// and 0 otherwise.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}
