package analytics

import (
	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

// TopCategory is the category with the largest spend.
type TopCategory struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

// LargestExpense is the single biggest expense.
type LargestExpense struct {
	TransactionID string          `json:"transaction_id"`
	Description   string          `json:"description"`
	CategoryName  string          `json:"category_name"`
	Amount        decimal.Decimal `json:"amount"`
	Date          civil.Date      `json:"date"`
}

// FrequentCategory is the category with the most expenses by count.
type FrequentCategory struct {
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

// SpendingInsights are headline facts about a set of expenses. Nil pointers
// mean the fact is absent, which is different from a zero value.
type SpendingInsights struct {
	TopCategory          *TopCategory      `json:"top_category"`
	AverageDailySpending decimal.Decimal   `json:"average_daily_spending"`
	LargestExpense       *LargestExpense   `json:"largest_expense"`
	MostFrequentCategory *FrequentCategory `json:"most_frequent_category"`
	TotalExpenses        decimal.Decimal   `json:"total_expenses"`
	ActiveDays           int               `json:"active_days"`
}

// Summarize computes the headline facts over expenses. Each fact is an
// independent reduction. The daily average divides by the number of distinct
// days that have at least one expense, not by the length of the period.
func Summarize(expenses []domain.Transaction, categories []domain.Category) SpendingInsights {
	total := aggregate.Sum(expenses)
	days := aggregate.ByDay(expenses)

	out := SpendingInsights{
		TotalExpenses:        total,
		AverageDailySpending: decimal.Zero,
		ActiveDays:           len(days),
	}
	if len(days) > 0 {
		out.AverageDailySpending = total.Div(decimal.NewFromInt(int64(len(days))))
	}

	out.TopCategory = topCategory(expenses, categories)
	out.LargestExpense = largestExpense(expenses, categories)
	out.MostFrequentCategory = mostFrequentCategory(expenses, categories)
	return out
}

func topCategory(expenses []domain.Transaction, categories []domain.Category) *TopCategory {
	groups := aggregate.ByCategory(expenses, categories)
	if len(groups) == 0 || !groups[0].Amount.IsPositive() {
		return nil
	}
	g := groups[0]
	return &TopCategory{
		CategoryID:   g.CategoryID,
		CategoryName: g.CategoryName,
		Amount:       g.Amount,
		Percentage:   g.Percentage,
	}
}

func largestExpense(expenses []domain.Transaction, categories []domain.Category) *LargestExpense {
	var best *domain.Transaction
	for i := range expenses {
		if best == nil || expenses[i].Amount.GreaterThan(best.Amount) {
			best = &expenses[i]
		}
	}
	if best == nil || !best.Amount.IsPositive() {
		return nil
	}
	return &LargestExpense{
		TransactionID: best.ID,
		Description:   best.DisplayDescription(),
		CategoryName:  domain.ResolveCategoryName(*best, domain.CategoryNames(categories)),
		Amount:        best.Amount,
		Date:          best.Date,
	}
}

func mostFrequentCategory(expenses []domain.Transaction, categories []domain.Category) *FrequentCategory {
	groups := aggregate.ByCategory(expenses, categories)

	var best *aggregate.CategoryAmount
	for i := range groups {
		if best == nil || groups[i].Count > best.Count {
			best = &groups[i]
		}
	}
	if best == nil || best.Count == 0 {
		return nil
	}
	return &FrequentCategory{
		CategoryID:   best.CategoryID,
		CategoryName: best.CategoryName,
		Count:        best.Count,
	}
}
