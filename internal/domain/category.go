package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a category budget resets on.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the known budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// ParseBudgetPeriod parses a case-insensitive budget period.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	p := BudgetPeriod(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid budget period: %q", s)
	}
	return p, nil
}

// Category is a spending envelope that expenses are measured against.
type Category struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	BudgetPeriod BudgetPeriod    `json:"budget_period"`
	IsActive     bool            `json:"is_active"`
}

// HasBudget reports whether the category takes part in insight generation.
func (c Category) HasBudget() bool {
	return c.IsActive && c.BudgetAmount.IsPositive()
}

// CategoryNames indexes category names by id.
func CategoryNames(categories []Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// ResolveCategoryName returns the display name for a transaction's category.
// The denormalized name on the transaction wins, then the lookup table, then
// the "Uncategorized" fallback.
func ResolveCategoryName(t Transaction, names map[string]string) string {
	if n := strings.TrimSpace(t.CategoryName); n != "" {
		return n
	}
	if t.CategoryID != "" {
		if n := strings.TrimSpace(names[t.CategoryID]); n != "" {
			return n
		}
	}
	return FallbackCategoryName
}
