package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// ParseTransactionType parses a case-insensitive transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type: %q", s)
	}
	return t, nil
}

// Recurrence is the repeat interval a user attached to a transaction.
type Recurrence string

const (
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceMonthly  Recurrence = "monthly"
	RecurrenceYearly   Recurrence = "yearly"
)

// Valid reports whether r is one of the known recurrence intervals.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Transaction is one income or expense entry supplied by the caller.
// The engine never mutates transactions.
type Transaction struct {
	ID     string          `json:"id"`
	UserID string          `json:"user_id,omitempty"`
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`

	CategoryID   string `json:"category_id,omitempty"`   // empty when uncategorized
	CategoryName string `json:"category_name,omitempty"` // denormalized, optional
	Description  string `json:"description,omitempty"`

	Date civil.Date `json:"date"`

	// Recurrence metadata. A transaction the user already marked as
	// recurring is not a candidate for pattern detection.
	IsRecurring        bool       `json:"is_recurring,omitempty"`
	RecurrenceInterval Recurrence `json:"recurrence_interval,omitempty"`
	RecurringParentID  string     `json:"recurring_parent_id,omitempty"`
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// DisplayDescription returns the description or the "Unnamed" fallback.
func (t Transaction) DisplayDescription() string {
	if d := strings.TrimSpace(t.Description); d != "" {
		return d
	}
	return FallbackDescription
}

// Fallback labels used when optional fields are missing.
const (
	FallbackCategoryName = "Uncategorized"
	FallbackCategoryKey  = "Other"
	FallbackDescription  = "Unnamed"
)
