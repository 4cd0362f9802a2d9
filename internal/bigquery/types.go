package bigquery

import (
	"context"
	"math/big"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/domain"
)

// BudgetRepository provides read access to a user's budgeting data.
type BudgetRepository interface {
	// ListTransactions returns the user's transactions dated within [start, end].
	ListTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error)

	// ListCategories returns all of the user's categories, active or not.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// ListGoals returns all of the user's savings goals.
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
}

// TransactionRow represents a row in the budgetwise.transactions table.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	UserID        string `bigquery:"user_id"`        // REQUIRED

	Type   string   `bigquery:"type"`   // REQUIRED: income | expense
	Amount *big.Rat `bigquery:"amount"` // REQUIRED NUMERIC, non-negative

	CategoryID   bigquery.NullString `bigquery:"category_id"`   // NULLABLE
	CategoryName bigquery.NullString `bigquery:"category_name"` // NULLABLE
	Description  bigquery.NullString `bigquery:"description"`   // NULLABLE

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	IsRecurring        bigquery.NullBool   `bigquery:"is_recurring"`        // NULLABLE
	RecurrenceInterval bigquery.NullString `bigquery:"recurrence_interval"` // NULLABLE
	RecurringParentID  bigquery.NullString `bigquery:"recurring_parent_id"` // NULLABLE
}

// CategoryRow represents a row in the budgetwise.categories table.
type CategoryRow struct {
	CategoryID string `bigquery:"category_id"` // REQUIRED
	UserID     string `bigquery:"user_id"`     // REQUIRED
	Name       string `bigquery:"name"`        // REQUIRED

	BudgetAmount *big.Rat            `bigquery:"budget_amount"` // NULLABLE NUMERIC
	BudgetPeriod bigquery.NullString `bigquery:"budget_period"` // NULLABLE, defaults to monthly
	IsActive     bigquery.NullBool   `bigquery:"is_active"`     // NULLABLE, defaults to true
}

// GoalRow represents a row in the budgetwise.goals table.
type GoalRow struct {
	GoalID string `bigquery:"goal_id"` // REQUIRED
	UserID string `bigquery:"user_id"` // REQUIRED
	Name   string `bigquery:"name"`    // REQUIRED

	TargetAmount  *big.Rat `bigquery:"target_amount"`  // REQUIRED NUMERIC
	CurrentAmount *big.Rat `bigquery:"current_amount"` // NULLABLE NUMERIC
	Status        string   `bigquery:"status"`         // REQUIRED

	StartDate bigquery.NullDate `bigquery:"start_date"` // NULLABLE
	EndDate   bigquery.NullDate `bigquery:"end_date"`   // NULLABLE
}
