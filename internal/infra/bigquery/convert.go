package bigquery

import (
	"fmt"
	"math/big"

	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

// NUMERIC columns carry at most 9 fractional digits.
const numericScale = 9

// ratToDecimal converts a NUMERIC value; NULL becomes zero.
func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(r.FloatString(numericScale))
	if err != nil {
		return decimal.Zero, fmt.Errorf("ratToDecimal: %w", err)
	}
	return d, nil
}

// TransactionFromRow maps a transactions row onto the domain type.
func TransactionFromRow(row *bq.TransactionRow) (domain.Transaction, error) {
	typ, err := domain.ParseTransactionType(row.Type)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("TransactionFromRow: %s: %w", row.TransactionID, err)
	}
	amount, err := ratToDecimal(row.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("TransactionFromRow: %s: amount: %w", row.TransactionID, err)
	}

	t := domain.Transaction{
		ID:                row.TransactionID,
		UserID:            row.UserID,
		Type:              typ,
		Amount:            amount,
		CategoryID:        row.CategoryID.StringVal,
		CategoryName:      row.CategoryName.StringVal,
		Description:       row.Description.StringVal,
		Date:              row.TransactionDate,
		IsRecurring:       row.IsRecurring.Valid && row.IsRecurring.Bool,
		RecurringParentID: row.RecurringParentID.StringVal,
	}
	if row.RecurrenceInterval.Valid {
		t.RecurrenceInterval = domain.Recurrence(row.RecurrenceInterval.StringVal)
		if !t.RecurrenceInterval.Valid() {
			return domain.Transaction{}, fmt.Errorf("TransactionFromRow: %s: unknown recurrence interval %q", row.TransactionID, row.RecurrenceInterval.StringVal)
		}
	}
	return t, nil
}

// CategoryFromRow maps a categories row onto the domain type. A NULL period
// means monthly and a NULL is_active means active.
func CategoryFromRow(row *bq.CategoryRow) (domain.Category, error) {
	budget, err := ratToDecimal(row.BudgetAmount)
	if err != nil {
		return domain.Category{}, fmt.Errorf("CategoryFromRow: %s: budget: %w", row.CategoryID, err)
	}

	bp := domain.BudgetPeriodMonthly
	if row.BudgetPeriod.Valid {
		bp, err = domain.ParseBudgetPeriod(row.BudgetPeriod.StringVal)
		if err != nil {
			return domain.Category{}, fmt.Errorf("CategoryFromRow: %s: %w", row.CategoryID, err)
		}
	}

	return domain.Category{
		ID:           row.CategoryID,
		Name:         row.Name,
		BudgetAmount: budget,
		BudgetPeriod: bp,
		IsActive:     !row.IsActive.Valid || row.IsActive.Bool,
	}, nil
}

// GoalFromRow maps a goals row onto the domain type.
func GoalFromRow(row *bq.GoalRow) (domain.Goal, error) {
	status, err := domain.ParseGoalStatus(row.Status)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("GoalFromRow: %s: %w", row.GoalID, err)
	}
	target, err := ratToDecimal(row.TargetAmount)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("GoalFromRow: %s: target: %w", row.GoalID, err)
	}
	current, err := ratToDecimal(row.CurrentAmount)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("GoalFromRow: %s: current: %w", row.GoalID, err)
	}

	g := domain.Goal{
		ID:            row.GoalID,
		Name:          row.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Status:        status,
	}
	if row.StartDate.Valid {
		g.StartDate = row.StartDate.Date
	}
	if row.EndDate.Valid {
		g.EndDate = row.EndDate.Date
	}
	return g, nil
}
