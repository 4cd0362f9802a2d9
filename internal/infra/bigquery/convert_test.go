package bigquery

import (
	"math/big"
	"testing"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	bq "github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

func TestRatToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Rat
		want string
	}{
		{"nil", nil, "0"},
		{"integer", big.NewRat(120, 1), "120"},
		{"cents", big.NewRat(1999, 100), "19.99"},
		{"third", big.NewRat(1, 3), "0.333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ratToDecimal(tt.in)
			if err != nil {
				t.Fatalf("ratToDecimal() error = %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ratToDecimal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransactionFromRow(t *testing.T) {
	row := &bq.TransactionRow{
		TransactionID:      "tx-1",
		UserID:             "user-1",
		Type:               "expense",
		Amount:             big.NewRat(4550, 100),
		CategoryID:         bigquery.NullString{StringVal: "food", Valid: true},
		Description:        bigquery.NullString{StringVal: "Groceries", Valid: true},
		TransactionDate:    civil.Date{Year: 2026, Month: 10, Day: 3},
		IsRecurring:        bigquery.NullBool{Bool: true, Valid: true},
		RecurrenceInterval: bigquery.NullString{StringVal: "weekly", Valid: true},
	}

	got, err := TransactionFromRow(row)
	if err != nil {
		t.Fatalf("TransactionFromRow() error = %v", err)
	}

	if got.Type != domain.TransactionTypeExpense {
		t.Errorf("Type = %q, want expense", got.Type)
	}
	if !got.Amount.Equal(decimal.RequireFromString("45.5")) {
		t.Errorf("Amount = %s, want 45.5", got.Amount)
	}
	if got.CategoryID != "food" || got.CategoryName != "" {
		t.Errorf("category = (%q, %q), want (food, \"\")", got.CategoryID, got.CategoryName)
	}
	if got.Date != row.TransactionDate {
		t.Errorf("Date = %s, want %s", got.Date, row.TransactionDate)
	}
	if !got.IsRecurring || got.RecurrenceInterval != domain.RecurrenceWeekly {
		t.Errorf("recurrence = (%v, %q), want (true, weekly)", got.IsRecurring, got.RecurrenceInterval)
	}
}

func TestTransactionFromRow_Invalid(t *testing.T) {
	tests := []struct {
		name string
		row  bq.TransactionRow
	}{
		{"unknown type", bq.TransactionRow{TransactionID: "a", Type: "transfer"}},
		{"unknown recurrence", bq.TransactionRow{
			TransactionID:      "b",
			Type:               "income",
			RecurrenceInterval: bigquery.NullString{StringVal: "hourly", Valid: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TransactionFromRow(&tt.row); err == nil {
				t.Error("TransactionFromRow() expected error")
			}
		})
	}
}

func TestCategoryFromRow_Defaults(t *testing.T) {
	got, err := CategoryFromRow(&bq.CategoryRow{CategoryID: "fun", Name: "Fun"})
	if err != nil {
		t.Fatalf("CategoryFromRow() error = %v", err)
	}

	if got.BudgetPeriod != domain.BudgetPeriodMonthly {
		t.Errorf("BudgetPeriod = %q, want monthly", got.BudgetPeriod)
	}
	if !got.IsActive {
		t.Error("IsActive = false, want true for NULL")
	}
	if !got.BudgetAmount.IsZero() {
		t.Errorf("BudgetAmount = %s, want 0", got.BudgetAmount)
	}
	if got.HasBudget() {
		t.Error("HasBudget() = true for a NULL budget")
	}
}

func TestCategoryFromRow(t *testing.T) {
	got, err := CategoryFromRow(&bq.CategoryRow{
		CategoryID:   "rent",
		Name:         "Rent",
		BudgetAmount: big.NewRat(5000, 1),
		BudgetPeriod: bigquery.NullString{StringVal: "yearly", Valid: true},
		IsActive:     bigquery.NullBool{Bool: false, Valid: true},
	})
	if err != nil {
		t.Fatalf("CategoryFromRow() error = %v", err)
	}

	if got.BudgetPeriod != domain.BudgetPeriodYearly || got.IsActive {
		t.Errorf("got (%q, %v), want (yearly, false)", got.BudgetPeriod, got.IsActive)
	}

	if _, err := CategoryFromRow(&bq.CategoryRow{
		CategoryID:   "bad",
		BudgetPeriod: bigquery.NullString{StringVal: "daily", Valid: true},
	}); err == nil {
		t.Error("CategoryFromRow() expected error for daily budget period")
	}
}

func TestGoalFromRow(t *testing.T) {
	got, err := GoalFromRow(&bq.GoalRow{
		GoalID:        "g1",
		Name:          "Vacation",
		TargetAmount:  big.NewRat(3000, 1),
		CurrentAmount: big.NewRat(250, 1),
		Status:        "active",
		EndDate:       bigquery.NullDate{Date: civil.Date{Year: 2027, Month: 6, Day: 1}, Valid: true},
	})
	if err != nil {
		t.Fatalf("GoalFromRow() error = %v", err)
	}

	if !got.CurrentAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("CurrentAmount = %s, want 250", got.CurrentAmount)
	}
	if !got.Allocates() {
		t.Error("Allocates() = false for an active goal")
	}
	if got.StartDate.IsValid() {
		t.Errorf("StartDate = %s, want zero for NULL", got.StartDate)
	}
	if got.EndDate != (civil.Date{Year: 2027, Month: 6, Day: 1}) {
		t.Errorf("EndDate = %s, want 2027-06-01", got.EndDate)
	}

	if _, err := GoalFromRow(&bq.GoalRow{GoalID: "g2", Status: "archived"}); err == nil {
		t.Error("GoalFromRow() expected error for unknown status")
	}
}

func TestTableRef(t *testing.T) {
	if got := tableRef("budgetwise", goalsTable); got != "`budgetwise.goals`" {
		t.Errorf("tableRef() = %s", got)
	}
	if got := tableRef("`proj.ds`", transactionsTable); got != "`proj.ds.transactions`" {
		t.Errorf("tableRef() = %s", got)
	}
}
