package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionType
		wantErr bool
	}{
		{"income", TransactionTypeIncome, false},
		{"  EXPENSE ", TransactionTypeExpense, false},
		{"transfer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransactionType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTransactionType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBudgetPeriodAndGoalStatus(t *testing.T) {
	if p, err := ParseBudgetPeriod("Monthly"); err != nil || p != BudgetPeriodMonthly {
		t.Errorf("ParseBudgetPeriod(Monthly) = %q, %v", p, err)
	}
	if _, err := ParseBudgetPeriod("daily"); err == nil {
		t.Error("expected daily to be rejected as a budget period")
	}
	if s, err := ParseGoalStatus("PAUSED"); err != nil || s != GoalStatusPaused {
		t.Errorf("ParseGoalStatus(PAUSED) = %q, %v", s, err)
	}
	if _, err := ParseGoalStatus("archived"); err == nil {
		t.Error("expected archived to be rejected")
	}
}

func TestCategoryHasBudget(t *testing.T) {
	tests := []struct {
		name string
		cat  Category
		want bool
	}{
		{"active with budget", Category{IsActive: true, BudgetAmount: decimal.NewFromInt(100)}, true},
		{"inactive", Category{IsActive: false, BudgetAmount: decimal.NewFromInt(100)}, false},
		{"zero budget", Category{IsActive: true, BudgetAmount: decimal.Zero}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cat.HasBudget(); got != tt.want {
				t.Errorf("HasBudget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCategoryName(t *testing.T) {
	names := CategoryNames([]Category{{ID: "food", Name: "Food"}})

	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{"denormalized name wins", Transaction{CategoryID: "food", CategoryName: "Groceries"}, "Groceries"},
		{"lookup by id", Transaction{CategoryID: "food"}, "Food"},
		{"unknown id", Transaction{CategoryID: "nope"}, FallbackCategoryName},
		{"no category", Transaction{}, FallbackCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCategoryName(tt.tx, names); got != tt.want {
				t.Errorf("ResolveCategoryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayDescription(t *testing.T) {
	if got := (Transaction{Description: "  "}).DisplayDescription(); got != FallbackDescription {
		t.Errorf("DisplayDescription() = %q, want %q", got, FallbackDescription)
	}
	if got := (Transaction{Description: "Netflix"}).DisplayDescription(); got != "Netflix" {
		t.Errorf("DisplayDescription() = %q, want Netflix", got)
	}
}

func TestGoalAllocates(t *testing.T) {
	for _, st := range []GoalStatus{GoalStatusPaused, GoalStatusCompleted, GoalStatusFailed} {
		if (Goal{Status: st}).Allocates() {
			t.Errorf("goal with status %q should not allocate", st)
		}
	}
	if !(Goal{Status: GoalStatusActive}).Allocates() {
		t.Error("active goal should allocate")
	}
}
