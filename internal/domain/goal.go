package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusFailed    GoalStatus = "failed"
)

// Valid reports whether s is one of the known goal statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusPaused, GoalStatusCompleted, GoalStatusFailed:
		return true
	}
	return false
}

// ParseGoalStatus parses a case-insensitive goal status.
func ParseGoalStatus(s string) (GoalStatus, error) {
	st := GoalStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid goal status: %q", s)
	}
	return st, nil
}

// Goal is a savings target. Only its allocated amount matters to the engine.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Status        GoalStatus      `json:"status"`
	StartDate     civil.Date      `json:"start_date"`
	EndDate       civil.Date      `json:"end_date"`
}

// Allocates reports whether the goal's current amount is set aside from
// spendable money.
func (g Goal) Allocates() bool {
	return g.Status == GoalStatusActive
}
