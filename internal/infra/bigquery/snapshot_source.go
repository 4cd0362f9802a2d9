package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/dvloznov/budgetwise/internal/snapshot"
)

// DefaultLookback is the minimum history SnapshotSource reads. LookbackStart
// extends it to the comparison window of the current calendar year.
const DefaultLookback = 13 * 31 * 24 * time.Hour

// SnapshotSource loads one user's snapshot through a BudgetRepository.
type SnapshotSource struct {
	Repo   BudgetRepository
	UserID string
	Start  civil.Date
	End    civil.Date
}

// NewSnapshotSource reads from LookbackStart(now) through now's date.
func NewSnapshotSource(repo BudgetRepository, userID string, now time.Time) SnapshotSource {
	return SnapshotSource{
		Repo:   repo,
		UserID: userID,
		Start:  LookbackStart(now),
		End:    civil.DateOf(now),
	}
}

// LookbackStart returns the earliest date any report for now can read: the
// start of the window before the current calendar year, or DefaultLookback
// ago if that is earlier.
func LookbackStart(now time.Time) civil.Date {
	start := period.Previous(period.Calendar(period.Yearly, now)).Start
	if floor := civil.DateOf(now.Add(-DefaultLookback)); floor.Before(start) {
		return floor
	}
	return start
}

// Load implements snapshot.Source.
func (s SnapshotSource) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if s.UserID == "" {
		return nil, fmt.Errorf("SnapshotSource.Load: user id is required")
	}

	txs, err := s.Repo.ListTransactions(ctx, s.UserID, s.Start, s.End)
	if err != nil {
		return nil, fmt.Errorf("SnapshotSource.Load: transactions: %w", err)
	}
	categories, err := s.Repo.ListCategories(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("SnapshotSource.Load: categories: %w", err)
	}
	goals, err := s.Repo.ListGoals(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("SnapshotSource.Load: goals: %w", err)
	}

	snap := &snapshot.Snapshot{
		UserID:       s.UserID,
		Transactions: txs,
		Categories:   categories,
		Goals:        goals,
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("SnapshotSource.Load: %w", err)
	}
	return snap, nil
}
