// Package snapshot is the plain-data bundle the engine computes over and the
// sources it can be loaded from.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/google/uuid"
)

// Snapshot is one user's transactions, categories and goals as fetched by
// the caller.
type Snapshot struct {
	UserID       string               `json:"user_id,omitempty"`
	Transactions []domain.Transaction `json:"transactions"`
	Categories   []domain.Category    `json:"categories"`
	Goals        []domain.Goal        `json:"goals"`
}

// Source loads a snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Decode reads a JSON snapshot, assigns ids to transactions that have none
// and validates it.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("Decode: parse json: %w", err)
	}
	s.AssignIDs()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	return &s, nil
}

// AssignIDs gives every transaction without an id a fresh UUID.
func (s *Snapshot) AssignIDs() {
	for i := range s.Transactions {
		if strings.TrimSpace(s.Transactions[i].ID) == "" {
			s.Transactions[i].ID = uuid.NewString()
		}
	}
}

// Validate checks the snapshot for values the engine trusts its caller not
// to send: negative amounts, unknown enum values, missing dates and
// duplicate ids. All problems are reported together.
func (s *Snapshot) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(s.Transactions))
	for i, t := range s.Transactions {
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("transaction %d: duplicate id %q", i, t.ID))
		}
		seen[t.ID] = true
		if !t.Type.Valid() {
			errs = append(errs, fmt.Errorf("transaction %d: invalid type %q", i, t.Type))
		}
		if t.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("transaction %d: negative amount %s", i, t.Amount))
		}
		if !t.Date.IsValid() {
			errs = append(errs, fmt.Errorf("transaction %d: invalid date %q", i, t.Date))
		}
		if t.RecurrenceInterval != "" && !t.RecurrenceInterval.Valid() {
			errs = append(errs, fmt.Errorf("transaction %d: invalid recurrence interval %q", i, t.RecurrenceInterval))
		}
	}

	categoryIDs := make(map[string]bool, len(s.Categories))
	for i, c := range s.Categories {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("category %d: missing id", i))
		} else if categoryIDs[c.ID] {
			errs = append(errs, fmt.Errorf("category %d: duplicate id %q", i, c.ID))
		}
		categoryIDs[c.ID] = true
		if c.BudgetAmount.IsNegative() {
			errs = append(errs, fmt.Errorf("category %q: negative budget %s", c.ID, c.BudgetAmount))
		}
		if !c.BudgetPeriod.Valid() {
			errs = append(errs, fmt.Errorf("category %q: invalid budget period %q", c.ID, c.BudgetPeriod))
		}
	}

	for i, g := range s.Goals {
		if !g.Status.Valid() {
			errs = append(errs, fmt.Errorf("goal %d: invalid status %q", i, g.Status))
		}
		if g.CurrentAmount.IsNegative() || g.TargetAmount.IsNegative() {
			errs = append(errs, fmt.Errorf("goal %d: negative amount", i))
		}
	}

	return errors.Join(errs...)
}

// FileSource loads a snapshot from a local JSON file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (f FileSource) Load(ctx context.Context) (*Snapshot, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("FileSource.Load: open %q: %w", f.Path, err)
	}
	defer file.Close()

	return Decode(file)
}
