// Package period turns symbolic periods into concrete calendar windows and
// filters transactions to those windows.
package period

import (
	"fmt"
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/domain"
)

// Period is a symbolic reporting or budget window.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Parse parses a case-insensitive period name.
func Parse(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid period: %q", s)
	}
	return p, nil
}

// FromBudget maps a category budget period onto a Period.
func FromBudget(bp domain.BudgetPeriod) Period {
	switch bp {
	case domain.BudgetPeriodWeekly:
		return Weekly
	case domain.BudgetPeriodYearly:
		return Yearly
	case domain.BudgetPeriodMonthly:
		return Monthly
	}
	return Monthly
}

// Range is a window of calendar dates, inclusive on both ends.
type Range struct {
	Start civil.Date `json:"start_date"`
	End   civil.Date `json:"end_date"`
	Label string     `json:"label"`
}

// Days returns the number of calendar days covered by r.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

// Contains reports whether d falls inside r. Both ends are included.
func (r Range) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// StartTime returns 00:00:00 on the first day of r.
func (r Range) StartTime(loc *time.Location) time.Time {
	return r.Start.In(loc)
}

// EndTime returns the last instant of the final day of r.
func (r Range) EndTime(loc *time.Location) time.Time {
	return r.End.AddDays(1).In(loc).Add(-time.Nanosecond)
}

// Trailing returns the window ending today that a period reports on:
// daily is today, weekly the trailing 7 days, monthly the first of the month
// through today and yearly January 1st through today.
func Trailing(p Period, now time.Time) Range {
	today := civil.DateOf(now)

	switch p {
	case Daily:
		return Range{Start: today, End: today, Label: "Today"}
	case Weekly:
		return Range{Start: today.AddDays(-6), End: today, Label: "Last 7 days"}
	case Yearly:
		return Range{Start: civil.Date{Year: today.Year, Month: time.January, Day: 1}, End: today, Label: "This year"}
	}
	return Range{Start: civil.Date{Year: today.Year, Month: today.Month, Day: 1}, End: today, Label: "This month"}
}

// Calendar returns the whole calendar window containing now. Weeks start on
// Monday.
func Calendar(p Period, now time.Time) Range {
	today := civil.DateOf(now)

	switch p {
	case Daily:
		return Range{Start: today, End: today, Label: today.String()}
	case Weekly:
		offset := (int(now.Weekday()) + 6) % 7
		start := today.AddDays(-offset)
		return Range{Start: start, End: start.AddDays(6), Label: "Week of " + start.In(time.UTC).Format("Jan 2")}
	case Yearly:
		return Range{
			Start: civil.Date{Year: today.Year, Month: time.January, Day: 1},
			End:   civil.Date{Year: today.Year, Month: time.December, Day: 31},
			Label: fmt.Sprintf("%d", today.Year),
		}
	}
	start := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
	end := civil.DateOf(time.Date(today.Year, today.Month+1, 0, 0, 0, 0, 0, time.UTC))
	return Range{Start: start, End: end, Label: start.In(time.UTC).Format("January 2006")}
}

// Previous returns the window of equal length immediately before r. The shift
// is by r's length in days, not by calendar months, so a 7-day window always
// compares against exactly the 7 days before it.
func Previous(r Range) Range {
	n := r.Days()
	return Range{
		Start: r.Start.AddDays(-n),
		End:   r.Start.AddDays(-1),
		Label: previousLabel(r, n),
	}
}

func previousLabel(r Range, days int) string {
	switch {
	case r.Label == "Today":
		return "Yesterday"
	case days == 1:
		return r.Start.AddDays(-1).String()
	default:
		return fmt.Sprintf("Previous %d days", days)
	}
}

// DaysRemaining returns the whole days left until the end of r, counting a
// partial day as a full one. It is never less than 1.
func DaysRemaining(r Range, now time.Time) int {
	left := r.EndTime(now.Location()).Sub(now)
	days := int(math.Ceil(left.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Filter returns the transactions dated inside r, in their original order.
func Filter(txs []domain.Transaction, r Range) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
