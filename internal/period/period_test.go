package period

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/domain"
)

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Monday 2026-10-19, mid-afternoon.
var now = time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)

func TestTrailing(t *testing.T) {
	tests := []struct {
		period    Period
		wantStart string
		wantEnd   string
	}{
		{Daily, "2026-10-19", "2026-10-19"},
		{Weekly, "2026-10-13", "2026-10-19"},
		{Monthly, "2026-10-01", "2026-10-19"},
		{Yearly, "2026-01-01", "2026-10-19"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := Trailing(tt.period, now)
			if r.Start != date(tt.wantStart) || r.End != date(tt.wantEnd) {
				t.Errorf("Trailing(%s) = %s..%s, want %s..%s", tt.period, r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTrailingWeeklyIsSevenDays(t *testing.T) {
	if got := Trailing(Weekly, now).Days(); got != 7 {
		t.Errorf("weekly window has %d days, want 7", got)
	}
}

func TestCalendar(t *testing.T) {
	tests := []struct {
		name      string
		period    Period
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"week starting monday", Weekly, now, "2026-10-19", "2026-10-25"},
		{"week from sunday", Weekly, time.Date(2026, time.October, 25, 9, 0, 0, 0, time.UTC), "2026-10-19", "2026-10-25"},
		{"october", Monthly, now, "2026-10-01", "2026-10-31"},
		{"leap february", Monthly, time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC), "2028-02-01", "2028-02-29"},
		{"december", Monthly, time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC), "2026-12-01", "2026-12-31"},
		{"year", Yearly, now, "2026-01-01", "2026-12-31"},
		{"day", Daily, now, "2026-10-19", "2026-10-19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calendar(tt.period, tt.now)
			if r.Start != date(tt.wantStart) || r.End != date(tt.wantEnd) {
				t.Errorf("Calendar(%s) = %s..%s, want %s..%s", tt.period, r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPrevious(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		wantStart string
		wantEnd   string
	}{
		{"trailing week", Trailing(Weekly, now), "2026-10-06", "2026-10-12"},
		{"month to date shifts by days", Trailing(Monthly, now), "2026-09-12", "2026-09-30"},
		{"full october shifts 31 days", Calendar(Monthly, now), "2026-08-31", "2026-09-30"},
		{"single day", Trailing(Daily, now), "2026-10-18", "2026-10-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Previous(tt.r)
			if prev.Start != date(tt.wantStart) || prev.End != date(tt.wantEnd) {
				t.Errorf("Previous() = %s..%s, want %s..%s", prev.Start, prev.End, tt.wantStart, tt.wantEnd)
			}
			if prev.Days() != tt.r.Days() {
				t.Errorf("Previous() has %d days, want %d", prev.Days(), tt.r.Days())
			}
		})
	}
}

func TestPreviousLabel(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want string
	}{
		{"today", Trailing(Daily, now), "Yesterday"},
		{"calendar day", Calendar(Daily, now), "2026-10-18"},
		{"trailing week", Trailing(Weekly, now), "Previous 7 days"},
		{"month to date", Trailing(Monthly, now), "Previous 19 days"},
		{"calendar month", Calendar(Monthly, now), "Previous 31 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Previous(tt.r).Label
			if got != tt.want {
				t.Errorf("Previous(%q).Label = %q, want %q", tt.r.Label, got, tt.want)
			}
		})
	}
}

func TestFilterIsBoundaryInclusive(t *testing.T) {
	r := Range{Start: date("2026-10-01"), End: date("2026-10-07")}
	txs := []domain.Transaction{
		{ID: "before", Date: date("2026-09-30")},
		{ID: "start", Date: date("2026-10-01")},
		{ID: "middle", Date: date("2026-10-04")},
		{ID: "end", Date: date("2026-10-07")},
		{ID: "after", Date: date("2026-10-08")},
	}

	got := Filter(txs, r)
	want := []string{"start", "middle", "end"}
	if len(got) != len(want) {
		t.Fatalf("Filter() returned %d transactions, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Filter()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestEndTime(t *testing.T) {
	r := Range{Start: date("2026-10-19"), End: date("2026-10-19")}
	end := r.EndTime(time.UTC)
	if end.Day() != 19 || end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndTime() = %v, want 2026-10-19 23:59:59.999999999", end)
	}
	if !r.StartTime(time.UTC).Equal(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartTime() = %v", r.StartTime(time.UTC))
	}
}

func TestDaysRemaining(t *testing.T) {
	month := Calendar(Monthly, now)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"mid month", now, 13},
		{"first instant of month", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), 31},
		{"last day", time.Date(2026, time.October, 31, 12, 0, 0, 0, time.UTC), 1},
		{"after the window", time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(month, tt.now); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if p, err := Parse(" Weekly "); err != nil || p != Weekly {
		t.Errorf("Parse(Weekly) = %q, %v", p, err)
	}
	if _, err := Parse("fortnightly"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestFromBudget(t *testing.T) {
	tests := map[domain.BudgetPeriod]Period{
		domain.BudgetPeriodWeekly:  Weekly,
		domain.BudgetPeriodMonthly: Monthly,
		domain.BudgetPeriodYearly:  Yearly,
	}
	for in, want := range tests {
		if got := FromBudget(in); got != want {
			t.Errorf("FromBudget(%s) = %s, want %s", in, got, want)
		}
	}
}
