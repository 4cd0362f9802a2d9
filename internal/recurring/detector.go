// Package recurring infers repeating obligations from transaction history:
// payments the user makes by hand on a regular cadence but never marked as
// recurring.
package recurring

import (
	"math"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Detector constants. They are empirical and kept as-is for compatibility
// with previously reported confidence scores.
const (
	// MinOccurrences is the smallest group that can form a pattern.
	MinOccurrences = 3

	// ConsistencyRatio is the share of gaps that must individually match
	// the cadence.
	ConsistencyRatio = 0.7

	baseConfidence     = 50.0
	occurrenceBonus    = 5.0
	maxOccurrenceBonus = 30.0
	maxRegularityBonus = 20.0
)

// amountTolerance is the relative amount difference two similar
// transactions may have.
var amountTolerance = decimal.NewFromFloat(0.05)

type cadence struct {
	pattern   domain.Recurrence
	days      float64
	tolerance float64
}

// Canonical cadences, matched in this order.
var cadences = []cadence{
	{domain.RecurrenceDaily, 1, 3},
	{domain.RecurrenceWeekly, 7, 3},
	{domain.RecurrenceBiweekly, 14, 3},
	{domain.RecurrenceMonthly, 30, 3},
	{domain.RecurrenceYearly, 365, 10},
}

// Pattern is a recurring transaction inferred from history. It is a
// suggestion only; nothing is persisted.
type Pattern struct {
	Transactions         []domain.Transaction   `json:"transactions"`
	Pattern              domain.Recurrence      `json:"pattern"`
	Confidence           float64                `json:"confidence"`
	AverageAmount        decimal.Decimal        `json:"average_amount"`
	SuggestedDescription string                 `json:"suggested_description"`
	Type                 domain.TransactionType `json:"type"`
	CategoryID           string                 `json:"category_id,omitempty"`
	AverageIntervalDays  float64                `json:"average_interval_days"`
	LastDate             civil.Date             `json:"last_date"`
	NextExpected         civil.Date             `json:"next_expected"`
}

// Detect groups similar transactions and reports the groups that repeat on
// a canonical cadence, highest confidence first. Transactions already marked
// as recurring are ignored.
func Detect(txs []domain.Transaction) []Pattern {
	candidates := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if !t.IsRecurring {
			candidates = append(candidates, t)
		}
	}
	sortByDate(candidates)

	patterns := make([]Pattern, 0)
	for _, group := range groupSimilar(candidates) {
		if p, ok := analyze(group); ok {
			patterns = append(patterns, p)
		}
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	return patterns
}

// Similar reports whether b looks like another occurrence of ref: same type,
// same category and an amount within 5% of ref's.
func Similar(ref, b domain.Transaction) bool {
	if ref.Type != b.Type || ref.CategoryID != b.CategoryID {
		return false
	}
	limit := ref.Amount.Abs().Mul(amountTolerance)
	return ref.Amount.Sub(b.Amount).Abs().LessThanOrEqual(limit)
}

// groupSimilar builds groups greedily in date order. Each unprocessed
// transaction seeds a group of every unprocessed transaction similar to it;
// groups of at least MinOccurrences are kept and their members consumed.
func groupSimilar(sorted []domain.Transaction) [][]domain.Transaction {
	processed := make([]bool, len(sorted))
	var groups [][]domain.Transaction

	for i := range sorted {
		if processed[i] {
			continue
		}

		members := []int{i}
		for j := range sorted {
			if j == i || processed[j] {
				continue
			}
			if Similar(sorted[i], sorted[j]) {
				members = append(members, j)
			}
		}
		if len(members) < MinOccurrences {
			continue
		}

		sort.Ints(members)
		group := make([]domain.Transaction, 0, len(members))
		for _, m := range members {
			processed[m] = true
			group = append(group, sorted[m])
		}
		groups = append(groups, group)
	}
	return groups
}

func analyze(group []domain.Transaction) (Pattern, bool) {
	if len(group) < MinOccurrences {
		return Pattern{}, false
	}
	sortByDate(group)

	gaps := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		gaps = append(gaps, float64(group[i].Date.DaysSince(group[i-1].Date)))
	}
	avg := mean(gaps)

	c, ok := matchCadence(avg, gaps)
	if !ok {
		return Pattern{}, false
	}

	last := group[len(group)-1]
	return Pattern{
		Transactions:         group,
		Pattern:              c.pattern,
		Confidence:           Confidence(len(group), gaps),
		AverageAmount:        averageAmount(group),
		SuggestedDescription: suggestDescription(group),
		Type:                 group[0].Type,
		CategoryID:           group[0].CategoryID,
		AverageIntervalDays:  avg,
		LastDate:             last.Date,
		NextExpected:         NextOccurrence(last.Date, c.pattern),
	}, true
}

// matchCadence returns the first cadence whose expected gap is within
// tolerance of the average gap and of at least ConsistencyRatio of the
// individual gaps.
func matchCadence(avg float64, gaps []float64) (cadence, bool) {
	for _, c := range cadences {
		if math.Abs(avg-c.days) > c.tolerance {
			continue
		}
		matching := 0
		for _, g := range gaps {
			if math.Abs(g-c.days) <= c.tolerance {
				matching++
			}
		}
		if float64(matching)/float64(len(gaps)) >= ConsistencyRatio {
			return c, true
		}
	}
	return cadence{}, false
}

// Confidence scores a group: 50, plus 5 per occurrence up to 30, plus up to
// 20 for regular gaps (20 minus the population standard deviation of the
// gaps, floored at 0), capped at 100.
func Confidence(occurrences int, gaps []float64) float64 {
	score := baseConfidence + math.Min(float64(occurrences)*occurrenceBonus, maxOccurrenceBonus)
	score += math.Max(0, maxRegularityBonus-stddev(gaps))
	return math.Min(score, 100)
}

// NextOccurrence projects the date after last on the given cadence. Monthly
// and yearly cadences step by calendar month and year.
func NextOccurrence(last civil.Date, r domain.Recurrence) civil.Date {
	t := last.In(time.UTC)
	switch r {
	case domain.RecurrenceDaily:
		return last.AddDays(1)
	case domain.RecurrenceWeekly:
		return last.AddDays(7)
	case domain.RecurrenceBiweekly:
		return last.AddDays(14)
	case domain.RecurrenceMonthly:
		return civil.DateOf(t.AddDate(0, 1, 0))
	case domain.RecurrenceYearly:
		return civil.DateOf(t.AddDate(1, 0, 0))
	}
	return last
}

func averageAmount(group []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range group {
		total = total.Add(t.Amount)
	}
	return total.Div(decimal.NewFromInt(int64(len(group))))
}

// suggestDescription picks the first description to reach the highest count
// in the group, then the category name, then "Unnamed".
func suggestDescription(group []domain.Transaction) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, t := range group {
		desc := strings.TrimSpace(t.Description)
		if desc == "" {
			continue
		}
		counts[desc]++
		if counts[desc] > bestCount {
			best, bestCount = desc, counts[desc]
		}
	}
	if best != "" {
		return best
	}
	for _, t := range group {
		if name := strings.TrimSpace(t.CategoryName); name != "" {
			return name
		}
	}
	return domain.FallbackDescription
}

func sortByDate(txs []domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)))
}
