package analytics

import (
	"math"
	"sort"

	"github.com/dvloznov/budgetwise/internal/aggregate"
	"github.com/dvloznov/budgetwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Trend is the direction of period-over-period spend.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// StableBand is the absolute percentage change below which spend is stable.
const StableBand = 5.0

// TrendFor classifies a percentage change.
func TrendFor(change float64) Trend {
	switch {
	case math.Abs(change) < StableBand:
		return TrendStable
	case change > 0:
		return TrendUp
	default:
		return TrendDown
	}
}

// TrendComparison compares spend between two windows.
type TrendComparison struct {
	CurrentPeriodTotal  decimal.Decimal `json:"current_period_total"`
	PreviousPeriodTotal decimal.Decimal `json:"previous_period_total"`
	PercentageChange    float64         `json:"percentage_change"`
	Trend               Trend           `json:"trend"`
}

// CompareTrend totals current and previous expenses and classifies the
// change. A previous total of zero reads as a 100% rise when there is any
// current spend and as 0% otherwise.
func CompareTrend(currentExpenses, previousExpenses []domain.Transaction) TrendComparison {
	current := aggregate.Sum(currentExpenses)
	previous := aggregate.Sum(previousExpenses)
	change := aggregate.PercentChange(current, previous)

	return TrendComparison{
		CurrentPeriodTotal:  current,
		PreviousPeriodTotal: previous,
		PercentageChange:    change,
		Trend:               TrendFor(change),
	}
}

// CategoryTrend is a TrendComparison for one category.
type CategoryTrend struct {
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
	TrendComparison
	ChangeAmount decimal.Decimal `json:"change_amount"`
}

// CategoryTrends compares spend per category between two windows. Every
// category seen in either window is reported; results are ordered by the
// size of the absolute change, largest first.
func CategoryTrends(currentExpenses, previousExpenses []domain.Transaction, categories []domain.Category) []CategoryTrend {
	names := domain.CategoryNames(categories)

	type bucket struct {
		id, name          string
		current, previous []domain.Transaction
	}
	index := make(map[string]int)
	var buckets []*bucket

	get := func(t domain.Transaction) *bucket {
		i, ok := index[t.CategoryID]
		if !ok {
			name := domain.ResolveCategoryName(t, names)
			if t.CategoryID == "" {
				name = domain.FallbackCategoryKey
			}
			i = len(buckets)
			index[t.CategoryID] = i
			buckets = append(buckets, &bucket{id: t.CategoryID, name: name})
		}
		return buckets[i]
	}

	for _, t := range currentExpenses {
		b := get(t)
		b.current = append(b.current, t)
	}
	for _, t := range previousExpenses {
		b := get(t)
		b.previous = append(b.previous, t)
	}

	trends := make([]CategoryTrend, 0, len(buckets))
	for _, b := range buckets {
		cmp := CompareTrend(b.current, b.previous)
		trends = append(trends, CategoryTrend{
			CategoryID:      b.id,
			CategoryName:    b.name,
			TrendComparison: cmp,
			ChangeAmount:    cmp.CurrentPeriodTotal.Sub(cmp.PreviousPeriodTotal),
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].ChangeAmount.Abs().GreaterThan(trends[j].ChangeAmount.Abs())
	})
	return trends
}
