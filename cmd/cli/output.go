package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dvloznov/budgetwise/internal/report"
	"github.com/shopspring/decimal"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func printInsights(w io.Writer, r report.Report) error {
	fmt.Fprintf(w, "\n=== Budget Insights (%d) ===\n", len(r.Insights))
	if len(r.Insights) == 0 {
		fmt.Fprintln(w, "No active categories with a budget.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSTATUS\tSPENT\tBUDGET\tUSED\tVS PREVIOUS")
	for _, in := range r.Insights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			in.CategoryName, in.Status, money(in.AmountSpent), money(in.BudgetAmount),
			in.UtilizationPercentage, in.ComparisonText)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, in := range r.Insights {
		if in.Suggestion != "" {
			fmt.Fprintf(w, "  - %s: %s\n", in.CategoryName, in.Suggestion)
		}
	}
	return nil
}

func printHealth(w io.Writer, r report.Report) error {
	h := r.Health
	fmt.Fprintln(w, "\n=== Budget Health ===")
	fmt.Fprintf(w, "Budget:     %s\n", money(h.TotalBudget))
	fmt.Fprintf(w, "Spent:      %s\n", money(h.TotalSpent))
	fmt.Fprintf(w, "Remaining:  %s\n", money(h.TotalRemaining))
	fmt.Fprintf(w, "Used:       %.1f%%\n", h.OverallUtilization)
	fmt.Fprintf(w, "Categories: %d (ok %d, warning %d, critical %d, exceeded %d)\n",
		h.Categories, h.OK, h.Warning, h.Critical, h.Exceeded)
	return nil
}

func printAvailable(w io.Writer, r report.Report) error {
	a := r.Available
	fmt.Fprintf(w, "\n=== Available to Spend (%s) ===\n", r.Range.Label)
	fmt.Fprintf(w, "Available:      %s\n", money(a.Amount))
	fmt.Fprintf(w, "Per day:        %s (%d days left)\n", money(a.DailyAmount), a.DaysRemaining)
	fmt.Fprintf(w, "Income:         %s\n", money(a.Breakdown.TotalIncome))
	fmt.Fprintf(w, "Expenses:       %s\n", money(a.Breakdown.TotalExpenses))
	fmt.Fprintf(w, "Goals:          %s\n", money(a.Breakdown.GoalAllocations))
	fmt.Fprintf(w, "Upcoming bills: %s\n", money(a.Breakdown.UpcomingBills))
	return nil
}

func printTrend(w io.Writer, r report.Report) error {
	t := r.Trend
	fmt.Fprintf(w, "\n=== Trend (%s vs %s) ===\n", r.Range.Label, r.PreviousRange.Label)
	fmt.Fprintf(w, "Current:  %s\n", money(t.CurrentPeriodTotal))
	fmt.Fprintf(w, "Previous: %s\n", money(t.PreviousPeriodTotal))
	fmt.Fprintf(w, "Change:   %+.1f%% (%s)\n", t.PercentageChange, t.Trend)

	if len(r.CategoryTrends) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCATEGORY\tCURRENT\tPREVIOUS\tCHANGE\tTREND")
	for _, ct := range r.CategoryTrends {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+.1f%%\t%s\n",
			ct.CategoryName, money(ct.CurrentPeriodTotal), money(ct.PreviousPeriodTotal),
			ct.PercentageChange, ct.Trend)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, r report.Report) error {
	s := r.Spending
	fmt.Fprintf(w, "\n=== Spending Summary (%s) ===\n", r.Range.Label)
	fmt.Fprintf(w, "Total:         %s over %d active days\n", money(s.TotalExpenses), s.ActiveDays)
	fmt.Fprintf(w, "Daily average: %s\n", money(s.AverageDailySpending))
	if s.TopCategory != nil {
		fmt.Fprintf(w, "Top category:  %s (%s, %.0f%%)\n", s.TopCategory.CategoryName, money(s.TopCategory.Amount), s.TopCategory.Percentage)
	}
	if s.LargestExpense != nil {
		fmt.Fprintf(w, "Largest:       %s %s on %s\n", s.LargestExpense.Description, money(s.LargestExpense.Amount), s.LargestExpense.Date)
	}
	if s.MostFrequentCategory != nil {
		fmt.Fprintf(w, "Most frequent: %s (%d expenses)\n", s.MostFrequentCategory.CategoryName, s.MostFrequentCategory.Count)
	}

	if len(r.Breakdown) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCATEGORY\tAMOUNT\tCOUNT\tSHARE")
	for _, c := range r.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\n", c.CategoryName, money(c.Amount), c.Count, c.Percentage)
	}
	return tw.Flush()
}

func printRecurring(w io.Writer, r report.Report) error {
	fmt.Fprintf(w, "\n=== Recurring Patterns (%d) ===\n", len(r.Recurring))
	if len(r.Recurring) == 0 {
		fmt.Fprintln(w, "No recurring patterns detected.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tPATTERN\tAVG AMOUNT\tSEEN\tCONFIDENCE\tNEXT")
	for _, p := range r.Recurring {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f\t%s\n",
			p.SuggestedDescription, p.Pattern, money(p.AverageAmount), len(p.Transactions),
			p.Confidence, p.NextExpected)
	}
	return tw.Flush()
}

func printReport(w io.Writer, r report.Report) error {
	fmt.Fprintf(w, "BudgetWise report for %s..%s (%s)\n", r.Range.Start, r.Range.End, r.Period)
	for _, section := range []func(io.Writer, report.Report) error{
		printHealth, printInsights, printAvailable, printTrend, printSummary, printRecurring,
	} {
		if err := section(w, r); err != nil {
			return err
		}
	}
	return nil
}
