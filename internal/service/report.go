package service

import (
	"fmt"
	"strconv"
)

// SpendingThreshold separates healthy spending from a "consider reducing"
// suggestion on the dashboard, in whole currency units.
const SpendingThreshold = 50000

// Report is the dashboard aggregation: per-category totals in first-seen
// order plus zero or one suggestion strings.
type Report struct {
	Categories  []string
	Totals      []float64
	Suggestions []string
}

// ReportService computes the dashboard aggregation.
type ReportService struct {
	Expenses   *ExpenseService
	Categories *CategoryService
}

func NewReportService(expenses *ExpenseService, categories *CategoryService) *ReportService {
	return &ReportService{Expenses: expenses, Categories: categories}
}

// Dashboard groups the user's expenses by category name, summing amounts.
// Category names appear in the order they are first seen among the expenses.
func (s *ReportService) Dashboard(userID uint) (*Report, error) {
	expenses, err := s.Expenses.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	// resolve category ids to names once instead of per expense
	categories, err := s.Categories.List(userID)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	report := &Report{}
	totals := make(map[string]float64)
	for _, e := range expenses {
		name := names[e.CategoryID]
		if _, seen := totals[name]; !seen {
			report.Categories = append(report.Categories, name)
		}
		totals[name] += e.Amount
	}
	for _, name := range report.Categories {
		report.Totals = append(report.Totals, totals[name])
	}

	if len(report.Categories) == 0 {
		return report, nil
	}

	// strict > keeps the earliest category on ties
	maxIdx := 0
	for i, total := range report.Totals {
		if total > report.Totals[maxIdx] {
			maxIdx = i
		}
	}

	if report.Totals[maxIdx] > SpendingThreshold {
		report.Suggestions = append(report.Suggestions, fmt.Sprintf(
			"You spend Rp%s on %s. Consider reducing it.",
			formatAmount(report.Totals[maxIdx]), report.Categories[maxIdx],
		))
	} else {
		report.Suggestions = append(report.Suggestions, "Your spending is within healthy limits.")
	}

	return report, nil
}

// formatAmount renders a total without a trailing ".0" for whole values.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
