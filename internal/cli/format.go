package cli

import (
	"fmt"
	"sort"
	"strings"

	"finman/internal/core"
)

var monthNames = []string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// categoryRow pairs a category with its summed amount for rendering.
type categoryRow struct {
	Category core.Category
	Amount   float64
}

// sortedByAmount flattens a breakdown map, largest amounts first.
// Equal amounts fall back to category name so output is stable.
func sortedByAmount(m map[core.Category]float64) []categoryRow {
	rows := make([]categoryRow, 0, len(m))
	for c, a := range m {
		rows = append(rows, categoryRow{Category: c, Amount: a})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func writeBreakdown(b *strings.Builder, title string, m map[core.Category]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, row := range sortedByAmount(m) {
		fmt.Fprintf(b, "  %-20s $%12.2f\n", row.Category, row.Amount)
	}
	b.WriteString("\n")
}

// FormatMonthlyReport renders a monthly report as a text block.
func FormatMonthlyReport(r core.MonthlyReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "MONTHLY FINANCIAL REPORT - %s %d\n", strings.ToUpper(monthNames[r.Month]), r.Year)
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Total Income:      $%.2f\n", r.TotalIncome)
	fmt.Fprintf(&b, "Total Expenses:    $%.2f\n", r.TotalExpenses)
	fmt.Fprintf(&b, "Savings:           $%.2f\n", r.Savings)
	fmt.Fprintf(&b, "Transaction Count: %d\n\n", r.TransactionCount)

	writeBreakdown(&b, "INCOME BY CATEGORY", r.IncomeByCategory)
	writeBreakdown(&b, "EXPENSES BY CATEGORY", r.ExpensesByCategory)

	b.WriteString(rule + "\n")
	return b.String()
}

// FormatYearlyReport renders a yearly report with its twelve-month
// breakdown table.
func FormatYearlyReport(r core.YearlyReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "YEARLY FINANCIAL REPORT - %d\n", r.Year)
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Total Income:      $%.2f\n", r.TotalIncome)
	fmt.Fprintf(&b, "Total Expenses:    $%.2f\n", r.TotalExpenses)
	fmt.Fprintf(&b, "Total Savings:     $%.2f\n", r.TotalSavings)
	fmt.Fprintf(&b, "Transaction Count: %d\n\n", r.TransactionCount)

	b.WriteString("MONTHLY BREAKDOWN:\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "%-12s %14s %14s %14s\n", "Month", "Income", "Expenses", "Savings")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, m := range r.MonthlyReports {
		fmt.Fprintf(&b, "%-12s %14.2f %14.2f %14.2f\n",
			monthNames[m.Month][:3], m.TotalIncome, m.TotalExpenses, m.Savings)
	}
	b.WriteString("\n")

	writeBreakdown(&b, "INCOME BY CATEGORY (YEAR)", r.IncomeByCategory)
	writeBreakdown(&b, "EXPENSES BY CATEGORY (YEAR)", r.ExpensesByCategory)

	b.WriteString(rule + "\n")
	return b.String()
}

// FormatBudgetStatus renders a month's budget status table.
func FormatBudgetStatus(s core.BudgetStatusReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "BUDGET STATUS - %s %d\n", strings.ToUpper(monthNames[s.Month]), s.Year)
	fmt.Fprintf(&b, "%s\n\n", rule)

	if len(s.Budgets) == 0 {
		b.WriteString("No budgets defined for this month.\n")
		b.WriteString(rule + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-22s %12s %12s %12s %7s\n", "Category", "Limit", "Spent", "Remaining", "%")
	b.WriteString(strings.Repeat("-", 70) + "\n")
	for _, row := range s.Budgets {
		marker := "  "
		if row.Exceeded {
			marker = "! "
		}
		fmt.Fprintf(&b, "%s%-20s %12.2f %12.2f %12.2f %6.1f%%\n",
			marker, row.Category, row.Limit, row.Spent, row.Remaining, row.Percentage)
	}
	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// FormatBudgetAlerts renders the exceeded-budget list.
func FormatBudgetAlerts(alerts []core.BudgetAlert) string {
	if len(alerts) == 0 {
		return "\nNo budget alerts. All budgets are within limits.\n"
	}

	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "\n%s\n", rule)
	b.WriteString("BUDGET ALERTS - CATEGORIES EXCEEDED\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	for _, a := range alerts {
		fmt.Fprintf(&b, "Category: %s\n", a.Category)
		fmt.Fprintf(&b, "  Budget Limit:     $%.2f\n", a.Limit)
		fmt.Fprintf(&b, "  Amount Spent:     $%.2f\n", a.Spent)
		fmt.Fprintf(&b, "  Over Budget:      $%.2f\n", a.OverBudget)
		fmt.Fprintf(&b, "  Percentage Used:  %.1f%%\n\n", a.Percentage)
	}

	b.WriteString(rule + "\n")
	return b.String()
}

// FormatTransactions renders a transaction listing, most recent first.
func FormatTransactions(txs []core.Transaction) string {
	if len(txs) == 0 {
		return "\nNo transactions found.\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%6s  %-10s  %-8s  %-16s %12s  %s\n", "ID", "Date", "Type", "Category", "Amount", "Note")
	b.WriteString(strings.Repeat("-", 76) + "\n")
	for _, t := range txs {
		fmt.Fprintf(&b, "%6d  %-10s  %-8s  %-16s %12.2f  %s\n",
			t.ID, t.Date.Format(inputDateLayout), t.Kind, t.Category, t.Amount, t.Note)
	}
	return b.String()
}
