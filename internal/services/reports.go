package services

import (
	"context"
	"fmt"
	"time"

	"finman/internal/core"
	"finman/internal/log"
	"finman/internal/storage"
)

// ReportService composes monthly and yearly summaries from the
// aggregator. Reports are computed from scratch on every call; nothing
// is cached between reads.
type ReportService struct {
	store        *storage.Store
	transactions *TransactionService
	logger       *log.Logger
}

func NewReportService(store *storage.Store, transactions *TransactionService) *ReportService {
	return &ReportService{store: store, transactions: transactions, logger: log.ForComponent(log.ComponentReport)}
}

// Savings returns income minus expenses over the inclusive date range.
func (s *ReportService) Savings(ctx context.Context, ownerID int64, from, to *time.Time) (float64, error) {
	income, err := s.transactions.TotalIncome(ctx, ownerID, from, to)
	if err != nil {
		return 0, err
	}
	expenses, err := s.transactions.TotalExpenses(ctx, ownerID, from, to)
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

// Monthly builds the report for one calendar month.
func (s *ReportService) Monthly(ctx context.Context, ownerID int64, month, year int) (core.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return core.MonthlyReport{}, core.ErrInvalidMonth
	}

	start, end := core.MonthWindow(year, month)
	report := core.MonthlyReport{
		Month:     month,
		Year:      year,
		StartDate: start,
		EndDate:   end,
	}

	txs, err := s.store.QueryTransactions(ctx, ownerID, storage.TransactionFilter{From: &start, To: &end})
	if err != nil {
		return report, fmt.Errorf("monthly report %d/%d: %w", month, year, err)
	}

	income, err := s.transactions.TotalIncome(ctx, ownerID, &start, &end)
	if err != nil {
		return report, err
	}
	expenses, err := s.transactions.TotalExpenses(ctx, ownerID, &start, &end)
	if err != nil {
		return report, err
	}

	report.TotalIncome = income
	report.TotalExpenses = expenses
	report.Savings = income - expenses
	report.IncomeByCategory, report.ExpensesByCategory = groupByCategory(txs)
	report.TransactionCount = len(txs)

	s.logger.DebugContext(ctx, "Monthly report built",
		log.FieldOwner, ownerID,
		log.FieldMonth, month,
		log.FieldYear, year,
		"transactions", report.TransactionCount)

	return report, nil
}

// Yearly builds the report for one calendar year. It always carries
// twelve monthly reports, January through December, and recomputes the
// year-wide category breakdown from the raw transactions instead of
// folding the monthly maps.
func (s *ReportService) Yearly(ctx context.Context, ownerID int64, year int) (core.YearlyReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	report := core.YearlyReport{Year: year}

	income, err := s.transactions.TotalIncome(ctx, ownerID, &start, &end)
	if err != nil {
		return report, err
	}
	expenses, err := s.transactions.TotalExpenses(ctx, ownerID, &start, &end)
	if err != nil {
		return report, err
	}
	report.TotalIncome = income
	report.TotalExpenses = expenses
	report.TotalSavings = income - expenses

	report.MonthlyReports = make([]core.MonthlyReport, 0, 12)
	for month := 1; month <= 12; month++ {
		monthly, err := s.Monthly(ctx, ownerID, month, year)
		if err != nil {
			return report, err
		}
		report.MonthlyReports = append(report.MonthlyReports, monthly)
	}

	txs, err := s.store.QueryTransactions(ctx, ownerID, storage.TransactionFilter{From: &start, To: &end})
	if err != nil {
		return report, fmt.Errorf("yearly report %d: %w", year, err)
	}
	report.IncomeByCategory, report.ExpensesByCategory = groupByCategory(txs)
	report.TransactionCount = len(txs)

	return report, nil
}

// groupByCategory splits category sums into income and expense maps in
// a single pass.
func groupByCategory(txs []core.Transaction) (income, expenses map[core.Category]float64) {
	income = map[core.Category]float64{}
	expenses = map[core.Category]float64{}
	for _, t := range txs {
		if t.Kind == core.Income {
			income[t.Category] += t.Amount
		} else {
			expenses[t.Category] += t.Amount
		}
	}
	return income, expenses
}
