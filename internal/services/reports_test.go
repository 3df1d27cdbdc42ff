package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"finman/internal/core"
	"finman/internal/storage"
)

func TestMonthlyReportScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, core.Income, "Salary", 5000, "2024-06-01")
	f.add(t, core.Expense, "Food", 500, "2024-06-10")
	f.add(t, core.Expense, "Rent", 1500, "2024-06-15")
	f.add(t, core.Expense, "Food", 42, "2024-07-01") // outside the month

	report, err := f.reports.Monthly(ctx, f.owner, 6, 2024)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}

	if report.TotalIncome != 5000 {
		t.Errorf("TotalIncome = %v, want 5000", report.TotalIncome)
	}
	if report.TotalExpenses != 2000 {
		t.Errorf("TotalExpenses = %v, want 2000", report.TotalExpenses)
	}
	if report.Savings != 3000 {
		t.Errorf("Savings = %v, want 3000", report.Savings)
	}
	if report.TransactionCount != 3 {
		t.Errorf("TransactionCount = %d, want 3", report.TransactionCount)
	}
	if report.StartDate.Format("2006-01-02") != "2024-06-01" || report.EndDate.Format("2006-01-02") != "2024-06-30" {
		t.Errorf("window = %s..%s", report.StartDate, report.EndDate)
	}

	if got := report.IncomeByCategory[core.Category("Salary")]; got != 5000 {
		t.Errorf("IncomeByCategory[Salary] = %v", got)
	}
	if got := report.ExpensesByCategory[core.Category("Food")]; got != 500 {
		t.Errorf("ExpensesByCategory[Food] = %v", got)
	}
	if got := report.ExpensesByCategory[core.Category("Rent")]; got != 1500 {
		t.Errorf("ExpensesByCategory[Rent] = %v", got)
	}
}

func TestMonthlyReportSavingsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, core.Income, "Freelance", 1234.56, "2024-03-02")
	f.add(t, core.Expense, "Utilities", 78.90, "2024-03-20")
	f.add(t, core.Expense, "Shopping", 411.11, "2024-03-31")

	report, err := f.reports.Monthly(ctx, f.owner, 3, 2024)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}

	from, to := report.StartDate, report.EndDate
	income, err := f.transactions.TotalIncome(ctx, f.owner, &from, &to)
	if err != nil {
		t.Fatalf("TotalIncome: %v", err)
	}
	expenses, err := f.transactions.TotalExpenses(ctx, f.owner, &from, &to)
	if err != nil {
		t.Fatalf("TotalExpenses: %v", err)
	}
	if report.Savings != income-expenses {
		t.Errorf("Savings = %v, want %v", report.Savings, income-expenses)
	}

	// Count matches an unfiltered query over the same window.
	txs, err := f.transactions.List(ctx, f.owner, storage.TransactionFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if report.TransactionCount != len(txs) {
		t.Errorf("TransactionCount = %d, want %d", report.TransactionCount, len(txs))
	}
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	f := newFixture(t)

	report, err := f.reports.Monthly(context.Background(), f.owner, 1, 2030)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if report.TotalIncome != 0 || report.TotalExpenses != 0 || report.Savings != 0 || report.TransactionCount != 0 {
		t.Errorf("empty month report = %+v", report)
	}
}

func TestMonthlyReportInvalidMonth(t *testing.T) {
	f := newFixture(t)

	if _, err := f.reports.Monthly(context.Background(), f.owner, 13, 2024); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("Monthly = %v, want %v", err, core.ErrInvalidMonth)
	}
}

func TestYearlyReportShape(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, core.Income, "Salary", 5000, "2024-01-31")
	f.add(t, core.Expense, "Rent", 1500, "2024-06-01")
	f.add(t, core.Expense, "Food", 300, "2024-12-31")

	report, err := f.reports.Yearly(ctx, f.owner, 2024)
	if err != nil {
		t.Fatalf("Yearly: %v", err)
	}

	// Always twelve months, January through December.
	if len(report.MonthlyReports) != 12 {
		t.Fatalf("got %d monthly reports, want 12", len(report.MonthlyReports))
	}
	for i, m := range report.MonthlyReports {
		if m.Month != i+1 {
			t.Errorf("position %d holds month %d", i, m.Month)
		}
		if m.Year != 2024 {
			t.Errorf("month %d has year %d", m.Month, m.Year)
		}
	}

	if report.TotalIncome != 5000 || report.TotalExpenses != 1800 {
		t.Errorf("totals = %v / %v", report.TotalIncome, report.TotalExpenses)
	}
	if report.TotalSavings != 3200 {
		t.Errorf("TotalSavings = %v, want 3200", report.TotalSavings)
	}
	if report.TransactionCount != 3 {
		t.Errorf("TransactionCount = %d, want 3", report.TransactionCount)
	}

	// Year-edge entries land in the right months.
	if report.MonthlyReports[0].TotalIncome != 5000 {
		t.Errorf("January income = %v", report.MonthlyReports[0].TotalIncome)
	}
	if report.MonthlyReports[11].TotalExpenses != 300 {
		t.Errorf("December expenses = %v", report.MonthlyReports[11].TotalExpenses)
	}

	if got := report.ExpensesByCategory[core.Category("Rent")]; got != 1500 {
		t.Errorf("ExpensesByCategory[Rent] = %v", got)
	}
}

func TestYearlyReportEmptyYearStillTwelveMonths(t *testing.T) {
	f := newFixture(t)

	report, err := f.reports.Yearly(context.Background(), f.owner, 1999)
	if err != nil {
		t.Fatalf("Yearly: %v", err)
	}
	if len(report.MonthlyReports) != 12 {
		t.Errorf("got %d monthly reports, want 12", len(report.MonthlyReports))
	}
	if report.TransactionCount != 0 {
		t.Errorf("TransactionCount = %d", report.TransactionCount)
	}
}

func TestReportsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, core.Income, "Salary", 5000, "2024-06-01")
	f.add(t, core.Expense, "Food", 600, "2024-06-15")
	if _, err := f.budgets.Set(ctx, f.owner, "Food", 500, 6, 2024); err != nil {
		t.Fatalf("Set: %v", err)
	}

	first, err := f.reports.Monthly(ctx, f.owner, 6, 2024)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	second, err := f.reports.Monthly(ctx, f.owner, 6, 2024)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two reads with no writes differ")
	}

	s1, err := f.budgets.CheckStatus(ctx, f.owner, 6, 2024)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	s2, err := f.budgets.CheckStatus(ctx, f.owner, 6, 2024)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Error("two status reads with no writes differ")
	}
}

func TestSavingsRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, core.Income, "Salary", 100, "2024-06-01")
	f.add(t, core.Expense, "Food", 250, "2024-06-02")

	from, to := date("2024-06-01"), date("2024-06-30")
	savings, err := f.reports.Savings(ctx, f.owner, &from, &to)
	if err != nil {
		t.Fatalf("Savings: %v", err)
	}
	if savings != -150 {
		t.Errorf("Savings = %v, want -150", savings)
	}
}
