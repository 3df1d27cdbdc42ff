package core

import "time"

// MonthlyReport summarizes one calendar month. It is derived on demand
// and never persisted, so it always reflects the current store state.
type MonthlyReport struct {
	Month              int
	Year               int
	StartDate          time.Time
	EndDate            time.Time
	TotalIncome        float64
	TotalExpenses      float64
	Savings            float64 // income - expenses, can be negative
	IncomeByCategory   map[Category]float64
	ExpensesByCategory map[Category]float64
	TransactionCount   int
}

// YearlyReport summarizes one year. MonthlyReports always holds twelve
// entries ordered January through December, however sparse the data.
// The category breakdowns are recomputed over the whole year rather
// than folded from the twelve monthly maps.
type YearlyReport struct {
	Year               int
	TotalIncome        float64
	TotalExpenses      float64
	TotalSavings       float64
	MonthlyReports     []MonthlyReport
	IncomeByCategory   map[Category]float64
	ExpensesByCategory map[Category]float64
	TransactionCount   int
}
