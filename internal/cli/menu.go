package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"finman/internal/auth"
	"finman/internal/backup"
	"finman/internal/core"
	"finman/internal/services"
	"finman/internal/storage"
)

// Menu is the sequential text interface. It owns the current session
// and hands its owner id explicitly to every service call; no state is
// shared between operations beyond the store itself.
type Menu struct {
	out          io.Writer
	prompt       *prompter
	auth         *auth.Service
	transactions *services.TransactionService
	budgets      *services.BudgetService
	reports      *services.ReportService
	backups      *backup.Manager

	session *auth.Session
}

func NewMenu(in io.Reader, out io.Writer, authSvc *auth.Service, tx *services.TransactionService, bud *services.BudgetService, rep *services.ReportService, bak *backup.Manager) *Menu {
	return &Menu{
		out:          out,
		prompt:       newPrompter(in, out),
		auth:         authSvc,
		transactions: tx,
		budgets:      bud,
		reports:      rep,
		backups:      bak,
	}
}

// Run loops until the user exits or input is exhausted.
func (m *Menu) Run(ctx context.Context) {
	fmt.Fprintln(m.out, "\nPersonal Finance Manager")

	for {
		if m.session == nil {
			if !m.loggedOutMenu(ctx) {
				return
			}
			continue
		}
		if !m.loggedInMenu(ctx) {
			return
		}
	}
}

func (m *Menu) loggedOutMenu(ctx context.Context) bool {
	fmt.Fprint(m.out, `
1. Register
2. Login
3. Exit
`)
	choice, ok := m.prompt.int("Select an option")
	if !ok {
		return !m.prompt.exhausted()
	}
	switch choice {
	case 1:
		m.register(ctx)
	case 2:
		m.login(ctx)
	case 3:
		return false
	default:
		fmt.Fprintln(m.out, "Invalid choice. Please try again.")
	}
	return true
}

func (m *Menu) loggedInMenu(ctx context.Context) bool {
	fmt.Fprintf(m.out, `
Logged in as %s
 1. Add transaction
 2. View transactions
 3. Update transaction
 4. Delete transaction
 5. Monthly report
 6. Yearly report
 7. Set budget
 8. Budget status
 9. Budget alerts
10. Backup database
11. Restore database
12. Logout
`, m.session.Username)
	choice, ok := m.prompt.int("Select an option")
	if !ok {
		return !m.prompt.exhausted()
	}
	switch choice {
	case 1:
		m.addTransaction(ctx)
	case 2:
		m.viewTransactions(ctx)
	case 3:
		m.updateTransaction(ctx)
	case 4:
		m.deleteTransaction(ctx)
	case 5:
		m.monthlyReport(ctx)
	case 6:
		m.yearlyReport(ctx)
	case 7:
		m.setBudget(ctx)
	case 8:
		m.budgetStatus(ctx)
	case 9:
		m.budgetAlerts(ctx)
	case 10:
		m.backupDatabase()
	case 11:
		m.restoreDatabase()
	case 12:
		m.session = nil
		fmt.Fprintln(m.out, "Logged out.")
	default:
		fmt.Fprintln(m.out, "Invalid choice. Please try again.")
	}
	return true
}

func (m *Menu) register(ctx context.Context) {
	username := m.prompt.line("Username", "")
	password := m.prompt.line("Password", "")
	if err := m.auth.Register(ctx, username, password); err != nil {
		fmt.Fprintf(m.out, "Registration failed: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "User %q registered successfully.\n", username)
}

func (m *Menu) login(ctx context.Context) {
	username := m.prompt.line("Username", "")
	password := m.prompt.line("Password", "")
	session, err := m.auth.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(m.out, "Login failed: %v\n", err)
		return
	}
	m.session = &session
	fmt.Fprintf(m.out, "Welcome back, %s.\n", session.Username)
}

func (m *Menu) addTransaction(ctx context.Context) {
	kind, ok := m.prompt.kind()
	if !ok {
		return
	}
	category, ok := m.prompt.category(core.CategoriesFor(kind))
	if !ok {
		return
	}
	amount, ok := m.prompt.float("Amount")
	if !ok {
		return
	}
	note := m.prompt.line("Note (optional)", "")
	date, ok := m.prompt.date("Date")
	if !ok {
		return
	}

	id, err := m.transactions.Add(ctx, m.session.UserID, kind, category, amount, note, date)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to add transaction: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "%s added successfully (id %d).\n", kind, id)
}

func (m *Menu) viewTransactions(ctx context.Context) {
	var filter storage.TransactionFilter
	from, ok := m.prompt.optionalDate("From")
	if !ok {
		return
	}
	to, ok := m.prompt.optionalDate("To")
	if !ok {
		return
	}
	filter.From, filter.To = from, to

	txs, err := m.transactions.List(ctx, m.session.UserID, filter)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to list transactions: %v\n", err)
		return
	}
	fmt.Fprint(m.out, FormatTransactions(txs))
}

func (m *Menu) updateTransaction(ctx context.Context) {
	id, ok := m.prompt.int("Transaction id")
	if !ok {
		return
	}

	var upd core.TransactionUpdate
	if raw := m.prompt.line("New type income/expense (blank to keep)", ""); raw != "" {
		k := core.Kind(raw)
		upd.Kind = &k
	}
	if raw := m.prompt.line("New amount (blank to keep)", ""); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(m.out, "Not a number.")
			return
		}
		upd.Amount = &amount
	}
	if raw := m.prompt.line("New note (blank to keep)", ""); raw != "" {
		upd.Note = &raw
	}
	if raw := m.prompt.line("New date YYYY-MM-DD (blank to keep)", ""); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid date, expected YYYY-MM-DD.")
			return
		}
		upd.Date = &d
	}
	if raw := m.prompt.line("New category (blank to keep)", ""); raw != "" {
		c := core.Category(raw)
		upd.Category = &c
	}

	if err := m.transactions.Update(ctx, m.session.UserID, int64(id), upd); err != nil {
		fmt.Fprintf(m.out, "Failed to update transaction: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Transaction updated successfully.")
}

func (m *Menu) deleteTransaction(ctx context.Context) {
	id, ok := m.prompt.int("Transaction id")
	if !ok {
		return
	}
	if err := m.transactions.Delete(ctx, m.session.UserID, int64(id)); err != nil {
		fmt.Fprintf(m.out, "Failed to delete transaction: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Transaction deleted successfully.")
}

func (m *Menu) monthlyReport(ctx context.Context) {
	month, ok := m.prompt.int("Month (1-12)")
	if !ok {
		return
	}
	year, ok := m.prompt.int("Year")
	if !ok {
		return
	}
	report, err := m.reports.Monthly(ctx, m.session.UserID, month, year)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to build report: %v\n", err)
		return
	}
	fmt.Fprint(m.out, FormatMonthlyReport(report))
}

func (m *Menu) yearlyReport(ctx context.Context) {
	year, ok := m.prompt.int("Year")
	if !ok {
		return
	}
	report, err := m.reports.Yearly(ctx, m.session.UserID, year)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to build report: %v\n", err)
		return
	}
	fmt.Fprint(m.out, FormatYearlyReport(report))
}

func (m *Menu) setBudget(ctx context.Context) {
	category, ok := m.prompt.category(core.AllCategories())
	if !ok {
		return
	}
	limit, ok := m.prompt.float("Monthly limit")
	if !ok {
		return
	}
	month, ok := m.prompt.int("Month (1-12)")
	if !ok {
		return
	}
	year, ok := m.prompt.int("Year")
	if !ok {
		return
	}

	created, err := m.budgets.Set(ctx, m.session.UserID, category, limit, month, year)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to set budget: %v\n", err)
		return
	}
	verb := "updated"
	if created {
		verb = "set"
	}
	fmt.Fprintf(m.out, "Budget %s for %s in %d/%d: $%.2f\n", verb, category, month, year, limit)
}

func (m *Menu) budgetStatus(ctx context.Context) {
	month, ok := m.prompt.int("Month (1-12)")
	if !ok {
		return
	}
	year, ok := m.prompt.int("Year")
	if !ok {
		return
	}
	status, err := m.budgets.CheckStatus(ctx, m.session.UserID, month, year)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to check budgets: %v\n", err)
		return
	}
	fmt.Fprint(m.out, FormatBudgetStatus(status))
}

func (m *Menu) budgetAlerts(ctx context.Context) {
	month, ok := m.prompt.int("Month (1-12)")
	if !ok {
		return
	}
	year, ok := m.prompt.int("Year")
	if !ok {
		return
	}
	alerts, err := m.budgets.Alerts(ctx, m.session.UserID, month, year)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to check alerts: %v\n", err)
		return
	}
	fmt.Fprint(m.out, FormatBudgetAlerts(alerts))
}

func (m *Menu) backupDatabase() {
	path, err := m.backups.Snapshot("")
	if err != nil {
		fmt.Fprintf(m.out, "Backup failed: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Database backed up to %s\n", path)
}

func (m *Menu) restoreDatabase() {
	backups, err := m.backups.List()
	if err != nil {
		fmt.Fprintf(m.out, "Failed to list backups: %v\n", err)
		return
	}
	if len(backups) == 0 {
		fmt.Fprintln(m.out, "No backups available.")
		return
	}
	for i, b := range backups {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, b)
	}
	choice, ok := m.prompt.int("Select backup number")
	if !ok || choice < 1 || choice > len(backups) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}
	if err := m.backups.Restore(backups[choice-1]); err != nil {
		fmt.Fprintf(m.out, "Restore failed: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Database restored. Restart the application to reopen the store.")
}
