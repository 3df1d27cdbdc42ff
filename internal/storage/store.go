package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finman/internal/core"
	"finman/internal/log"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Store persists users, transactions and budgets in a single SQLite
// database. Every mutating call is its own unit of work: it either
// commits fully or rolls back with nothing visible to later reads.
type Store struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: dbPath, logger: log.ForComponent(log.ComponentStorage)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the location of the database file, used by backups.
func (s *Store) Path() string {
	return s.path
}

// CreateUser inserts a new user row. Username uniqueness is enforced by
// the schema; callers check availability first for a friendlier error.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	return id, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (s *Store) UserByID(ctx context.Context, id int64) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return core.User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	return u, nil
}

// parseTransactionTimes decodes the stored date and created_at text. A
// row that fails to parse is corrupted and surfaces as an error rather
// than a zero time.
func parseTransactionTimes(t *core.Transaction, date, createdAt string) error {
	var err error
	if t.Date, err = time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("parse transaction date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return fmt.Errorf("parse transaction created_at: %w", err)
	}
	return nil
}

// InsertTransaction writes a validated transaction and returns its id.
func (s *Store) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, type, category, amount, note, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.OwnerID, string(t.Kind), string(t.Category), t.Amount, t.Note,
		t.Date.Format(dateLayout), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction saved",
		"id", id,
		log.FieldOwner, t.OwnerID,
		"kind", t.Kind,
		log.FieldCategory, t.Category,
		log.FieldAmount, t.Amount,
		"date", t.Date.Format(dateLayout))

	return id, nil
}

// GetTransaction returns one transaction. A missing id and an id owned
// by another user are both reported as core.ErrNotFound.
func (s *Store) GetTransaction(ctx context.Context, id, ownerID int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, type, category, amount, note, date, created_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, ownerID)

	var t core.Transaction
	var date, createdAt string
	err := row.Scan(&t.ID, &t.OwnerID, &t.Kind, &t.Category, &t.Amount, &t.Note, &date, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	if err := parseTransactionTimes(&t, date, createdAt); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// UpdateTransaction applies the set fields of upd to an owned row. The
// ownership check and the update run in one database transaction.
func (s *Store) UpdateTransaction(ctx context.Context, id, ownerID int64, upd core.TransactionUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM transactions WHERE id = ? AND user_id = ?`, id, ownerID).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("verify ownership: %w", err)
	}

	var sets []string
	var args []any
	if upd.Kind != nil {
		sets = append(sets, "type = ?")
		args = append(args, string(*upd.Kind))
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*upd.Category))
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.Amount)
	}
	if upd.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *upd.Note)
	}
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, upd.Date.Format(dateLayout))
	}
	if len(sets) == 0 {
		return core.ErrNoFields
	}
	args = append(args, id, ownerID)

	query := fmt.Sprintf(`UPDATE transactions SET %s WHERE id = ? AND user_id = ?`, strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction updated", "id", id, log.FieldOwner, ownerID)
	return nil
}

// DeleteTransaction removes an owned row, reporting core.ErrNotFound
// for both a missing id and a foreign one.
func (s *Store) DeleteTransaction(ctx context.Context, id, ownerID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	s.logger.InfoContext(ctx, "Transaction deleted", "id", id, log.FieldOwner, ownerID)
	return nil
}

// TransactionFilter narrows QueryTransactions. Nil fields impose no
// constraint; set fields combine with AND.
type TransactionFilter struct {
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Category *core.Category
	Kind     *core.Kind
	Limit    int // 0 means no limit
}

// QueryTransactions returns an owner's transactions matching the
// filter, most recent first (date descending, insertion order breaking
// ties). An empty result is an empty slice, never an error.
func (s *Store) QueryTransactions(ctx context.Context, ownerID int64, f TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT id, user_id, type, category, amount, note, date, created_at
		 FROM transactions WHERE user_id = ?`
	args := []any{ownerID}

	if f.From != nil {
		query += " AND date >= ?"
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += " AND date <= ?"
		args = append(args, f.To.Format(dateLayout))
	}
	if f.Category != nil {
		query += " AND category = ?"
		args = append(args, string(*f.Category))
	}
	if f.Kind != nil {
		query += " AND type = ?"
		args = append(args, string(*f.Kind))
	}

	query += " ORDER BY date DESC, id DESC"

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		var date, createdAt string
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Kind, &t.Category, &t.Amount, &t.Note, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if err := parseTransactionTimes(&t, date, createdAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// UpsertBudget creates or replaces the budget keyed on (owner,
// category, month, year). It reports whether a new row was created.
func (s *Store) UpsertBudget(ctx context.Context, b core.Budget) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?`,
		b.OwnerID, string(b.Category), b.Month, b.Year).Scan(&existing)

	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budgets (user_id, category, monthly_limit, month, year, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.OwnerID, string(b.Category), b.MonthlyLimit, b.Month, b.Year,
			time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return false, fmt.Errorf("insert budget: %w", err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("find budget: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE budgets SET monthly_limit = ? WHERE id = ?`, b.MonthlyLimit, existing)
		if err != nil {
			return false, fmt.Errorf("update budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}

	s.logger.InfoContext(ctx, "Budget saved",
		log.FieldOwner, b.OwnerID,
		log.FieldCategory, b.Category,
		"limit", b.MonthlyLimit,
		log.FieldMonth, b.Month,
		log.FieldYear, b.Year,
		"created", created)

	return created, nil
}

// QueryBudgets returns an owner's budgets for one month, ordered by
// category.
func (s *Store) QueryBudgets(ctx context.Context, ownerID int64, month, year int) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category, monthly_limit, month, year, created_at
		 FROM budgets WHERE user_id = ? AND month = ? AND year = ? ORDER BY category`,
		ownerID, month, year)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		var b core.Budget
		var createdAt string
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Category, &b.MonthlyLimit, &b.Month, &b.Year, &createdAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse budget created_at: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// GetBudget returns the single budget for (owner, category, month,
// year), or core.ErrNotFound.
func (s *Store) GetBudget(ctx context.Context, ownerID int64, category core.Category, month, year int) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, category, monthly_limit, month, year, created_at
		 FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?`,
		ownerID, string(category), month, year)

	var b core.Budget
	var createdAt string
	err := row.Scan(&b.ID, &b.OwnerID, &b.Category, &b.MonthlyLimit, &b.Month, &b.Year, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("scan budget: %w", err)
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return core.Budget{}, fmt.Errorf("parse budget created_at: %w", err)
	}
	return b, nil
}
