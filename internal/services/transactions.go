package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finman/internal/core"
	"finman/internal/log"
	"finman/internal/storage"
)

// TransactionService validates and records ledger entries and provides
// the filtered retrieval and totals the reports are built on.
type TransactionService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewTransactionService(store *storage.Store) *TransactionService {
	return &TransactionService{store: store, logger: log.ForComponent(log.ComponentLedger)}
}

// Add records a new income or expense entry. Validation runs before the
// store is touched; a zero date defaults to today.
func (s *TransactionService) Add(ctx context.Context, ownerID int64, kind core.Kind, category core.Category, amount float64, note string, date time.Time) (int64, error) {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	t := core.Transaction{
		OwnerID:  ownerID,
		Kind:     kind,
		Category: category,
		Amount:   amount,
		Note:     note,
		Date:     date,
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "Entry recorded",
		"id", id,
		log.FieldOwner, ownerID,
		log.FieldCategory, category,
		log.FieldAmount, amount)

	return id, nil
}

// Update applies a partial-field update to an owned transaction.
func (s *TransactionService) Update(ctx context.Context, ownerID, id int64, upd core.TransactionUpdate) error {
	current, err := s.store.GetTransaction(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := upd.Validate(current); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, id, ownerID, upd); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id, ownerID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Get returns a single owned transaction.
func (s *TransactionService) Get(ctx context.Context, ownerID, id int64) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id, ownerID)
}

// List returns the owner's transactions matching the filter, most
// recent first.
func (s *TransactionService) List(ctx context.Context, ownerID int64, f storage.TransactionFilter) ([]core.Transaction, error) {
	txs, err := s.store.QueryTransactions(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// TotalIncome sums income entries within the inclusive date range.
// Nil bounds impose no constraint; an empty set totals 0.
func (s *TransactionService) TotalIncome(ctx context.Context, ownerID int64, from, to *time.Time) (float64, error) {
	return s.total(ctx, ownerID, core.Income, from, to)
}

// TotalExpenses sums expense entries within the inclusive date range.
func (s *TransactionService) TotalExpenses(ctx context.Context, ownerID int64, from, to *time.Time) (float64, error) {
	return s.total(ctx, ownerID, core.Expense, from, to)
}

func (s *TransactionService) total(ctx context.Context, ownerID int64, kind core.Kind, from, to *time.Time) (float64, error) {
	txs, err := s.store.QueryTransactions(ctx, ownerID, storage.TransactionFilter{
		From: from,
		To:   to,
		Kind: &kind,
	})
	if err != nil {
		return 0, fmt.Errorf("total %s: %w", kind, err)
	}
	var sum float64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum, nil
}
