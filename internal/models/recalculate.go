package models

import (
	"errors"
	"sync"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// budgetLocks holds one *sync.Mutex per budget ID.
var budgetLocks sync.Map

func lockBudget(id uuid.UUID) (unlock func()) {
	m, _ := budgetLocks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// RecalculateBudget recomputes spent, remaining and status of the budget from
// the approved expenses linked to it.
//
// Spent is always recomputed from scratch. Recalculations for the same budget
// are serialized and each runs in its own transaction, so concurrent approvals
// cannot lose updates.
//
// A budget that does not exist is skipped with a warning.
func RecalculateBudget(db *gorm.DB, id uuid.UUID) error {
	unlock := lockBudget(id)
	defer unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		var budget Budget
		err := tx.First(&budget, id).Error
		if errors.Is(err, ErrResourceNotFound) {
			log.Warn().Str("budget", id.String()).Msg("skipping recalculation for missing budget")
			return nil
		} else if err != nil {
			return err
		}

		var expenses []Expense
		err = tx.Where(&Expense{BudgetID: &id, Status: ledger.ExpenseApproved}).Find(&expenses).Error
		if err != nil {
			return err
		}

		linked := make([]ledger.Expense, 0, len(expenses))
		for _, e := range expenses {
			linked = append(linked, e.Ledger())
		}

		derived := budget.Ledger().WithSpent(ledger.SpentFor(id, linked))

		return tx.Model(&budget).Select("Spent", "Remaining", "Status").Updates(Budget{
			Spent:     derived.Spent,
			Remaining: derived.Remaining,
			Status:    derived.Status,
		}).Error
	})
}

// recalculate recalculates all budgets in order. Failures are logged, never returned,
// so that they do not fail the expense operation that triggered them.
func recalculate(db *gorm.DB, ids []uuid.UUID) {
	for _, id := range ids {
		if err := RecalculateBudget(db, id); err != nil {
			log.Error().Err(err).Str("budget", id.String()).Msg("budget recalculation failed")
		}
	}
}
