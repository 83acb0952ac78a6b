package models

import (
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a cash-flow record. It is not linked to budgets or expenses.
type Transaction struct {
	DefaultModel
	Type        ledger.TransactionType `gorm:"index"`
	Amount      decimal.Decimal        `gorm:"type:DECIMAL(20,8)"`
	Description string
	Category    string `gorm:"index"`
	Date        time.Time
	Account     string
	Reference   string
	Status      ledger.TransactionStatus
}

// AfterFind updates the timestamps and the date to use UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.normalize()

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}

	if t.Status == "" {
		t.Status = ledger.TransactionCompleted
	}

	return nil
}

func (t *Transaction) normalize() {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Account = strings.TrimSpace(t.Account)
	t.Reference = strings.TrimSpace(t.Reference)
	t.Date = t.Date.In(time.UTC)
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}

	if !t.Status.Valid() {
		return ErrInvalidTransactionStatus
	}

	return nil
}

// Ledger returns the transaction in its ledger representation.
func (t Transaction) Ledger() ledger.Transaction {
	return ledger.Transaction{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
		Account:     t.Account,
		Reference:   t.Reference,
		Status:      t.Status,
	}
}

// UpdateTransaction writes the selected fields of patch to the transaction.
func UpdateTransaction(db *gorm.DB, t *Transaction, fields []any, patch Transaction) error {
	patch.normalize()

	err := db.Model(t).Select("", fields...).Updates(patch).Error
	if err != nil {
		return err
	}

	return reload(db, t, t.ID)
}
