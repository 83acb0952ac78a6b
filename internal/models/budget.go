package models

import (
	"strings"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is an allocation for a category over a period.
//
// Spent, Remaining and Status are derived from the approved expenses linked to
// the budget and are only written by RecalculateBudget and on creation.
type Budget struct {
	DefaultModel
	Name      string
	Category  string          `gorm:"index"`
	Allocated decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Spent     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Remaining decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Period    ledger.Period
	Status    ledger.Status
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.normalize()

	if b.Period == "" {
		b.Period = ledger.PeriodMonthly
	}

	return nil
}

func (b *Budget) normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}

	if b.Allocated.IsNegative() {
		return ErrAllocatedNegative
	}

	return nil
}

// BeforeCreate sets the derived fields for a new budget. No expense can be linked yet.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	err := b.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	e := ledger.Evaluate(b.Allocated, decimal.Zero)
	b.Spent = decimal.Zero
	b.Remaining = e.Remaining
	b.Status = e.Status
	return nil
}

// Ledger returns the budget in its ledger representation.
func (b Budget) Ledger() ledger.Budget {
	return ledger.Budget{
		ID:        b.ID,
		Name:      b.Name,
		Category:  b.Category,
		Allocated: b.Allocated,
		Spent:     b.Spent,
		Remaining: b.Remaining,
		Period:    b.Period,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// UpdateBudget writes the selected fields of patch to the budget and
// recalculates its derived fields.
//
// Only name, category, allocated and period can be selected. Other fields
// are dropped from the selection.
func UpdateBudget(db *gorm.DB, b *Budget, fields []any, patch Budget) error {
	patch.normalize()

	selected := make([]any, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "Name", "Category", "Allocated", "Period":
			selected = append(selected, f)
		}
	}

	if len(selected) > 0 {
		err := db.Model(b).Select("", selected...).Updates(patch).Error
		if err != nil {
			return err
		}
	}

	err := RecalculateBudget(db, b.ID)
	if err != nil {
		return err
	}

	return reload(db, b, b.ID)
}
