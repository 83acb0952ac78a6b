package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultCategoryColor is used for categories created without a color.
const DefaultCategoryColor = "#6B7280"

// Category groups budgets and expenses. Budgets and expenses reference it by name.
type Category struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex"`
	Description string
	Color       string
	ParentID    *uuid.UUID `gorm:"index"`
	IsActive    bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.normalize()
	return nil
}

func (c *Category) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Color = strings.TrimSpace(c.Color)

	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}

	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}
}

func (c *Category) AfterSave(tx *gorm.DB) error {
	if !hexColor.MatchString(c.Color) {
		return ErrCategoryColorInvalid
	}

	if c.ParentID == nil {
		return nil
	}

	if *c.ParentID == c.ID {
		return ErrCategoryParentSelf
	}

	err := tx.First(&Category{}, *c.ParentID).Error
	if errors.Is(err, ErrResourceNotFound) {
		return ErrCategoryParentMissing
	}
	return err
}

// InUse reports if any budget, expense or sub-category still references the category.
func (c Category) InUse(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&Budget{}).Where("category = ?", c.Name).Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = db.Model(&Expense{}).Where("category = ?", c.Name).Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = db.Model(&Category{}).Where("parent_id = ?", c.ID).Count(&count).Error
	return count > 0, err
}

// UpdateCategory writes the selected fields of patch to the category.
func UpdateCategory(db *gorm.DB, c *Category, fields []any, patch Category) error {
	patch.normalize()

	err := db.Model(c).Select("", fields...).Updates(patch).Error
	if err != nil {
		return err
	}

	return reload(db, c, c.ID)
}

// DeleteCategory deletes the category unless it is still in use.
func DeleteCategory(db *gorm.DB, c *Category) error {
	inUse, err := c.InUse(db)
	if err != nil {
		return err
	}

	if inUse {
		return ErrCategoryInUse
	}

	return db.Delete(c).Error
}

// Ledger returns the category in its ledger representation.
func (c Category) Ledger() ledger.Category {
	return ledger.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
	}
}
