package controllers

import (
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/google/uuid"
)

// CategoryCreate is the body for creating a category.
type CategoryCreate struct {
	Name        string     `json:"name" binding:"required,max=100" example:"Travel"`                      // Name of the category. Must be unique
	Description string     `json:"description" binding:"max=500" example:"Flights, hotels and per diems"` // Description
	Color       string     `json:"color" binding:"omitempty,hexcolor" example:"#3B82F6"`                  // Hex color. Defaults to a neutral gray
	ParentID    *uuid.UUID `json:"parentId" example:"8b4a2c3e-0f7a-4d2b-9a1f-1c2d3e4f5a6b"`               // ID of the parent category
	IsActive    *bool      `json:"isActive" example:"true"`                                               // Inactive categories are excluded from the dashboard breakdown. Defaults to true
}

func (e CategoryCreate) model() models.Category {
	return CategoryEditable(e).model()
}

// CategoryEditable contains the fields of a category that clients can set.
type CategoryEditable struct {
	Name        string     `json:"name" binding:"omitempty,max=100" example:"Travel"`
	Description string     `json:"description" binding:"max=500" example:"Flights, hotels and per diems"`
	Color       string     `json:"color" binding:"omitempty,hexcolor" example:"#3B82F6"`
	ParentID    *uuid.UUID `json:"parentId" example:"8b4a2c3e-0f7a-4d2b-9a1f-1c2d3e4f5a6b"`
	IsActive    *bool      `json:"isActive" example:"true"`
}

func (e CategoryEditable) model() models.Category {
	c := models.Category{
		Name:        e.Name,
		Description: e.Description,
		Color:       e.Color,
		ParentID:    e.ParentID,
		IsActive:    true,
	}

	if e.IsActive != nil {
		c.IsActive = *e.IsActive
	}

	return c
}

type CategoryQueryFilter struct {
	IsActive bool   `form:"isActive"`                   // Filter by active state
	ParentID string `form:"parent" filterField:"false"` // ID of the parent category. Send an empty value for top level categories
	Search   string `form:"search" filterField:"false"` // Search for this text in name and description
	httputil.PageQuery
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		IsActive: f.IsActive,
	}
}

type (
	CategoryListResponse = ListResponse[ledger.Category]
	CategoryResponse     = Response[ledger.Category]
)
