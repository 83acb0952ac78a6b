package controllers

import (
	"time"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
)

// User is the API representation of a user. The password hash is never exposed.
type User struct {
	ID          uuid.UUID       `json:"id" example:"0c5a8d2f-6a4e-4d0b-8f5b-3c1e2d7a9b10"`
	Name        string          `json:"name" example:"Ada Lovelace"`
	Email       string          `json:"email" example:"ada@example.com"`
	Role        models.Role     `json:"role" example:"manager"`
	Department  string          `json:"department" example:"Engineering"`
	Permissions types.StringSet `json:"permissions" example:"approve_expenses"`
	IsActive    bool            `json:"isActive" example:"true"`
	LastLogin   *time.Time      `json:"lastLogin" example:"2024-05-02T08:15:00Z"`
	CreatedAt   time.Time       `json:"createdAt" example:"2024-04-02T19:28:44.491514Z"`
	UpdatedAt   time.Time       `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"`
}

func newUser(u models.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Permissions: u.Permissions,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserCreate is the body for creating a user.
type UserCreate struct {
	Name        string          `json:"name" binding:"required,max=255" example:"Ada Lovelace"`
	Email       string          `json:"email" binding:"required,email" example:"ada@example.com"`
	Password    string          `json:"password" binding:"required,min=8" example:"correct horse battery staple"`
	Role        models.Role     `json:"role" binding:"omitempty,oneof=admin manager user" example:"manager"` // Defaults to user
	Department  string          `json:"department" binding:"max=255" example:"Engineering"`
	Permissions types.StringSet `json:"permissions" example:"approve_expenses"`
}

// UserEditable contains the fields of a user that administrators can change.
type UserEditable struct {
	Name        string          `json:"name" binding:"omitempty,max=255" example:"Ada Lovelace"`
	Email       string          `json:"email" binding:"omitempty,email" example:"ada@example.com"`
	Role        models.Role     `json:"role" binding:"omitempty,oneof=admin manager user" example:"manager"`
	Department  string          `json:"department" binding:"max=255" example:"Engineering"`
	Permissions types.StringSet `json:"permissions" example:"approve_expenses"`
}

func (u UserEditable) model() models.User {
	return models.User{
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Permissions: u.Permissions,
	}
}

// PasswordSet is the body for setting the password of another user.
type PasswordSet struct {
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery staple"`
}

type UserQueryFilter struct {
	Role       models.Role `form:"role"`                       // Exact match for the role
	Department string      `form:"department"`                 // Exact match for the department
	IsActive   bool        `form:"isActive"`                   // Filter by active state
	Search     string      `form:"search" filterField:"false"` // Search for this text in name and email
	httputil.PageQuery
}

func (f UserQueryFilter) model() models.User {
	return models.User{
		Role:       f.Role,
		Department: f.Department,
		IsActive:   f.IsActive,
	}
}

type (
	UserListResponse = ListResponse[User]
	UserResponse     = Response[User]
)
