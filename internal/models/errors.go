package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Budget errors
var (
	ErrAllocatedNegative = errors.New("the allocated amount must not be negative")
	ErrInvalidPeriod     = errors.New("the period must be one of monthly, quarterly, yearly")
)

// Expense errors
var (
	ErrExpenseAmountNotPositive = errors.New("the expense amount must be positive")
	ErrInvalidExpenseStatus     = errors.New("the expense status must be one of pending, approved, rejected")
)

// Category errors
var (
	ErrCategoryNameNotUnique = errors.New("a category with this name already exists")
	ErrCategoryInUse         = errors.New("the category is still referenced by at least one budget, expense or sub-category")
	ErrCategoryColorInvalid  = errors.New("the color must be a hex color in the format #RGB or #RRGGBB")
	ErrCategoryParentSelf    = errors.New("a category cannot be its own parent")
	ErrCategoryParentMissing = errors.New("the parent category does not exist")
)

// Transaction errors
var (
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be positive")
	ErrInvalidTransactionType       = errors.New("the transaction type must be one of income, expense")
	ErrInvalidTransactionStatus     = errors.New("the transaction status must be one of completed, pending, failed")
)

// User errors
var (
	ErrEmailNotUnique = errors.New("a user with this email address already exists")
	ErrInvalidRole    = errors.New("the role must be one of admin, manager, user")
)
