package models

import (
	"github.com/budgetwise/backend/internal/ledger"
	"gorm.io/gorm"
)

// LoadBook reads all budgets, expenses, categories and transactions into a ledger.Book.
func LoadBook(db *gorm.DB) (ledger.Book, error) {
	var (
		budgets      []Budget
		expenses     []Expense
		categories   []Category
		transactions []Transaction
	)

	if err := db.Order("created_at ASC").Find(&budgets).Error; err != nil {
		return ledger.Book{}, err
	}

	if err := db.Order("date ASC").Find(&expenses).Error; err != nil {
		return ledger.Book{}, err
	}

	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return ledger.Book{}, err
	}

	if err := db.Order("date ASC").Find(&transactions).Error; err != nil {
		return ledger.Book{}, err
	}

	book := ledger.Book{
		Budgets:      make([]ledger.Budget, 0, len(budgets)),
		Expenses:     make([]ledger.Expense, 0, len(expenses)),
		Categories:   make([]ledger.Category, 0, len(categories)),
		Transactions: make([]ledger.Transaction, 0, len(transactions)),
	}

	for _, b := range budgets {
		book.Budgets = append(book.Budgets, b.Ledger())
	}

	for _, e := range expenses {
		book.Expenses = append(book.Expenses, e.Ledger())
	}

	for _, c := range categories {
		book.Categories = append(book.Categories, c.Ledger())
	}

	for _, t := range transactions {
		book.Transactions = append(book.Transactions, t.Ledger())
	}

	return book, nil
}
