package models_test

import (
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetCreateDerivesFields() {
	b := suite.createTestBudget(models.Budget{
		Name:      " Marketing ",
		Allocated: decimal.NewFromInt(5000),
		Spent:     decimal.NewFromInt(4000),
		Status:    ledger.StatusOverBudget,
	})

	suite.Assert().Equal("Marketing", b.Name)
	suite.Assert().Equal(ledger.PeriodMonthly, b.Period)
	suite.assertBudget(b.ID, 0, 5000, "on-track")
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{"Negative allocation", models.Budget{Name: "a", Allocated: decimal.NewFromInt(-1)}, models.ErrAllocatedNegative},
		{"Invalid period", models.Budget{Name: "b", Period: "weekly"}, models.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.budget).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(700), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.assertBudget(b.ID, 700, 300, "on-track")

	// Lowering the allocation changes remaining and status
	err := models.UpdateBudget(models.DB, &b, []any{"Allocated", "Name"}, models.Budget{Allocated: decimal.NewFromInt(800), Name: " Renamed "})
	suite.Require().Nil(err)
	suite.Assert().Equal("Renamed", b.Name)
	suite.assertBudget(b.ID, 700, 100, "warning")

	// Derived fields are never written from a patch
	err = models.UpdateBudget(models.DB, &b, []any{"Spent", "Remaining", "Status"}, models.Budget{
		Spent:     decimal.NewFromInt(1),
		Remaining: decimal.NewFromInt(1),
		Status:    ledger.StatusOnTrack,
	})
	suite.Require().Nil(err)
	suite.assertBudget(b.ID, 700, 100, "warning")

	err = models.UpdateBudget(models.DB, &b, []any{"Period"}, models.Budget{Period: "daily"})
	suite.Assert().ErrorIs(err, models.ErrInvalidPeriod)
}

func (suite *TestSuiteStandard) TestBudgetDBClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.Budget{Name: "Closed"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestBudgetNotFound() {
	var b models.Budget
	err := models.DB.First(&b, "id = ?", "d5b7c1f0-0000-4000-8000-000000000000").Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no budget matching your query")
}

func (suite *TestSuiteStandard) TestLoadBook() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(100)})
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(80), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.createTestCategory(models.Category{Name: "Office", IsActive: true})
	suite.Require().Nil(models.DB.Create(&models.Transaction{Type: ledger.TransactionIncome, Amount: decimal.NewFromInt(5)}).Error)

	book, err := models.LoadBook(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Len(book.Budgets, 1)
	suite.Assert().Len(book.Expenses, 1)
	suite.Assert().Len(book.Categories, 1)
	suite.Assert().Len(book.Transactions, 1)
	suite.Assert().Equal(ledger.StatusWarning, book.Budgets[0].Status)
}
