package models_test

import (
	"sync"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var approver = ledger.Actor{Name: "Mona Manager", Email: "mona@example.com"}

func (suite *TestSuiteStandard) TestExpenseDefaults() {
	e := suite.createTestExpense(models.Expense{
		Description: "  Printer paper ",
		Tags:        []string{"office", " supplies", "office"},
	})

	suite.Assert().Equal("Printer paper", e.Description)
	suite.Assert().Equal(ledger.ExpensePending, e.Status)
	suite.Assert().False(e.Date.IsZero())

	var stored models.Expense
	suite.Require().Nil(models.DB.First(&stored, e.ID).Error)
	suite.Assert().Equal([]string{"office", "supplies"}, []string(stored.Tags))
}

func (suite *TestSuiteStandard) TestExpenseValidation() {
	tests := []struct {
		name    string
		expense models.Expense
		err     error
	}{
		{"Zero amount", models.Expense{Amount: decimal.Zero}, models.ErrExpenseAmountNotPositive},
		{"Negative amount", models.Expense{Amount: decimal.NewFromInt(-5)}, models.ErrExpenseAmountNotPositive},
		{"Invalid status", models.Expense{Amount: decimal.NewFromInt(5), Status: "paid"}, models.ErrInvalidExpenseStatus},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.CreateExpense(models.DB, &tt.expense)
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateApprovedExpenseRecalculates() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	suite.assertBudget(b.ID, 0, 1000, "on-track")

	suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(800), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.assertBudget(b.ID, 800, 200, "warning")

	// Pending expenses do not count
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(150), BudgetID: &b.ID})
	suite.assertBudget(b.ID, 800, 200, "warning")
}

func (suite *TestSuiteStandard) TestApproveReject() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(500), BudgetID: &b.ID})

	suite.Require().Nil(models.ApproveExpense(models.DB, &e, approver))
	suite.Assert().Equal(ledger.ExpenseApproved, e.Status)
	suite.Assert().Equal("Mona Manager", e.ApprovedBy)
	suite.assertBudget(b.ID, 500, 500, "on-track")

	suite.Require().Nil(models.RejectExpense(models.DB, &e, ledger.Actor{Email: "other@example.com"}))
	suite.Assert().Equal(ledger.ExpenseRejected, e.Status)
	suite.Assert().Equal("other@example.com", e.ApprovedBy)
	suite.assertBudget(b.ID, 0, 1000, "on-track")

	// Re-transition back to approved
	suite.Require().Nil(models.ApproveExpense(models.DB, &e, approver))
	suite.assertBudget(b.ID, 500, 500, "on-track")
}

func (suite *TestSuiteStandard) TestApproveRecalculatesStaleBudget() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(900), BudgetID: &b.ID, Status: ledger.ExpenseApproved})

	// Corrupt the derived fields, a repeated approval must correct them
	suite.Require().Nil(models.DB.Model(&b).Select("Spent", "Remaining").Updates(models.Budget{Spent: decimal.Zero, Remaining: decimal.NewFromInt(1000)}).Error)

	suite.Require().Nil(models.ApproveExpense(models.DB, &e, approver))
	suite.assertBudget(b.ID, 900, 100, "over-budget")
}

func (suite *TestSuiteStandard) TestUpdateExpenseReassign() {
	b1 := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	b2 := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(400)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(300), BudgetID: &b1.ID, Status: ledger.ExpenseApproved})
	suite.assertBudget(b1.ID, 300, 700, "on-track")

	err := models.UpdateExpense(models.DB, &e, []any{"BudgetID"}, models.Expense{BudgetID: &b2.ID}, approver)
	suite.Require().Nil(err)
	suite.Assert().Equal(b2.ID, *e.BudgetID)

	suite.assertBudget(b1.ID, 0, 1000, "on-track")
	suite.assertBudget(b2.ID, 300, 100, "warning")

	// Unlinking backs the amount out
	nilID := uuid.Nil
	err = models.UpdateExpense(models.DB, &e, []any{"BudgetID"}, models.Expense{BudgetID: &nilID}, approver)
	suite.Require().Nil(err)
	suite.Assert().Nil(e.BudgetID)
	suite.assertBudget(b2.ID, 0, 400, "on-track")
}

func (suite *TestSuiteStandard) TestUpdateExpenseUnlinkBacksOut() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(400)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(300), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.assertBudget(b.ID, 300, 100, "warning")

	nilID := uuid.Nil
	err := models.UpdateExpense(models.DB, &e, []any{"BudgetID"}, models.Expense{BudgetID: &nilID}, approver)
	suite.Require().Nil(err)
	suite.Assert().Nil(e.BudgetID, "the returned expense must not keep the old budget")

	var stored models.Expense
	suite.Require().Nil(models.DB.First(&stored, e.ID).Error)
	suite.Assert().Nil(stored.BudgetID)

	suite.assertBudget(b.ID, 0, 400, "on-track")
}

func (suite *TestSuiteStandard) TestUpdateExpenseStatusAndAmount() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(100), BudgetID: &b.ID})

	err := models.UpdateExpense(models.DB, &e, []any{"Status"}, models.Expense{Status: ledger.ExpenseApproved}, approver)
	suite.Require().Nil(err)
	suite.Assert().Equal("Mona Manager", e.ApprovedBy)
	suite.assertBudget(b.ID, 100, 900, "on-track")

	err = models.UpdateExpense(models.DB, &e, []any{"Amount"}, models.Expense{Amount: decimal.NewFromInt(800)}, approver)
	suite.Require().Nil(err)
	suite.assertBudget(b.ID, 800, 200, "warning")

	// Invalid updates are rolled back and do not touch the budget
	err = models.UpdateExpense(models.DB, &e, []any{"Amount"}, models.Expense{Amount: decimal.NewFromInt(-1)}, approver)
	suite.Assert().ErrorIs(err, models.ErrExpenseAmountNotPositive)
	suite.assertBudget(b.ID, 800, 200, "warning")

	err = models.UpdateExpense(models.DB, &e, []any{"Status"}, models.Expense{Status: "paid"}, approver)
	suite.Assert().ErrorIs(err, models.ErrInvalidExpenseStatus)
}

func (suite *TestSuiteStandard) TestDeleteApprovedExpense() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})
	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(850), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(100), BudgetID: &b.ID, Status: ledger.ExpenseApproved})
	suite.assertBudget(b.ID, 950, 50, "over-budget")

	suite.Require().Nil(models.DeleteExpense(models.DB, &e))
	suite.assertBudget(b.ID, 100, 900, "on-track")
}

func (suite *TestSuiteStandard) TestDanglingBudgetReference() {
	missing := uuid.New()

	e := suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(50), BudgetID: &missing})

	suite.Assert().Nil(models.ApproveExpense(models.DB, &e, approver), "a missing budget must not fail the approval")
	suite.Assert().Nil(models.RecalculateBudget(models.DB, missing))
	suite.Assert().Nil(models.DeleteExpense(models.DB, &e))
}

func (suite *TestSuiteStandard) TestUnlinkedExpenseNotCounted() {
	b := suite.createTestBudget(models.Budget{Category: "Travel", Allocated: decimal.NewFromInt(1000)})
	suite.createTestExpense(models.Expense{Category: "Travel", Amount: decimal.NewFromInt(600), Status: ledger.ExpenseApproved})

	suite.Require().Nil(models.RecalculateBudget(models.DB, b.ID))
	suite.assertBudget(b.ID, 0, 1000, "on-track")
}

func (suite *TestSuiteStandard) TestConcurrentApprovals() {
	b := suite.createTestBudget(models.Budget{Allocated: decimal.NewFromInt(1000)})

	expenses := make([]models.Expense, 20)
	for i := range expenses {
		expenses[i] = suite.createTestExpense(models.Expense{Amount: decimal.NewFromInt(50), BudgetID: &b.ID})
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(expenses))
	for i := range expenses {
		wg.Add(1)
		go func(e models.Expense) {
			defer wg.Done()
			errs <- models.ApproveExpense(models.DB, &e, approver)
		}(expenses[i])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Assert().Nil(err)
	}

	suite.assertBudget(b.ID, 1000, 0, "over-budget")
}

func (suite *TestSuiteStandard) TestExpenseDBClosed() {
	e := suite.createTestExpense(models.Expense{})
	suite.CloseDB()

	err := models.ApproveExpense(models.DB, &e, approver)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
