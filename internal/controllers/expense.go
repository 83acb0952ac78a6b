package controllers

import (
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterExpenseRoutes registers the routes for Expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
		r.PATCH("/:id/approve", auth.RequireApprover(), ApproveExpense)
		r.PATCH("/:id/reject", auth.RequireApprover(), RejectExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	resourceOptionsDetail[models.Expense](c)
}

// @Summary		Create expense
// @Description	Creates a new expense. Expenses created as approved immediately debit their budget.
// @Description	Only users who may approve expenses can create them with a status other than pending.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			expense	body		ExpenseCreate	true	"Expense"
// @Router			/expenses [post]
func CreateExpense(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var data ExpenseCreate
	err = httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	expense := data.model()
	if expense.Status != "" && expense.Status != ledger.ExpensePending {
		if !user.CanApprove() {
			respondError(c, errStatusChangeDenied)
			return
		}

		transitioned, err := ledger.Transition(expense.Ledger(), expense.Status, user.Actor())
		if err != nil {
			respondError(c, models.ErrInvalidExpenseStatus)
			return
		}
		expense.ApprovedBy = transitioned.ApprovedBy
	}

	err = models.CreateExpense(models.DB, &expense)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ok(expense.Ledger()))
}

// @Summary		List expenses
// @Description	Returns a paginated list of expenses, newest first
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/expenses [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			status		query	string	false	"Filter by status"
// @Param			department	query	string	false	"Filter by department"
// @Param			budget		query	string	false	"Filter by budget ID"
// @Param			vendor		query	string	false	"Filter by vendor glob pattern"
// @Param			tag			query	string	false	"Filter by tag"
// @Param			search		query	string	false	"Search for this text in description and vendor"
// @Param			fromDate	query	string	false	"Expenses on or after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Expenses on or before this date, YYYY-MM-DD"
// @Param			page		query	int		false	"Page number, starting at 1"
// @Param			limit		query	int		false	"Maximum number of expenses per page. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	err := bindQuery(c, &filter, &filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	err = filter.DateRange.valid()
	if err != nil {
		respondError(c, err)
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Newest first
	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(filter.model(), queryFields...)

	if setButEmpty(setFields, "BudgetID", filter.BudgetID) {
		q = q.Where("budget_id IS NULL")
	} else if slices.Contains(setFields, "BudgetID") {
		id, err := uuid.Parse(filter.BudgetID)
		if err != nil {
			respondError(c, httputil.ErrInvalidUUID)
			return
		}
		q = q.Where("budget_id = ?", id)
	}

	q = tagFilter(q, filter.Tag)
	q = dateFilter(q, "date", filter.DateRange)
	q = searchFilter(models.DB, q, filter.Search, "description", "vendor")

	q, err = globFilter(models.DB, q, &models.Expense{}, "vendor", filter.Vendor)
	if err != nil {
		respondError(c, err)
		return
	}

	expenses, pagination, err := list[models.Expense](q, filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Expense, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, e.Ledger())
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	expense, found := getResource[models.Expense](c)
	if !found {
		return
	}

	c.JSON(http.StatusOK, ok(expense.Ledger()))
}

// @Summary		Update expense
// @Description	Update an existing expense. Only values to be updated need to be specified.
// @Description	Changing the status requires the permission to approve expenses.
// @Description	The budgets the expense was and is linked to are recalculated.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	expense, found := getResource[models.Expense](c)
	if !found {
		return
	}

	var data ExpenseEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	if slices.Contains(updateFields, any("Status")) && data.Status != expense.Status && !user.CanApprove() {
		respondError(c, errStatusChangeDenied)
		return
	}

	err = models.UpdateExpense(models.DB, &expense, updateFields, data.model(), user.Actor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(expense.Ledger()))
}

// @Summary		Approve expense
// @Description	Approves an expense and recalculates its budget
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/expenses/{id}/approve [patch]
func ApproveExpense(c *gin.Context) {
	transitionExpense(c, models.ApproveExpense)
}

// @Summary		Reject expense
// @Description	Rejects an expense and recalculates its budget
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/expenses/{id}/reject [patch]
func RejectExpense(c *gin.Context) {
	transitionExpense(c, models.RejectExpense)
}

func transitionExpense(c *gin.Context, transition func(*gorm.DB, *models.Expense, ledger.Actor) error) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	expense, found := getResource[models.Expense](c)
	if !found {
		return
	}

	err = transition(models.DB, &expense, user.Actor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(expense.Ledger()))
}

// @Summary		Delete expense
// @Description	Deletes an expense. If it was approved, its amount is backed out of its budget.
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, found := getResource[models.Expense](c)
	if !found {
		return
	}

	err := models.DeleteExpense(models.DB, &expense)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message("Expense deleted"))
}
