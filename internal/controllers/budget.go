package controllers

import (
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for Budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	write := auth.RequireRole(models.RoleAdmin, models.RoleManager)

	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", write, CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", write, UpdateBudget)
		r.DELETE("/:id", write, DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail[models.Budget](c)
}

// @Summary		Create budget
// @Description	Creates a new budget. Spent, remaining and status are derived by the server.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			budget	body		BudgetCreate	true	"Budget"
// @Router			/budgets [post]
func CreateBudget(c *gin.Context) {
	var data BudgetCreate
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	budget := data.model()
	err = models.DB.Create(&budget).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ok(budget.Ledger()))
}

// @Summary		List budgets
// @Description	Returns a paginated list of budgets
// @Tags			Budgets
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/budgets [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			period		query	string	false	"Filter by period"
// @Param			status		query	string	false	"Filter by status"
// @Param			search		query	string	false	"Search for this text in name and category"
// @Param			page		query	int		false	"Page number, starting at 1"
// @Param			limit		query	int		false	"Maximum number of budgets per page. Defaults to 50."
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	err := bindQuery(c, &filter, &filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	// Get the fields that we're filtering for
	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = searchFilter(models.DB, q, filter.Search, "name", "category")

	budgets, pagination, err := list[models.Budget](q, filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		data = append(data, b.Ledger())
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	budget, found := getResource[models.Budget](c)
	if !found {
		return
	}

	c.JSON(http.StatusOK, ok(budget.Ledger()))
}

// @Summary		Update budget
// @Description	Update an existing budget. Only name, category, allocated and period can be changed.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	budget, found := getResource[models.Budget](c)
	if !found {
		return
	}

	var data BudgetEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	err := models.UpdateBudget(models.DB, &budget, updateFields, data.model())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(budget.Ledger()))
}

// @Summary		Delete budget
// @Description	Deletes a budget. Expenses linked to it keep their reference.
// @Tags			Budgets
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	budget, found := getResource[models.Budget](c)
	if !found {
		return
	}

	err := models.DB.Delete(&budget).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message("Budget deleted"))
}
