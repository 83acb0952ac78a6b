package controllers

import (
	"net/http"
	"time"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/gin-gonic/gin"
)

const defaultRecentLimit = 10

// RecentQuery limits the number of resources returned by the dashboard lists.
type RecentQuery struct {
	Limit int `form:"limit"` // Number of resources, between 1 and 100. Defaults to 10
}

func (q *RecentQuery) normalize() error {
	if q.Limit == 0 {
		q.Limit = defaultRecentLimit
	}

	if q.Limit < 1 || q.Limit > 100 {
		return errInvalidRecentLimit
	}

	return nil
}

// CashFlowQuery selects the month for the cash flow summary.
type CashFlowQuery struct {
	Month types.Month `form:"month"` // Year and month in YYYY-MM format. Defaults to the current month
}

// CashFlow is the cash flow summary for one month.
type CashFlow struct {
	Month types.Month `json:"month" swaggertype:"string" example:"2024-05"`
	ledger.CashFlowSummary
}

type (
	MetricsResponse      = Response[ledger.DashboardMetrics]
	AlertsResponse       = Response[[]ledger.Alert]
	BudgetHealthResponse = Response[[]ledger.BudgetHealth]
	CashFlowResponse     = Response[CashFlow]
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("/metrics", GetMetrics)
	r.GET("/alerts", GetAlerts)
	r.GET("/recent-transactions", GetRecentTransactions)
	r.GET("/pending-expenses", GetPendingExpenses)
	r.GET("/budget-health", GetBudgetHealth)
	r.GET("/cash-flow", GetCashFlow)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Dashboard metrics
// @Description	Returns the portfolio totals, the burn rate over the last 30 days, the growth against the 30 days before and the spending per active category
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MetricsResponse
// @Failure		500	{object}	httperror.Error
// @Router			/dashboard/metrics [get]
func GetMetrics(c *gin.Context) {
	book, err := models.LoadBook(models.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(book.Metrics(time.Now().UTC())))
}

// @Summary		Budget alerts
// @Description	Returns an alert for every budget that is in warning or over budget
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	AlertsResponse
// @Failure		500	{object}	httperror.Error
// @Router			/dashboard/alerts [get]
func GetAlerts(c *gin.Context) {
	var budgets []models.Budget
	err := models.DB.Order("name ASC").Find(&budgets).Error
	if err != nil {
		respondError(c, err)
		return
	}

	ledgerBudgets := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		ledgerBudgets = append(ledgerBudgets, b.Ledger())
	}

	c.JSON(http.StatusOK, ok(ledger.Alerts(ledgerBudgets)))
}

// @Summary		Recent transactions
// @Description	Returns the most recent transactions
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	Response[[]ledger.Transaction]
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			limit	query		int	false	"Number of transactions, between 1 and 100. Defaults to 10."
// @Router			/dashboard/recent-transactions [get]
func GetRecentTransactions(c *gin.Context) {
	limit, valid := recentLimit(c)
	if !valid {
		return
	}

	var transactions []models.Transaction
	err := models.DB.Order("date DESC, created_at DESC").Limit(limit).Find(&transactions).Error
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, t.Ledger())
	}

	c.JSON(http.StatusOK, ok(data))
}

// @Summary		Pending expenses
// @Description	Returns the oldest expenses that are waiting for approval
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	Response[[]ledger.Expense]
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			limit	query		int	false	"Number of expenses, between 1 and 100. Defaults to 10."
// @Router			/dashboard/pending-expenses [get]
func GetPendingExpenses(c *gin.Context) {
	limit, valid := recentLimit(c)
	if !valid {
		return
	}

	var expenses []models.Expense
	err := models.DB.
		Where(&models.Expense{Status: ledger.ExpensePending}).
		Order("date ASC, created_at ASC").
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Expense, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, e.Ledger())
	}

	c.JSON(http.StatusOK, ok(data))
}

func recentLimit(c *gin.Context) (int, bool) {
	var query RecentQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		respondError(c, httputil.ErrInvalidQueryString)
		return 0, false
	}

	err = query.normalize()
	if err != nil {
		respondError(c, err)
		return 0, false
	}

	return query.Limit, true
}

// @Summary		Budget health
// @Description	Returns the display view of every budget. Approved expenses without a budget count towards
// @Description	the budgets of their category in displaySpent, but never in spent or status.
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BudgetHealthResponse
// @Failure		500	{object}	httperror.Error
// @Router			/dashboard/budget-health [get]
func GetBudgetHealth(c *gin.Context) {
	book, err := models.LoadBook(models.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(ledger.Health(book.Budgets, book.Expenses)))
}

// @Summary		Cash flow
// @Description	Sums the completed income and expense transactions of a month
// @Tags			Dashboard
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	CashFlowResponse
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			month	query		string	false	"Year and month in YYYY-MM format. Defaults to the current month."
// @Router			/dashboard/cash-flow [get]
func GetCashFlow(c *gin.Context) {
	var query CashFlowQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		respondError(c, httputil.ErrInvalidQueryString)
		return
	}

	if query.Month.IsZero() {
		query.Month = types.MonthOf(time.Now())
	}

	var transactions []models.Transaction
	err = models.DB.
		Where("date >= ? AND date <= ?", query.Month.Start(), query.Month.End()).
		Find(&transactions).Error
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, t.Ledger())
	}

	c.JSON(http.StatusOK, ok(CashFlow{
		Month:           query.Month,
		CashFlowSummary: ledger.CashFlow(data, query.Month.Start(), query.Month.End()),
	}))
}
