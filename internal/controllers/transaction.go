package controllers

import (
	"net/http"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for Transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail[models.Transaction](c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			transaction	body		TransactionCreate	true	"Transaction"
// @Router			/transactions [post]
func CreateTransaction(c *gin.Context) {
	var data TransactionCreate
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	transaction := data.model()
	err = models.DB.Create(&transaction).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ok(transaction.Ledger()))
}

// @Summary		List transactions
// @Description	Returns a paginated list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/transactions [get]
// @Param			type		query	string	false	"Filter by type"
// @Param			status		query	string	false	"Filter by status"
// @Param			category	query	string	false	"Filter by category"
// @Param			account		query	string	false	"Filter by account"
// @Param			search		query	string	false	"Search for this text in description and reference"
// @Param			fromDate	query	string	false	"Transactions on or after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Transactions on or before this date, YYYY-MM-DD"
// @Param			page		query	int		false	"Page number, starting at 1"
// @Param			limit		query	int		false	"Maximum number of transactions per page. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
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
	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(filter.model(), queryFields...)

	q = dateFilter(q, "date", filter.DateRange)
	q = searchFilter(models.DB, q, filter.Search, "description", "reference")

	transactions, pagination, err := list[models.Transaction](q, filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, t.Ledger())
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, found := getResource[models.Transaction](c)
	if !found {
		return
	}

	c.JSON(http.StatusOK, ok(transaction.Ledger()))
}

// @Summary		Update transaction
// @Description	Update an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, found := getResource[models.Transaction](c)
	if !found {
		return
	}

	var data TransactionEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	err := models.UpdateTransaction(models.DB, &transaction, updateFields, data.model())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(transaction.Ledger()))
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, found := getResource[models.Transaction](c)
	if !found {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message("Transaction deleted"))
}
