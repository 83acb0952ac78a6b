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
)

// RegisterCategoryRoutes registers the routes for Categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	write := auth.RequireRole(models.RoleAdmin, models.RoleManager)

	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", write, CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", write, UpdateCategory)
		r.DELETE("/:id", write, DeleteCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail[models.Category](c)
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			category	body		CategoryCreate	true	"Category"
// @Router			/categories [post]
func CreateCategory(c *gin.Context) {
	var data CategoryCreate
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	category := data.model()
	err = models.DB.Create(&category).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ok(category.Ledger()))
}

// @Summary		List categories
// @Description	Returns a paginated list of categories, sorted by name
// @Tags			Categories
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/categories [get]
// @Param			isActive	query	bool	false	"Filter by active state"
// @Param			parent		query	string	false	"Filter by parent category ID"
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			page		query	int		false	"Page number, starting at 1"
// @Param			limit		query	int		false	"Maximum number of categories per page. Defaults to 50."
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	err := bindQuery(c, &filter, &filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	if setButEmpty(setFields, "ParentID", filter.ParentID) {
		q = q.Where("parent_id IS NULL")
	} else if slices.Contains(setFields, "ParentID") {
		id, err := uuid.Parse(filter.ParentID)
		if err != nil {
			respondError(c, httputil.ErrInvalidUUID)
			return
		}
		q = q.Where("parent_id = ?", id)
	}

	q = searchFilter(models.DB, q, filter.Search, "name", "description")

	categories, pagination, err := list[models.Category](q, filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]ledger.Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, category.Ledger())
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/categories/{id} [get]
func GetCategory(c *gin.Context) {
	category, found := getResource[models.Category](c)
	if !found {
		return
	}

	c.JSON(http.StatusOK, ok(category.Ledger()))
}

// @Summary		Update category
// @Description	Update an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	category, found := getResource[models.Category](c)
	if !found {
		return
	}

	var data CategoryEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	err := models.UpdateCategory(models.DB, &category, updateFields, data.model())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(category.Ledger()))
}

// @Summary		Delete category
// @Description	Deletes a category. Categories still used by a budget, an expense or a sub-category cannot be deleted.
// @Tags			Categories
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	category, found := getResource[models.Category](c)
	if !found {
		return
	}

	err := models.DeleteCategory(models.DB, &category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message("Category deleted"))
}
