package controllers

import (
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for Users with
// the RouterGroup that is passed. All routes require the admin role.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.Use(auth.RequireRole(models.RoleAdmin))

	// Root group
	{
		r.OPTIONS("", OptionsUserList)
		r.GET("", GetUsers)
		r.POST("", CreateUser)
	}

	// User with ID
	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
		r.PATCH("/:id", UpdateUser)
		r.PATCH("/:id/password", SetUserPassword)
		r.PATCH("/:id/deactivate", DeactivateUser)
		r.PATCH("/:id/reactivate", ReactivateUser)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	_, found := getResource[models.User](c)
	if !found {
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Create user
// @Description	Creates a new, active user
// @Tags			Users
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			user	body		UserCreate	true	"User"
// @Router			/users [post]
func CreateUser(c *gin.Context) {
	var data UserCreate
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         data.Role,
		Department:   data.Department,
		Permissions:  data.Permissions,
		IsActive:     true,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ok(newUser(user)))
}

// @Summary		List users
// @Description	Returns a paginated list of users, sorted by name
// @Tags			Users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/users [get]
// @Param			role		query	string	false	"Filter by role"
// @Param			department	query	string	false	"Filter by department"
// @Param			isActive	query	bool	false	"Filter by active state"
// @Param			search		query	string	false	"Search for this text in name and email"
// @Param			page		query	int		false	"Page number, starting at 1"
// @Param			limit		query	int		false	"Maximum number of users per page. Defaults to 50."
func GetUsers(c *gin.Context) {
	var filter UserQueryFilter
	err := bindQuery(c, &filter, &filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	// Get the fields that we're filtering for
	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC, email ASC").
		Where(filter.model(), queryFields...)

	q = searchFilter(models.DB, q, filter.Search, "name", "email")

	users, pagination, err := list[models.User](q, filter.PageQuery)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]User, 0, len(users))
	for _, u := range users {
		data = append(data, newUser(u))
	}

	c.JSON(http.StatusOK, UserListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/users/{id} [get]
func GetUser(c *gin.Context) {
	user, found := getResource[models.User](c)
	if !found {
		return
	}

	c.JSON(http.StatusOK, ok(newUser(user)))
}

// @Summary		Update user
// @Description	Update an existing user. Only values to be updated need to be specified.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	httperror.Error
// @Failure		403		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	body		UserEditable	true	"User"
// @Router			/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	user, found := getResource[models.User](c)
	if !found {
		return
	}

	var data UserEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	err := models.UpdateUser(models.DB, &user, updateFields, data.model())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(newUser(user)))
}

// @Summary		Set password
// @Description	Sets the password of a user. All tokens issued for the user before are revoked.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	MessageResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			id			path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			password	body		PasswordSet	true	"Password"
// @Router			/users/{id}/password [patch]
func SetUserPassword(c *gin.Context) {
	user, found := getResource[models.User](c)
	if !found {
		return
	}

	var data PasswordSet
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	err = models.SetPassword(models.DB, &user, hash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message("Password updated"))
}

// @Summary		Deactivate user
// @Description	Deactivates a user and revokes all tokens issued for them. Administrators cannot deactivate themselves.
// @Tags			Users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/users/{id}/deactivate [patch]
func DeactivateUser(c *gin.Context) {
	setActive(c, false)
}

// @Summary		Reactivate user
// @Description	Reactivates a user. Tokens issued before the deactivation stay revoked.
// @Tags			Users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	httperror.Error
// @Failure		403	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/users/{id}/reactivate [patch]
func ReactivateUser(c *gin.Context) {
	setActive(c, true)
}

func setActive(c *gin.Context, active bool) {
	current, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, found := getResource[models.User](c)
	if !found {
		return
	}

	if !active && user.ID == current.ID {
		respondError(c, errDeactivateSelf)
		return
	}

	err = models.SetActive(models.DB, &user, active)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(newUser(user)))
}
