package controllers

import (
	"errors"
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
//
// Registration and login are public, all other routes need a token.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.POST("/register", Register)
	r.POST("/login", Login)

	authenticated := r.Group("", auth.Middleware())
	{
		authenticated.GET("/profile", GetProfile)
		authenticated.PATCH("/profile", UpdateProfile)
		authenticated.PATCH("/change-password", ChangePassword)
	}
}

// session issues a token for the user and writes the response.
func session(c *gin.Context, status int, user models.User) {
	token, expiresAt, err := auth.Issue(user)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		respondError(c, models.ErrGeneral)
		return
	}

	c.JSON(status, ok(Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      newUser(user),
	}))
}

// @Summary		Register
// @Description	Creates a new account with the user role and logs it in.
// @Description	Administrators and managers are created by administrators or with the adduser command.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201				{object}	SessionResponse
// @Failure		400				{object}	httperror.Error
// @Failure		500				{object}	httperror.Error
// @Param			registration	body		Registration	true	"Account"
// @Router			/auth/register [post]
func Register(c *gin.Context) {
	var data Registration
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
		Role:         models.RoleUser,
		Department:   data.Department,
		IsActive:     true,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		respondError(c, err)
		return
	}

	session(c, http.StatusCreated, user)
}

// @Summary		Login
// @Description	Returns a bearer token for the account
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/auth/login [post]
func Login(c *gin.Context) {
	var data Credentials
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", models.NormalizeEmail(data.Email)).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		respondError(c, errInvalidCredentials)
		return
	} else if err != nil {
		respondError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, data.Password) {
		respondError(c, errInvalidCredentials)
		return
	}

	if !user.IsActive {
		respondError(c, auth.ErrUserInactive)
		return
	}

	err = models.TouchLogin(models.DB, &user)
	if err != nil {
		respondError(c, err)
		return
	}

	session(c, http.StatusOK, user)
}

// @Summary		Get profile
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ProfileResponse
// @Failure		401	{object}	httperror.Error
// @Router			/auth/profile [get]
func GetProfile(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(newUser(user)))
}

// @Summary		Update profile
// @Description	Updates name, email and department of the authenticated user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/auth/profile [patch]
func UpdateProfile(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var data ProfileEditable
	updateFields, valid := patchFields(c, &data)
	if !valid {
		return
	}

	err = models.UpdateUser(models.DB, &user, updateFields, models.User{
		Name:       data.Name,
		Email:      data.Email,
		Department: data.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(newUser(user)))
}

// @Summary		Change password
// @Description	Changes the password of the authenticated user. All tokens issued before are revoked, a new one is returned.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			password	body		PasswordChange	true	"Passwords"
// @Router			/auth/change-password [patch]
func ChangePassword(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var data PasswordChange
	err = httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, data.CurrentPassword) {
		respondError(c, errWrongPassword)
		return
	}

	hash, err := auth.HashPassword(data.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	err = models.SetPassword(models.DB, &user, hash)
	if err != nil {
		respondError(c, err)
		return
	}

	session(c, http.StatusOK, user)
}
