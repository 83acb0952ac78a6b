package controllers

import (
	"errors"
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httperror"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidCredentials = errors.New("the email address or password is incorrect")
	errWrongPassword      = errors.New("the current password is incorrect")
	errDeactivateSelf     = errors.New("you cannot deactivate your own account")
	errStatusChangeDenied = errors.New("you are not allowed to change the status of expenses")
	errInvalidDateRange   = errors.New("fromDate must not be after untilDate")
	errInvalidRecentLimit = errors.New("the limit query parameter must be between 1 and 100")
)

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrForbidden) || errors.Is(err, errStatusChangeDenied) {
		return http.StatusForbidden
	}

	if errors.Is(err, errInvalidCredentials) || errors.Is(err, auth.ErrUnauthenticated) || errors.Is(err, auth.ErrUserInactive) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// respondError writes the error response for err.
func respondError(c *gin.Context, err error) {
	s := status(err)
	if s == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.JSON(s, httperror.New(err))
}
