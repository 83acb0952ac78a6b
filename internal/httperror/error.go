package httperror

import (
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// Error is the body of every failed request.
type Error struct {
	Success bool              `json:"success" example:"false"`                               // Always false for errors
	Message string            `json:"message" example:"the expense amount must be positive"` // Human readable error message
	Errors  map[string]string `json:"errors,omitempty"`                                      // Messages per invalid field, only set for validation errors
}

func New(e error) Error {
	fields := httputil.ValidationErrors(e)
	if fields != nil {
		return Error{Message: httputil.ErrValidation.Error(), Errors: fields}
	}

	return Error{Message: e.Error()}
}

// Abort writes the error with the status and stops the handler chain.
func Abort(c *gin.Context, status int, e error) {
	c.AbortWithStatusJSON(status, New(e))
}
