package controllers

import (
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type resource interface {
	models.Budget | models.Expense | models.Category | models.Transaction | models.User
}

// getResource loads the resource with the ID from the URI.
//
// If that fails, the error response is written and ok is false.
func getResource[R resource](c *gin.Context) (resource R, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, httputil.ErrInvalidUUID)
		return resource, false
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		respondError(c, err)
		return resource, false
	}

	return resource, true
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R resource](c *gin.Context) {
	_, ok := getResource[R](c)
	if !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// patchFields returns the fields set in the body and binds the body into data.
//
// If that fails, the error response is written and ok is false.
func patchFields(c *gin.Context, data any) (fields []any, ok bool) {
	fields, err := httputil.GetBodyFields(c, data)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	err = httputil.BindData(c, data)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	return fields, true
}
