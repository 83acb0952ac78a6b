package controllers

import (
	"time"

	"github.com/budgetwise/backend/internal/httputil"
	iuuid "github.com/budgetwise/backend/internal/uuid"
)

type URIID struct {
	ID iuuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// DateRange filters resources by their date. Both bounds are inclusive.
type DateRange struct {
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"` // Only resources on or after this date
	// Only resources on or before this date
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"`
}

func (r DateRange) valid() error {
	if !r.FromDate.IsZero() && !r.UntilDate.IsZero() && r.FromDate.After(r.UntilDate) {
		return errInvalidDateRange
	}
	return nil
}

// MessageResponse is returned by endpoints that do not return a resource.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Budget deleted"`
}

// ListResponse is the envelope of all list endpoints.
type ListResponse[T any] struct {
	Success    bool                `json:"success" example:"true"`
	Data       []T                 `json:"data"`
	Pagination httputil.Pagination `json:"pagination"`
}

// Response is the envelope of all endpoints returning a single resource.
type Response[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

func ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func message(msg string) MessageResponse {
	return MessageResponse{Success: true, Message: msg}
}
