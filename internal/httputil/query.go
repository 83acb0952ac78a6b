package httputil

import (
	"math"
	"net/url"
	"reflect"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type structField struct {
	name string
	tags reflect.StructTag
}

func (f structField) tag(key string) string {
	return f.tags.Get(key)
}

// fields lists the direct fields of a struct value or pointer.
func fields(resource any) []structField {
	val := reflect.Indirect(reflect.ValueOf(resource))
	out := make([]structField, 0, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		f := val.Type().Field(i)
		out = append(out, structField{name: f.Name, tags: f.Tag})
	}
	return out
}

// GetURLFields checks which query parameters are set and which query
// parameters are set and can be used directly in a gorm query
//
// queryFields contains all field names that can be used directly
// in a gorm Where statement as argument to specify the fields filtered on.
// As gorm uses interface{} as type for the Where statement, we cannot use
// a []string type here.
//
// setFields returns a []string with all field names set in the query parameters.
// This can be useful to filter for zero values without defining them as pointer
// fields in gorm.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	query := url.Query()
	for _, field := range fields(filter) {
		param := field.tag("form")
		if param == "" || !query.Has(param) {
			continue
		}

		setFields = append(setFields, field.name)

		// filterField:"false" marks fields that are processed by explicit logic
		// instead of being passed to gorm directly
		if field.tag("filterField") != "false" {
			queryFields = append(queryFields, field.name)
		}
	}
	return queryFields, setFields
}

// PageQuery are the pagination parameters of list endpoints.
type PageQuery struct {
	Page  int `form:"page" filterField:"false"`  // Page number, starting at 1
	Limit int `form:"limit" filterField:"false"` // Maximum number of resources per page. Defaults to 50, capped at 500
}

// Normalize applies defaults and bounds.
func (q *PageQuery) Normalize() error {
	if q.Page < 0 {
		return ErrInvalidPage
	}
	if q.Limit < 0 {
		return ErrInvalidLimit
	}

	if q.Page == 0 {
		q.Page = 1
	}

	if q.Limit == 0 {
		q.Limit = DefaultLimit
	} else if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	return nil
}

// Offset is the number of resources skipped before the current page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes the position of a page within a list.
type Pagination struct {
	Page  int   `json:"page" example:"2"`   // The current page
	Pages int   `json:"pages" example:"7"`  // The total number of pages
	Total int64 `json:"total" example:"13"` // The total number of resources matching the query
	Limit int   `json:"limit" example:"2"`  // The maximum number of resources per page
}

// NewPagination returns the pagination for a normalized query and the total resource count.
func NewPagination(q PageQuery, total int64) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}

	return Pagination{
		Page:  q.Page,
		Pages: pages,
		Total: total,
		Limit: q.Limit,
	}
}
