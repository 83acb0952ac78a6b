package controllers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// list returns one page of the query and the pagination for it.
func list[M any](q *gorm.DB, page httputil.PageQuery) ([]M, httputil.Pagination, error) {
	// The query is used twice
	q = q.Session(&gorm.Session{})

	var total int64
	err := q.Model(new(M)).Count(&total).Error
	if err != nil {
		return nil, httputil.Pagination{}, err
	}

	resources := make([]M, 0)
	err = q.Offset(page.Offset()).Limit(page.Limit).Find(&resources).Error
	if err != nil {
		return nil, httputil.Pagination{}, err
	}

	return resources, httputil.NewPagination(page, total), nil
}

// bindQuery binds the query string into the filter and normalizes the pagination.
func bindQuery(c *gin.Context, filter any, page *httputil.PageQuery) error {
	err := c.ShouldBindQuery(filter)
	if err != nil {
		return httputil.ErrInvalidQueryString
	}

	return page.Normalize()
}

// searchFilter adds a case insensitive search for text in any of the columns.
func searchFilter(db, query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" {
		return query
	}

	pattern := containsPattern(search)
	condition := db.Where(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, columns[0]), pattern)
	for _, column := range columns[1:] {
		condition = condition.Or(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, column), pattern)
	}

	return query.Where(condition)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s literally anywhere in the column.
// It must be used with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// tagFilter restricts the query to resources whose tags contain the tag.
// Tags are stored as a JSON array, so the pattern matches the quoted element.
func tagFilter(query *gorm.DB, tag string) *gorm.DB {
	if tag == "" {
		return query
	}

	element, _ := json.Marshal(tag)
	return query.Where(`tags LIKE ? ESCAPE '\'`, containsPattern(string(element)))
}

// dateFilter restricts the column to the date range. The until date includes the whole day.
func dateFilter(query *gorm.DB, column string, r DateRange) *gorm.DB {
	if !r.FromDate.IsZero() {
		query = query.Where(fmt.Sprintf("%s >= ?", column), r.FromDate)
	}

	if !r.UntilDate.IsZero() {
		query = query.Where(fmt.Sprintf("%s < ?", column), r.UntilDate.AddDate(0, 0, 1))
	}

	return query
}

// setButEmpty reports if the query parameter for field was sent without a value.
func setButEmpty(setFields []string, field, value string) bool {
	return value == "" && slices.Contains(setFields, field)
}

// globFilter restricts the column to the values matching the glob pattern.
// Patterns without a wildcard match substrings. Matching is case insensitive.
func globFilter(db, query *gorm.DB, model any, column, pattern string) (*gorm.DB, error) {
	if pattern == "" {
		return query, nil
	}

	if !strings.Contains(pattern, "*") {
		pattern = "*" + pattern + "*"
	}
	pattern = strings.ToLower(pattern)

	var values []string
	err := db.Model(model).Distinct().Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0)
	for _, v := range values {
		if glob.Glob(pattern, strings.ToLower(v)) {
			matches = append(matches, v)
		}
	}

	return query.Where(fmt.Sprintf("%s IN ?", column), matches), nil
}
