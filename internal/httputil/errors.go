package httputil

import "errors"

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
	ErrInvalidPage        = errors.New("the page must be a positive integer")
	ErrInvalidLimit       = errors.New("the limit must be a positive integer")
	ErrValidation         = errors.New("one or more fields of your request are invalid")
)
