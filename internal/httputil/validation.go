package httputil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var jsonFieldNames sync.Once

// UseJSONFieldNames makes validation errors report the JSON name of a field
// instead of the struct field name.
func UseJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

func isValidationError(err error) bool {
	var v validator.ValidationErrors
	return errors.As(err, &v)
}

// ValidationErrors returns one message per invalid field, keyed by field name.
// It returns nil if err is not a validation error.
func ValidationErrors(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	list := make(map[string]string, len(errs))
	for _, e := range errs {
		list[e.Field()] = ValidationErrorToText(e)
	}
	return list
}

// ValidationErrorToText returns a human readable message for a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be greater than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #1A2B3C", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
