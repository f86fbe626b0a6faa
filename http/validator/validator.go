// Package validator implements the echo.Validator with go-playground/validator.
package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/livingaura/aura/http/api"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type structValidator struct {
	validator *validator.Validate
}

// New returns a new Validator for the echo webserver framework. Failed
// validations are returned as api.Error with one detail line per field.
func New() echo.Validator {
	v := &structValidator{
		validator: validator.New(),
	}

	v.validator.RegisterTagNameFunc(fieldName)

	return v
}

func (cv *structValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := []string{}

	for _, ferr := range verrs {
		details = append(details, describe(ferr))
	}

	return api.Err(http.StatusBadRequest, "Invalid request", "%s", strings.Join(details, "\n"))
}

func describe(ferr validator.FieldError) string {
	switch ferr.Tag() {
	case "required":
		return fmt.Sprintf("%s: a value is required", ferr.Field())
	case "min":
		return fmt.Sprintf("%s: must be at least %s", ferr.Field(), ferr.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", ferr.Field(), ferr.Param())
	}

	return fmt.Sprintf("%s: failed on '%s'", ferr.Field(), ferr.Tag())
}

// fieldName uses the name of the query or JSON parameter for messages.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}

		if len(name) != 0 {
			return name
		}
	}

	return field.Name
}
