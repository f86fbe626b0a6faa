// Package errorhandler writes handler errors as API errors.
package errorhandler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/livingaura/aura/http/api"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is a general handler for echo handler errors. All errors
// are written as api.Error. HEAD requests only get the status code.
func HTTPErrorHandler(err error, c echo.Context) {
	var code int
	var details []string
	var message string

	var apierr api.Error
	var he *echo.HTTPError

	if errors.As(err, &apierr) {
		code = apierr.Code
		message = apierr.Message
		details = apierr.Details
	} else if errors.As(err, &he) {
		if herr, ok := he.Internal.(*echo.HTTPError); ok {
			he = herr
		}

		code = he.Code
		message = http.StatusText(he.Code)
		details = strings.Split(fmt.Sprintf("%v", he.Message), "\n")
	} else {
		code = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
		details = strings.Split(err.Error(), "\n")
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, api.Error{
		Code:    code,
		Message: message,
		Details: details,
	})
}
