// Package bodysize is an echo middleware that sets the response size to the
// number of body bytes sent on the wire, i.e. after compression.
package bodysize

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Config struct {
	Skipper middleware.Skipper
}

var DefaultConfig = Config{
	Skipper: middleware.DefaultSkipper,
}

func New() echo.MiddlewareFunc {
	return NewWithConfig(DefaultConfig)
}

func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			res := c.Response()

			writer := res.Writer
			w := &countingWriter{
				ResponseWriter: writer,
			}
			res.Writer = w

			err := next(c)

			res.Writer = writer

			// Errors are written by the error handler to the original
			// writer, which counts itself.
			if err == nil {
				res.Size = w.size
			}

			return err
		}
	}
}

type countingWriter struct {
	http.ResponseWriter

	size int64
}

func (w *countingWriter) Write(body []byte) (int, error) {
	n, err := w.ResponseWriter.Write(body)

	w.size += int64(n)

	return n, err
}

func (w *countingWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *countingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
