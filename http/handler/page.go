package handler

import (
	"net/http"
	"os"
	"strconv"

	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/log"

	"github.com/labstack/echo/v4"
)

// FallbackPage is the body of the page if the page file doesn't exist.
const FallbackPage = "Living Aura App is Running! Frontend file not found."

// The PageHandler type provides a handler for the status page
type PageHandler struct {
	path   string
	logger log.Logger
}

// NewPage returns a new Page type. The file at path is read on every
// request. An empty path always serves the fallback page.
func NewPage(path string, logger log.Logger) *PageHandler {
	p := &PageHandler{
		path:   path,
		logger: logger,
	}

	if p.logger == nil {
		p.logger = log.New("")
	}

	return p
}

// Page returns the status page
// @Summary Status page
// @Description The HTML status page, or a short text if the page file doesn't exist.
// @ID page
// @Produce text/html
// @Success 200 {string} string
// @Failure 500 {object} api.Error
// @Router / [get]
func (p *PageHandler) Page(c echo.Context) error {
	data, err := p.read()
	if err != nil {
		p.logger.Warn().WithError(err).WithField("path", p.path).Log("Failed to read page")
		return api.Err(http.StatusInternalServerError, "", "failed to read page: %s", err.Error())
	}

	if c.Request().Method == http.MethodHead {
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
		res.WriteHeader(http.StatusOK)

		return nil
	}

	return c.HTMLBlob(http.StatusOK, data)
}

func (p *PageHandler) read() ([]byte, error) {
	if len(p.path) == 0 {
		return []byte(FallbackPage), nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte(FallbackPage), nil
		}

		return nil, err
	}

	return data, nil
}
