package api

import (
	"net/http"
	"strings"

	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/log"

	"github.com/labstack/echo/v4"
)

// The LogHandler type provides handler functions for reading the application log
type LogHandler struct {
	buffer log.BufferWriter
}

// NewLog return a new Log type. You have to provide log buffer.
func NewLog(buffer log.BufferWriter) *LogHandler {
	l := &LogHandler{
		buffer: buffer,
	}

	if l.buffer == nil {
		l.buffer = log.NewBufferWriter(log.Lsilent, 1)
	}

	return l
}

// Log returns the last log lines of the application
// @Summary Application log
// @Description Get the last log lines of the application
// @ID log
// @Param format query string false "Format of the list of log events (*console, raw)"
// @Produce json
// @Success 200 {array} api.LogEvent "application log"
// @Success 200 {array} string "application log"
// @Router /api/v1/log [get]
func (p *LogHandler) Log(c echo.Context) error {
	format := c.QueryParam("format")

	events := p.buffer.Events()

	switch format {
	case "raw":
		log := make([]api.LogEvent, len(events))

		for i, e := range events {
			log[i].Unmarshal(e)
		}

		return c.JSON(http.StatusOK, log)
	case "", "console":
		formatter := log.NewConsoleFormatter(false)

		log := make([]string, len(events))

		for i, e := range events {
			log[i] = strings.TrimSpace(formatter.String(e))
		}

		return c.JSON(http.StatusOK, log)
	}

	return api.Err(http.StatusBadRequest, "Invalid format", "unknown format '%s', expecting 'console' or 'raw'", format)
}
