package api

import (
	"net/http"
	"time"

	"github.com/livingaura/aura/app"
	"github.com/livingaura/aura/http/api"

	"github.com/labstack/echo/v4"
)

// The AboutHandler type provides handler functions for retrieving details
// about the API version and build infos.
type AboutHandler struct {
	id        string
	name      string
	createdAt time.Time
}

// NewAbout returns a new About type
func NewAbout(id, name string, createdAt time.Time) *AboutHandler {
	return &AboutHandler{
		id:        id,
		name:      name,
		createdAt: createdAt,
	}
}

// About returns API version and build infos
// @Summary API version and build infos
// @Description API version and build infos
// @ID about
// @Produce json
// @Success 200 {object} api.About
// @Router /api [get]
func (p *AboutHandler) About(c echo.Context) error {
	about := api.About{
		App:       app.Name,
		Name:      p.name,
		ID:        p.id,
		CreatedAt: p.createdAt.Format(time.RFC3339),
		Uptime:    uint64(time.Since(p.createdAt).Seconds()),
		Version: api.AboutVersion{
			Number:   app.Version.String(),
			Commit:   app.Commit,
			Branch:   app.Branch,
			Build:    app.Build,
			Arch:     app.Arch,
			Compiler: app.Compiler,
		},
	}

	return c.JSON(http.StatusOK, about)
}
