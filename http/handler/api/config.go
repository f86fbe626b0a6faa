package api

import (
	"net/http"

	cfgstore "github.com/livingaura/aura/config/store"
	"github.com/livingaura/aura/http/api"

	"github.com/labstack/echo/v4"
)

// The ConfigHandler type provides handler functions for reading and reloading
// the current config.
type ConfigHandler struct {
	store cfgstore.Store
}

// NewConfig return a new Config type. You have to provide a valid config store.
func NewConfig(store cfgstore.Store) *ConfigHandler {
	return &ConfigHandler{
		store: store,
	}
}

// Get returns the currently active configuration
// @Summary Retrieve the currently active configuration
// @Description Retrieve the currently active configuration, including the values from environment variables
// @ID config-get
// @Produce json
// @Success 200 {object} api.Config
// @Router /api/v1/config [get]
func (p *ConfigHandler) Get(c echo.Context) error {
	cfg := p.store.GetActive()

	apicfg := api.Config{}
	apicfg.Unmarshal(cfg)

	return c.JSON(http.StatusOK, apicfg)
}

// Reload will reload the configuration
// @Summary Reload the configuration
// @Description Read the config file again. This will trigger a restart of the server.
// @ID config-reload
// @Produce json
// @Success 200 {string} string
// @Failure 500 {object} api.Error
// @Router /api/v1/config/reload [get]
func (p *ConfigHandler) Reload(c echo.Context) error {
	if err := p.store.Reload(); err != nil {
		return api.Err(http.StatusInternalServerError, "", "%s", err.Error())
	}

	return c.JSON(http.StatusOK, "OK")
}
