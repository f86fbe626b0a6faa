package api

import (
	"time"

	"github.com/livingaura/aura/config"
)

// ConfigData embeds config.Data
type ConfigData struct {
	config.Data
}

// Config is the config returned by the API
type Config struct {
	CreatedAt time.Time `json:"created_at"`
	LoadedAt  time.Time `json:"loaded_at"`

	Config ConfigData `json:"config"`

	Overrides []string `json:"overrides"`
}

// Unmarshal converts a config.Config to a Config.
func (c *Config) Unmarshal(cfg *config.Config) {
	if cfg == nil {
		return
	}

	c.CreatedAt = cfg.CreatedAt
	c.LoadedAt = cfg.LoadedAt
	c.Config = ConfigData{cfg.Data}
	c.Overrides = cfg.Overrides()
}
