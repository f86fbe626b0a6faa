// Package store provides the sources for the configuration of the app.
package store

import "github.com/livingaura/aura/config"

// Store is a store for the configuration data.
type Store interface {
	// Get the configuration as it has been loaded, without environment
	// overrides.
	Get() *config.Config

	// GetActive returns the configuration that has been set as
	// active before, otherwise the loaded configuration.
	GetActive() *config.Config

	// SetActive validates the given configuration and keeps it
	// as active in memory.
	SetActive(data *config.Config) error

	// Reload will reload the stored configuration. It has to make sure
	// that all affected components will receiver their potentially
	// changed configuration.
	Reload() error

	// Path returns the location of the configuration, if any.
	Path() string
}
