package store

import (
	"fmt"

	"github.com/livingaura/aura/config"
)

type dummyStore struct {
	current *config.Config
	active  *config.Config
}

// NewDummy returns a store with the default configuration. The static page is
// disabled and the load generator is seeded for reproducible samples.
func NewDummy() Store {
	s := &dummyStore{}

	cfg := config.New()
	cfg.Storage.Page = ""
	cfg.Aura.Seed = 42

	s.current = cfg
	s.active = cfg.Clone()

	return s
}

func (c *dummyStore) Get() *config.Config {
	return c.current.Clone()
}

func (c *dummyStore) GetActive() *config.Config {
	return c.active.Clone()
}

func (c *dummyStore) SetActive(d *config.Config) error {
	d.Validate(true)

	if d.HasErrors() {
		return fmt.Errorf("configuration data has errors after validation")
	}

	c.active = d.Clone()

	return nil
}

func (c *dummyStore) Reload() error {
	return nil
}

func (c *dummyStore) Path() string {
	return ""
}
