package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/livingaura/aura/config"
	"github.com/livingaura/aura/encoding/json"
)

type jsonStore struct {
	path string

	base   *config.Config
	active *config.Config
	lock   sync.RWMutex

	reloadFn func()
}

// NewJSON reads the JSON config file from the given path. Values that are not
// present in the file keep their defaults. The file is never written. An empty
// path or a file that doesn't exist results in the default configuration.
func NewJSON(path string, reloadFn func()) (Store, error) {
	c := &jsonStore{
		reloadFn: reloadFn,
	}

	if len(path) != 0 {
		abspath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to determine absolute path of '%s': %w", path, err)
		}

		c.path = abspath
	}

	base, err := c.load()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON from '%s': %w", c.path, err)
	}

	c.base = base

	return c, nil
}

func (c *jsonStore) Get() *config.Config {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.base.Clone()
}

func (c *jsonStore) GetActive() *config.Config {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.active != nil {
		return c.active.Clone()
	}

	return c.base.Clone()
}

func (c *jsonStore) SetActive(d *config.Config) error {
	d.Validate(true)

	if d.HasErrors() {
		return fmt.Errorf("configuration data has errors after validation")
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.active = d.Clone()

	return nil
}

// Reload reads the config file again and calls the reload function.
func (c *jsonStore) Reload() error {
	base, err := c.load()
	if err != nil {
		return fmt.Errorf("failed to read JSON from '%s': %w", c.path, err)
	}

	c.lock.Lock()
	c.base = base
	c.active = nil
	c.lock.Unlock()

	if c.reloadFn != nil {
		c.reloadFn()
	}

	return nil
}

func (c *jsonStore) Path() string {
	return c.path
}

func (c *jsonStore) load() (*config.Config, error) {
	cfg := config.New()
	cfg.LoadedAt = time.Now()

	if len(c.path) == 0 {
		return cfg, nil
	}

	jsondata, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, err
	}

	if len(jsondata) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(jsondata, &cfg.Data); err != nil {
		return nil, err
	}

	return cfg, nil
}
