package store

import (
	"os"
	"path/filepath"
)

// Location returns the path to the config file. If no path is provided,
// different standard location will be probed:
// - os.UserConfigDir() + /living-aura/config.json
// - os.UserHomeDir() + /.config/living-aura/config.json
// - ./config/config.json
// If the config doesn't exist in any of these locations, an empty path
// is returned and the defaults are used.
func Location(path string) string {
	if len(path) != 0 {
		return path
	}

	locations := []string{}

	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "living-aura", "config.json"))
	}

	if dir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(dir, ".config", "living-aura", "config.json"))
	}

	locations = append(locations, filepath.Join(".", "config", "config.json"))

	for _, location := range locations {
		info, err := os.Stat(location)
		if err != nil {
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		return location
	}

	return ""
}
