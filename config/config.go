// Package config loads jclass settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const EnvConfigPath = "JCLASS_CONFIG"

type Config struct {
	RepoURL   string `toml:"repo_url"`
	SearchURL string `toml:"search_url"`
	CacheDir  string `toml:"cache_dir"`
	UIAddr    string `toml:"ui_addr"`
	Verbosity int    `toml:"verbosity"`
}

func Default() Config {
	cacheDir := "jclass"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "jclass")
	}
	return Config{
		CacheDir: cacheDir,
		UIAddr:   ":8080",
	}
}

// Load reads the first config file that exists: $JCLASS_CONFIG, then
// .jclass.toml in the working directory, then jclass/config.toml under
// the user config directory. When none exists the defaults apply.
func Load() (Config, error) {
	for _, path := range candidatePaths() {
		if path == "" {
			continue
		}
		cfg, err := LoadFrom(path)
		if os.IsNotExist(err) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// LoadFrom reads one specific config file on top of the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func candidatePaths() []string {
	paths := []string{os.Getenv(EnvConfigPath), ".jclass.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "jclass", "config.toml"))
	}
	return paths
}
