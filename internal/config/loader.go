package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (EIL_*)
// 2. Config file (.eil.yaml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".eil")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)

	v.SetEnvPrefix("EIL")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., EIL_SCAN_WORKERS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("scan.recursive")
	v.BindEnv("scan.languages")
	v.BindEnv("scan.ignore_dirs")
	v.BindEnv("scan.workers")
	v.BindEnv("scan.cache")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.recursive", defaults.Scan.Recursive)
	v.SetDefault("scan.languages", defaults.Scan.Languages)
	v.SetDefault("scan.ignore_dirs", defaults.Scan.IgnoreDirs)
	v.SetDefault("scan.workers", defaults.Scan.Workers)
	v.SetDefault("scan.cache", defaults.Scan.Cache)
}
