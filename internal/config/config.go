package config

import (
	"github.com/evamaxfield/extract-imported-libraries/internal/extract"
	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// Config represents the complete eil configuration.
// It can be loaded from .eil.yaml with environment variable overrides.
type Config struct {
	Scan ScanConfig `yaml:"scan" mapstructure:"scan"`
}

// ScanConfig defines directory scan behavior.
type ScanConfig struct {
	Recursive  bool     `yaml:"recursive" mapstructure:"recursive"`     // descend into subdirectories
	Languages  []string `yaml:"languages" mapstructure:"languages"`     // restrict scans to these languages; empty means all
	IgnoreDirs []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"` // directory-name patterns treated as vendored code
	Workers    int      `yaml:"workers" mapstructure:"workers"`         // worker pool size; 0 means GOMAXPROCS
	Cache      bool     `yaml:"cache" mapstructure:"cache"`             // reuse per-file results across scans
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Recursive:  true,
			Languages:  nil,
			IgnoreDirs: extract.DefaultIgnoreDirs(),
			Workers:    0,
			Cache:      false,
		},
	}
}

// ScanOptions converts the configuration into scanner options. Language
// names have already been validated.
func (c *Config) ScanOptions() extract.ScanOptions {
	var languages []lang.Language
	for _, name := range c.Scan.Languages {
		if l, err := lang.ForName(name); err == nil {
			languages = append(languages, l)
		}
	}
	return extract.ScanOptions{
		Recursive:  c.Scan.Recursive,
		Languages:  languages,
		IgnoreDirs: c.Scan.IgnoreDirs,
		Workers:    c.Scan.Workers,
		Cache:      c.Scan.Cache,
	}
}
