package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

var (
	// ErrUnknownLanguage indicates a language name with no grammar support
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidIgnorePattern indicates an ignore pattern that fails to compile
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

	// ErrInvalidWorkers indicates a negative worker pool size
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	for _, name := range cfg.Scan.Languages {
		if _, err := lang.ForName(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q (supported: %s)",
				ErrUnknownLanguage, name, strings.Join(languageNames(), ", ")))
		}
	}

	for _, pattern := range cfg.Scan.IgnoreDirs {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err))
		}
	}

	if cfg.Scan.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Scan.Workers))
	}

	return errors.Join(errs...)
}

func languageNames() []string {
	all := lang.All()
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = string(l)
	}
	return names
}
