package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

var outputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("%w: dialect is required", ErrInvalidConfig)
	}
	if !slices.Contains(dialect.List(), c.Dialect) {
		return fmt.Errorf("%w: unknown dialect %q (available: %v)\nHint: set dialect in leaplint.yaml or use --dialect",
			ErrInvalidConfig, c.Dialect, dialect.List())
	}
	if c.MaxFixPasses < 0 {
		return fmt.Errorf("%w: max_fix_passes must not be negative", ErrInvalidConfig)
	}
	if c.Processes < 0 {
		return fmt.Errorf("%w: processes must not be negative", ErrInvalidConfig)
	}
	if !slices.Contains(outputFormats, c.OutputFormat) {
		return fmt.Errorf("%w: unknown output format %q (available: %v)", ErrInvalidConfig, c.OutputFormat, outputFormats)
	}
	return nil
}
