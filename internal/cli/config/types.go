// Package config provides configuration management for the leaplint CLI.
//
// Values are layered from defaults, a leaplint.yaml file, LEAPLINT_
// environment variables and command-line flags, in increasing precedence.
// rule_options and severity are keyed by rule ID.
package config

import (
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string                    `koanf:"dialect"`
	Rules        []string                  `koanf:"rules"`
	ExcludeRules []string                  `koanf:"exclude_rules"`
	MaxFixPasses int                       `koanf:"max_fix_passes"`
	Templater    string                    `koanf:"templater"`
	Vars         map[string]any            `koanf:"vars"`
	RuleOptions  map[string]map[string]any `koanf:"rule_options"`
	Severity     map[string]core.Severity  `koanf:"severity"`
	Processes    int                       `koanf:"processes"`
	Extensions   []string                  `koanf:"extensions"`
	OutputFormat string                    `koanf:"output"`
	Verbose      bool                      `koanf:"verbose"`

	// ProjectRoot is the directory holding the config file, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultDialect   = "ansi"
	DefaultTemplater = "raw"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// LintConfig converts the configuration for the lint engine.
func (c *Config) LintConfig() *lint.Config {
	return &lint.Config{
		Dialect:      c.Dialect,
		Rules:        c.Rules,
		Exclude:      c.ExcludeRules,
		RuleOptions:  c.RuleOptions,
		Severity:     c.Severity,
		MaxFixPasses: c.MaxFixPasses,
	}
}

// LinterConfig converts the configuration for a file linter.
func (c *Config) LinterConfig(fix bool) linter.Config {
	return linter.Config{
		Lint:      c.LintConfig(),
		Templater: c.Templater,
		Vars:      c.Vars,
		Processes: c.Processes,
		Fix:       fix,
	}
}
