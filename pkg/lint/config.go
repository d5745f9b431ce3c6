package lint

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/dialect"
)

// DefaultMaxFixPasses bounds the fix loop when configuration does not.
const DefaultMaxFixPasses = 10

// ErrInvalidConfig is returned for configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid lint configuration")

// Config selects the dialect and rules for an Engine.
type Config struct {
	// Dialect is the registered dialect name.
	Dialect string

	// Rules lists rule IDs, names or groups in the order rules run.
	// Empty selects every registered rule.
	Rules []string

	// Exclude removes rules, names or groups from the selection.
	Exclude []string

	// RuleOptions holds per-rule options keyed by rule ID or name.
	RuleOptions map[string]map[string]any

	// Severity overrides default rule severities, keyed by rule ID or name.
	Severity map[string]core.Severity

	// MaxFixPasses bounds the fix loop. Zero means DefaultMaxFixPasses.
	MaxFixPasses int
}

// NewConfig returns a configuration selecting every rule for a dialect.
func NewConfig(dialectName string) *Config {
	return &Config{Dialect: dialectName, MaxFixPasses: DefaultMaxFixPasses}
}

// maxPasses returns the effective fix pass limit.
func (c *Config) maxPasses() int {
	if c.MaxFixPasses <= 0 {
		return DefaultMaxFixPasses
	}
	return c.MaxFixPasses
}

// ruleSettings holds severities and options keyed by canonical rule ID.
type ruleSettings struct {
	severity map[string]core.Severity
	options  map[string]map[string]any
}

// optionsFor returns the options of a rule.
func (s ruleSettings) optionsFor(rule RuleDef) map[string]any {
	return s.options[rule.ID]
}

// severityOf returns the effective severity of a rule.
func (s ruleSettings) severityOf(rule RuleDef) core.Severity {
	if sev, ok := s.severity[rule.ID]; ok {
		return sev
	}
	return rule.Severity
}

// lookup finds a rule by ID or name, ignoring case.
func lookup(reg *Registry, key string) (RuleDef, bool) {
	if r, ok := reg.Get(key); ok {
		return r, true
	}
	all := reg.All()
	i := slices.IndexFunc(all, func(r RuleDef) bool { return strings.EqualFold(r.Name, key) })
	if i < 0 {
		return RuleDef{}, false
	}
	return all[i], true
}

// resolve validates the configuration against the dialect and rule
// registries and returns the selected rules in run order.
func (c *Config) resolve(reg *Registry) (*dialect.Resolved, []RuleDef, ruleSettings, error) {
	var settings ruleSettings
	if c.Dialect == "" {
		return nil, nil, settings, fmt.Errorf("%w: no dialect configured", ErrInvalidConfig)
	}
	d, err := dialect.Resolve(c.Dialect)
	if err != nil {
		return nil, nil, settings, err
	}

	refs := c.Rules
	if len(refs) == 0 {
		refs = []string{"all"}
	}
	selected, err := reg.Select(refs)
	if err != nil {
		return nil, nil, settings, err
	}
	excluded, err := reg.Select(c.Exclude)
	if err != nil {
		return nil, nil, settings, err
	}

	rules := make([]RuleDef, 0, len(selected))
	for _, r := range selected {
		if slices.ContainsFunc(excluded, func(x RuleDef) bool { return x.ID == r.ID }) {
			continue
		}
		if !r.AppliesTo(d.Name()) {
			continue
		}
		rules = append(rules, r)
	}

	settings, err = c.settings(reg)
	if err != nil {
		return nil, nil, settings, err
	}
	return d, rules, settings, nil
}

// settings rekeys severity overrides and options by canonical rule ID.
// Keys match rule IDs or names in any case; an ID key beats a name key.
func (c *Config) settings(reg *Registry) (ruleSettings, error) {
	s := ruleSettings{
		severity: make(map[string]core.Severity, len(c.Severity)),
		options:  make(map[string]map[string]any, len(c.RuleOptions)),
	}
	for _, key := range slices.Sorted(maps.Keys(c.Severity)) {
		r, ok := lookup(reg, key)
		if !ok {
			return s, fmt.Errorf("%w: severity override: %s", ErrUnknownRule, key)
		}
		if _, dup := s.severity[r.ID]; !dup || strings.EqualFold(key, r.ID) {
			s.severity[r.ID] = c.Severity[key]
		}
	}
	for _, key := range slices.Sorted(maps.Keys(c.RuleOptions)) {
		r, ok := lookup(reg, key)
		if !ok {
			return s, fmt.Errorf("%w: options for %s", ErrUnknownRule, key)
		}
		if _, dup := s.options[r.ID]; !dup || strings.EqualFold(key, r.ID) {
			s.options[r.ID] = c.RuleOptions[key]
		}
	}
	return s, nil
}

// ParseRuleList splits a comma separated rule list.
func ParseRuleList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
