package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownRule is returned when configuration names a rule, name or
// group that is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = NewRegistry()

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleDef)}
}

// Register adds a rule. A rule with the same ID is replaced.
func (r *Registry) Register(rule RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = rule
}

// All returns every rule ordered by ID.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]RuleDef, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	slices.SortFunc(rules, func(a, b RuleDef) int { return strings.Compare(a.ID, b.ID) })
	return rules
}

// ForDialect returns the rules that apply to a dialect, ordered by ID.
func (r *Registry) ForDialect(dialectName string) []RuleDef {
	var rules []RuleDef
	for _, rule := range r.All() {
		if rule.AppliesTo(dialectName) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Get returns a rule by its ID.
func (r *Registry) Get(id string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[strings.ToUpper(id)]
	return rule, ok
}

// Select expands references to rules in order: a reference is a rule ID,
// a rule name, a group, or "all". Duplicates keep their first position.
func (r *Registry) Select(refs []string) ([]RuleDef, error) {
	all := r.All()
	var out []RuleDef
	seen := make(map[string]bool)
	add := func(rule RuleDef) {
		if !seen[rule.ID] {
			seen[rule.ID] = true
			out = append(out, rule)
		}
	}

	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if strings.EqualFold(ref, "all") {
			for _, rule := range all {
				add(rule)
			}
			continue
		}
		matched := false
		for _, rule := range all {
			if strings.EqualFold(rule.ID, ref) || rule.Name == ref || rule.Group == ref {
				add(rule)
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, ref)
		}
	}
	return out, nil
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) { globalRegistry.Register(rule) }

// GetAll returns all registered rules ordered by ID.
func GetAll() []RuleDef { return globalRegistry.All() }

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) { return globalRegistry.Get(id) }

// GetByGroup returns all rules in a specific group.
func GetByGroup(group string) []RuleDef {
	var rules []RuleDef
	for _, rule := range globalRegistry.All() {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// GetByDialect returns rules applicable to a specific dialect.
// Rules with empty/nil Dialects field are included (they apply to all dialects).
func GetByDialect(dialectName string) []RuleDef { return globalRegistry.ForDialect(dialectName) }

// Count returns the number of registered rules.
func Count() int { return globalRegistry.Count() }

// Default returns the global registry.
func Default() *Registry { return globalRegistry }
