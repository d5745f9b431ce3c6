package dialect

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

// Registry stores dialect definitions and caches their resolved views.
// Registration normally happens from init() functions; afterwards the
// registry is only read.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]*Dialect
	resolved map[string]*Resolved
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		dialects: make(map[string]*Dialect),
		resolved: make(map[string]*Resolved),
	}
}

// Register adds a dialect. The parent does not have to be registered yet,
// but registering a dialect that would close an inheritance cycle fails.
// Re-registering a name replaces the previous definition.
func (reg *Registry) Register(d *Dialect) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("%w: dialect has no name", ErrInvalidDialect)
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()

	seen := map[string]bool{d.Name: true}
	for p := d.Parent; p != ""; {
		if seen[p] {
			return fmt.Errorf("%w: %s extends %s", ErrCycle, d.Name, d.Parent)
		}
		seen[p] = true
		parent, ok := reg.dialects[p]
		if !ok {
			break
		}
		p = parent.Parent
	}

	reg.dialects[d.Name] = d
	// resolutions may depend on the replaced definition
	clear(reg.resolved)
	return nil
}

// MustRegister is Register for init() functions; it panics on error.
func (reg *Registry) MustRegister(d *Dialect) {
	if err := reg.Register(d); err != nil {
		panic(err)
	}
}

// Get returns a dialect definition by name.
func (reg *Registry) Get(name string) (*Dialect, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	d, ok := reg.dialects[strings.ToLower(name)]
	return d, ok
}

// Names returns all registered dialect names (sorted).
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return slices.Sorted(maps.Keys(reg.dialects))
}

// Resolve returns the flattened view of a dialect, computing it on first
// use. Unknown names, missing ancestors, undefined grammar references and
// failing lexer patches are configuration errors.
func (reg *Registry) Resolve(name string) (*Resolved, error) {
	name = strings.ToLower(name)

	reg.mu.RLock()
	r, ok := reg.resolved[name]
	reg.mu.RUnlock()
	if ok {
		return r, nil
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.resolveLocked(name, nil)
}

func (reg *Registry) resolveLocked(name string, path []string) (*Resolved, error) {
	if r, ok := reg.resolved[name]; ok {
		return r, nil
	}
	d, ok := reg.dialects[name]
	if !ok {
		if len(path) > 0 {
			return nil, fmt.Errorf("%w: %q (parent of %s)", ErrUnknownDialect, name, path[len(path)-1])
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	if slices.Contains(path, name) {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(path, name), " -> "))
	}

	var r *Resolved
	if d.Parent == "" {
		r = newResolved(name)
		r.chain = []string{name}
	} else {
		parent, err := reg.resolveLocked(d.Parent, append(path, name))
		if err != nil {
			return nil, err
		}
		r = parent.inherit(name)
	}

	maps.Copy(r.rules, d.grammar)
	if d.root != "" {
		r.root = d.root
	}
	for _, p := range d.patches {
		if err := p(r); err != nil {
			return nil, err
		}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.lexer = lexer.New(r.lexRules)

	reg.resolved[name] = r
	return r, nil
}

// validate checks that the root rule and every referenced rule exist.
func (r *Resolved) validate() error {
	if _, ok := r.rules[r.root]; !ok {
		return fmt.Errorf("%w: %s: root rule %q is not defined", ErrInvalidDialect, r.name, r.root)
	}
	for _, name := range r.RuleNames() {
		for _, ref := range grammar.Refs(r.rules[name]) {
			if _, ok := r.rules[ref]; !ok {
				return fmt.Errorf("%w: %s: rule %q references undefined rule %q",
					ErrInvalidDialect, r.name, name, ref)
			}
		}
	}
	return nil
}

// Default is the process-wide registry populated by pkg/dialects/*.
var Default = NewRegistry()

// Register registers a dialect in the default registry.
func Register(d *Dialect) error { return Default.Register(d) }

// MustRegister registers a dialect in the default registry, panicking on
// error. Called by dialect implementations in their init() functions.
func MustRegister(d *Dialect) { Default.MustRegister(d) }

// Get returns a dialect definition from the default registry.
func Get(name string) (*Dialect, bool) { return Default.Get(name) }

// Resolve resolves a dialect from the default registry.
func Resolve(name string) (*Resolved, error) { return Default.Resolve(name) }

// List returns all dialect names in the default registry (sorted).
func List() []string { return Default.Names() }
