package core

import (
	"fmt"
	"slices"
	"strings"
)

// Severity ranks a violation. Lower values are more severe.
type Severity int

// Severity levels, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

var severityNames = []string{"error", "warning", "info", "hint"}

// SeverityNames lists the severity names, most severe first.
func SeverityNames() []string { return slices.Clone(severityNames) }

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool { return s <= threshold }

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q (want one of %s)", text, strings.Join(severityNames, ", "))
	}
	*s = sev
	return nil
}

// ParseSeverity looks a severity up by name, ignoring case. Unknown names
// yield SeverityWarning and false.
func ParseSeverity(name string) (Severity, bool) {
	i := slices.Index(severityNames, strings.ToLower(name))
	if i < 0 {
		return SeverityWarning, false
	}
	return Severity(i), true
}

// RuleInfo is the serializable description of a rule, used by the rules
// command and the documentation generator.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Dialects        []string `json:"dialects,omitempty"` // empty means every dialect
	Fixable         bool     `json:"fixable"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}
