package lint

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// noqa directives live in inline comments:
//
//	-- noqa                     ignore every rule on this line
//	-- noqa: LT01,CP01          ignore the listed rules on this line
//	-- noqa: disable=LT01       ignore LT01 from this line on
//	-- noqa: enable=LT01        stop ignoring LT01 from this line on
//	-- noqa: disable=all        ignore every rule from this line on
type noqaMode int

const (
	noqaLine noqaMode = iota
	noqaDisable
	noqaEnable
)

type directive struct {
	mode  noqaMode
	line  int
	rules []string // upper-cased rule IDs or names; "ALL" for every rule
}

// parseDirective parses the text of an inline comment.
func parseDirective(comment string) (directive, bool) {
	text := strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(text, "--"):
		text = text[2:]
	case strings.HasPrefix(text, "#"):
		text = text[1:]
	default:
		return directive{}, false
	}
	text = strings.TrimSpace(text)
	if len(text) < 4 || !strings.EqualFold(text[:4], "noqa") {
		return directive{}, false
	}
	rest := strings.TrimSpace(text[4:])
	if rest == "" {
		return directive{mode: noqaLine, rules: []string{"ALL"}}, true
	}
	rest, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return directive{}, false
	}
	rest = strings.TrimSpace(rest)

	d := directive{mode: noqaLine}
	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "disable="):
		d.mode, rest = noqaDisable, rest[len("disable="):]
	case strings.HasPrefix(lower, "enable="):
		d.mode, rest = noqaEnable, rest[len("enable="):]
	}
	for _, r := range ParseRuleList(rest) {
		d.rules = append(d.rules, strings.ToUpper(r))
	}
	if len(d.rules) == 0 {
		return directive{}, false
	}
	return d, true
}

// suppressor answers whether a violation is silenced by noqa comments.
type suppressor struct {
	lines  map[int][]string
	ranges []directive // disable/enable directives in source order
}

// newSuppressor collects the directives of a tree.
func newSuppressor(tree *segment.Segment, lines *token.LineIndex) *suppressor {
	s := &suppressor{lines: make(map[int][]string)}
	segment.Walk(tree, func(v segment.Visit) bool {
		if !v.Segment.Is(segment.TypeInlineComment) {
			return true
		}
		d, ok := parseDirective(v.Segment.Raw())
		if !ok {
			return true
		}
		d.line = lines.Position(v.Start).Line
		if d.mode == noqaLine {
			s.lines[d.line] = append(s.lines[d.line], d.rules...)
		} else {
			s.ranges = append(s.ranges, d)
		}
		return true
	})
	return s
}

func matchesRule(ref string, rule RuleDef) bool {
	return ref == "ALL" || ref == strings.ToUpper(rule.ID) || ref == strings.ToUpper(rule.Name)
}

// suppressed reports whether rule is silenced on a 1-based line.
func (s *suppressor) suppressed(rule RuleDef, line int) bool {
	for _, ref := range s.lines[line] {
		if matchesRule(ref, rule) {
			return true
		}
	}
	// The last disable/enable at or before the line that names the rule wins.
	disabled := false
	for _, d := range s.ranges {
		if d.line > line {
			break
		}
		for _, ref := range d.rules {
			if matchesRule(ref, rule) {
				disabled = d.mode == noqaDisable
				break
			}
		}
	}
	return disabled
}
