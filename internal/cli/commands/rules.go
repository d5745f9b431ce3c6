package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Dialect string // Only rules that apply to a dialect
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (e.g., layout, capitalisation). Rules can be
selected in leaplint.yaml by ID, name or group.
Use --verbose to see full documentation including examples and fix guidance.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  leaplint rules

  # Show details for a specific rule
  leaplint rules LT01

  # List rules in the layout group
  leaplint rules --group layout

  # Rules that run for duckdb
  leaplint rules --dialect duckdb

  # Show full documentation
  leaplint rules -V

  # Output as JSON
  leaplint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "Only rules that apply to a dialect")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	rules := filterRulesByOptions(allRuleInfo(opts.Dialect), opts)
	slices.SortFunc(rules, func(a, b core.RuleInfo) int {
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if r.EffectiveMode() == output.ModeJSON {
		out := RulesJSONOutput{Rules: rules}
		out.Count.Total = len(rules)
		out.Count.Fixable = countFixable(rules)
		return r.JSON(out)
	}

	r.Header(1, fmt.Sprintf("Lint Rules (%d, %d fixable)", len(rules), countFixable(rules)))

	header := []string{"ID", "Name", "Group", "Severity", "Fix"}
	if opts.Verbose {
		header = append(header, "Description")
	}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		row := []string{rule.ID, rule.Name, rule.Group, rule.DefaultSeverity.String(), yesNo(rule.Fixable)}
		if opts.Verbose {
			row = append(row, truncateOneLine(rule.Description, 60))
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)
	r.Println("")
	r.Muted("Use 'leaplint rules <rule-id>' for detailed documentation")
	return nil
}

// allRuleInfo describes the registered rules, limited to those that apply
// to dialectName when it is set.
func allRuleInfo(dialectName string) []core.RuleInfo {
	defs := lint.GetAll()
	if dialectName != "" {
		defs = lint.GetByDialect(dialectName)
	}
	out := make([]core.RuleInfo, len(defs))
	for i, d := range defs {
		out[i] = d.Info()
	}
	return out
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if r.Group == opts.Group {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// findRule looks a rule up by ID, then by name.
func findRule(ref string) (core.RuleInfo, bool) {
	if def, ok := lint.GetByID(ref); ok {
		return def.Info(), true
	}
	for _, d := range lint.GetAll() {
		if d.Name == ref {
			return d.Info(), true
		}
	}
	return core.RuleInfo{}, false
}

// docSection is one titled block of a rule's documentation.
type docSection struct {
	title string
	body  string
	code  bool
}

func ruleSections(rule core.RuleInfo) []docSection {
	var out []docSection
	add := func(title, body string, code bool) {
		if body != "" {
			out = append(out, docSection{title, strings.TrimSpace(body), code})
		}
	}
	add("Description", rule.Description, false)
	add("Why This Matters", rule.Rationale, false)
	add("Bad Example", rule.BadExample, true)
	add("Good Example", rule.GoodExample, true)
	add("How to Fix", rule.Fix, false)
	if len(rule.ConfigKeys) > 0 {
		add("Configuration", "Options: `"+strings.Join(rule.ConfigKeys, "`, `")+"`", false)
	}
	if len(rule.Dialects) > 0 {
		add("Dialects", strings.Join(rule.Dialects, ", "), false)
	}
	return out
}

func showRule(cmd *cobra.Command, ref string, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	rule, ok := findRule(ref)
	if !ok {
		return fmt.Errorf("rule %q not found", ref)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeText:
		showRuleText(r, rule)
	default:
		showRuleMarkdown(r, rule)
	}
	return nil
}

func showRuleText(r *output.Renderer, rule core.RuleInfo) {
	styles := r.Styles()
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("  %s %s   %s %s   %s %s\n",
		styles.Bold.Render("Group:"), rule.Group,
		styles.Bold.Render("Severity:"), severityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
		styles.Bold.Render("Fixable:"), yesNo(rule.Fixable))
	r.Println("")

	for _, sec := range ruleSections(rule) {
		r.Println(styles.Bold.Render(sec.title))
		style := styles.Muted
		if sec.title == "Good Example" {
			style = styles.Success
		}
		for _, line := range strings.Split(sec.body, "\n") {
			if sec.code {
				line = style.Render(line)
			}
			r.Println("  " + line)
		}
		r.Println("")
	}
}

func showRuleMarkdown(r *output.Renderer, rule core.RuleInfo) {
	r.Println(output.FormatHeader(1, rule.ID+" - "+rule.Name))
	r.Println("")
	r.Printf("**Group:** %s | **Severity:** `%s` | **Fixable:** %t\n\n", rule.Group, rule.DefaultSeverity, rule.Fixable)

	for _, sec := range ruleSections(rule) {
		r.Println(output.FormatHeader(2, sec.title))
		r.Println("")
		if sec.code {
			r.Println("```sql")
			r.Println(sec.body)
			r.Println("```")
		} else {
			r.Println(sec.body)
		}
		r.Println("")
	}
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count struct {
		Fixable int `json:"fixable"`
		Total   int `json:"total"`
	} `json:"count"`
}

func countFixable(rules []core.RuleInfo) int {
	n := 0
	for _, rule := range rules {
		if rule.Fixable {
			n++
		}
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// truncateOneLine joins lines and cuts s to at most maxLen bytes.
func truncateOneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
