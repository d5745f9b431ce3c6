package main

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// ruleGroups lists rule groups in page order with their blurbs and ID prefixes.
var ruleGroups = []struct {
	name, prefix, desc string
}{
	{"layout", "LT", "Whitespace, spacing and line endings."},
	{"capitalisation", "CP", "Consistent casing of keywords."},
	{"lexing", "LX", "Input the dialect lexer cannot tokenize."},
}

// generateLintDocs writes the rules overview and the full rule reference.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAll()
	if err := writeDoc(outDir, "index.md", rulesIndex(rules)); err != nil {
		return err
	}
	return writeDoc(outDir, "rules.md", rulesReference(rules))
}

func rulesIndex(rules []lint.RuleDef) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("Rules", "Lint rules shipped with leaplint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	fixable := 0
	for _, r := range rules {
		if r.Fixable {
			fixable++
		}
	}
	w.Paragraph(fmt.Sprintf("leaplint ships %s, %d of which can fix what they report. "+
		"Parse errors are always reported as %s and cannot be disabled.",
		Bold(fmt.Sprintf("%d rules", len(rules))), fixable, InlineCode("PRS")))

	w.Header(2, "Severity Levels")
	w.Table([]string{"Severity", "Description"}, [][]string{
		{InlineCode("error"), "Must be fixed"},
		{InlineCode("warning"), "Should be reviewed"},
		{InlineCode("info"), "Informational"},
		{InlineCode("hint"), "Suggestion"},
	})

	w.Header(2, "Configuration")
	w.Paragraph("Rules are selected by ID, name or group in " + InlineCode("leaplint.yaml") + ":")
	w.CodeBlock("yaml", `rules: [layout, CP01]
exclude_rules: [LT12]
severity:
  LT01: error
rule_options:
  CP01:
    capitalisation_policy: lower`)

	w.Header(2, "Groups")
	var rows [][]string
	for _, g := range ruleGroups {
		link := fmt.Sprintf("[%s](/rules/rules#%s)", titleCase(g.name), g.name)
		rows = append(rows, []string{link, g.prefix, g.desc})
	}
	w.Table([]string{"Group", "Prefix", "Description"}, rows)
	return w
}

func rulesReference(rules []lint.RuleDef) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("Rule Reference", "Every leaplint rule with examples")
	w.GeneratedMarker()
	w.Header(1, "Rule Reference")

	byGroup := make(map[string][]lint.RuleDef)
	for _, r := range rules {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}
	for _, g := range ruleGroups {
		group := byGroup[g.name]
		if len(group) == 0 {
			continue
		}
		slices.SortFunc(group, func(a, b lint.RuleDef) int { return cmp.Compare(a.ID, b.ID) })

		w.Line(fmt.Sprintf("## %s {#%s}", titleCase(g.name), g.name))
		w.Newline()
		w.Paragraph(g.desc)
		for _, r := range group {
			writeRule(w, r)
		}
	}
	return w
}

func writeRule(w *MarkdownWriter, r lint.RuleDef) {
	w.Line(fmt.Sprintf("### %s - %s {#%s}", r.ID, r.Name, r.ID))
	w.Newline()

	meta := fmt.Sprintf("%s %s", Bold("Severity:"), InlineCode(r.Severity.String()))
	if r.Fixable {
		meta += " · " + Bold("Fixable")
	}
	w.Line(meta)
	w.Newline()
	w.Paragraph(cleanDescription(r.Description))

	if r.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(r.Rationale)
	}
	if r.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("sql", r.BadExample)
	}
	if r.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("sql", r.GoodExample)
	}
	if r.Fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(r.Fix)
	}
	if len(r.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		keys := make([]string, len(r.ConfigKeys))
		for i, k := range r.ConfigKeys {
			keys[i] = InlineCode(k)
		}
		w.Paragraph("Options: " + strings.Join(keys, ", "))
	}
	if len(r.Dialects) > 0 {
		w.Paragraph(Bold("Dialects:") + " " + strings.Join(r.Dialects, ", "))
	}
	w.Line("---")
	w.Newline()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
