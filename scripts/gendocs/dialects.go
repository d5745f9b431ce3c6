package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/all"
)

// generateDialectDocs writes one overview page listing each registered
// dialect with its inheritance chain and grammar overrides.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects supported by leaplint")
	w.GeneratedMarker()
	w.Header(1, "Dialects")
	w.Paragraph("Select a dialect with " + InlineCode("--dialect") + " or the " +
		InlineCode("dialect") + " key. A dialect inherits everything from its parent and overrides only what differs.")

	names := dialect.List()
	var rows [][]string
	for _, name := range names {
		r, err := dialect.Resolve(name)
		if err != nil {
			return fmt.Errorf("dialect %s: %w", name, err)
		}
		rows = append(rows, []string{
			fmt.Sprintf("[%s](#%s)", InlineCode(name), name),
			strings.Join(r.Chain(), " → "),
			fmt.Sprint(len(r.Keywords())),
		})
	}
	w.Table([]string{"Dialect", "Inherits", "Keywords"}, rows)

	for _, name := range names {
		d, _ := dialect.Get(name)
		r, _ := dialect.Resolve(name)

		w.Line(fmt.Sprintf("## %s {#%s}", name, name))
		w.Newline()
		w.Paragraph(fmt.Sprintf("Root rule %s. %d grammar rules, %d lexer rules.",
			InlineCode(r.RootRule()), len(r.RuleNames()), len(r.Lexer().Rules())))

		if overrides := d.Overrides(); len(overrides) > 0 {
			slices.Sort(overrides)
			items := make([]string, len(overrides))
			for i, o := range overrides {
				items[i] = InlineCode(o)
			}
			w.Header(3, "Grammar overrides")
			w.BulletList(items)
		}
	}
	return writeDoc(outDir, "index.md", w)
}
