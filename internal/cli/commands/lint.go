package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// LintOptions holds options for the lint and fix commands.
type LintOptions struct {
	Paths    []string // Files or directories; "-" reads stdin
	Format   string   // Output format: text, markdown, json
	Severity string   // Minimum severity: error, warning, info, hint
	Watch    bool     // Re-lint on file changes
	DryRun   bool     // Fix without writing files
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Lint SQL files",
		Long: `Lint SQL files and report rule violations.

Directories are searched recursively for files with the configured
extensions. Use "-" to read SQL from standard input. Rules, dialect and
rule options are configured in leaplint.yaml or with flags.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint one file with the postgres dialect
  leaplint lint --dialect postgres models/orders.sql

  # Lint stdin
  echo "select a  from t" | leaplint lint -

  # Only layout rules, as JSON
  leaplint lint --rules layout --format json

  # Re-lint whenever a file changes
  leaplint lint --watch models/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = defaultPaths(args)
			return runLint(cmd, opts, false)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when files change")

	return cmd
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Fix SQL files in place",
		Long: `Apply rule fixes to SQL files and report what could not be fixed.

Fixes are applied in passes until the file is stable or the pass limit
(max_fix_passes) is reached. Fixes that would touch templated text or
break the parse are skipped. With "-" the fixed SQL is written to
standard output.`,
		Example: `  # Fix every file under models/
  leaplint fix models/

  # Show what would be fixed without writing
  leaplint fix --dry-run models/

  # Fix stdin
  cat query.sql | leaplint fix - > fixed.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = defaultPaths(args)
			return runLint(cmd, opts, true)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report fixes without writing files")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions, fixing bool) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", opts.Severity)
	}

	l, err := cmdCtx.NewLinter(fixing)
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		return lintOnce(ctx, cmd, cmdCtx, l, opts, threshold, fixing)
	}
	err = once(cmd.Context())
	if !opts.Watch {
		return err
	}
	return watchAndRun(cmd.Context(), cmdCtx, opts.Paths, cmdCtx.Cfg.Extensions, once)
}

func lintOnce(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, l *linter.Linter,
	opts *LintOptions, threshold core.Severity, fixing bool) error {
	r := cmdCtx.Renderer

	src, stdin, err := readStdin(cmd, opts.Paths)
	if err != nil {
		return err
	}

	var results []*linter.FileResult
	if stdin {
		res, err := l.LintSource(ctx, "stdin", src)
		if err != nil {
			return err
		}
		results = []*linter.FileResult{res}
	} else {
		paths, err := linter.ExpandPaths(opts.Paths, cmdCtx.Cfg.Extensions)
		if err != nil {
			return err
		}
		results, err = l.LintFiles(ctx, paths)
		if err != nil {
			return err
		}
	}

	changed := 0
	if fixing && stdin {
		// fixed SQL goes to stdout; the report goes to stderr
		r.Printf("%s", results[0].FixedSource)
		r = output.NewRendererWithTTY(r.ErrWriter(), r.ErrWriter(), false, r.EffectiveMode())
	} else if fixing && !opts.DryRun {
		changed, err = linter.WriteFixes(results)
		if err != nil {
			return err
		}
	}

	lo := buildLintOutput(results, threshold, fixing)
	lo.Summary.FilesChanged = changed
	if renderLintResults(r, lo, fixing) {
		return ErrIssuesFound
	}
	return nil
}

// buildLintOutput converts results for rendering. When fixing, applied
// fixes are counted and only remaining violations are listed.
func buildLintOutput(results []*linter.FileResult, threshold core.Severity, fixing bool) output.LintOutput {
	lo := output.LintOutput{
		Summary: output.LintSummary{FilesAnalyzed: len(results)},
		Files:   make([]output.LintFileResult, 0, len(results)),
	}
	for _, res := range results {
		fr := output.LintFileResult{Path: res.Path, Converged: res.Converged}
		if res.TemplateErr != nil {
			fr.Error = res.TemplateErr.Error()
		}
		for _, re := range res.RuleErrors {
			fr.Error = strings.TrimPrefix(fr.Error+"; "+re.Error(), "; ")
		}

		vs := res.Violations
		if fixing {
			for _, v := range res.Violations {
				if v.FixStatus == fix.StatusApplied {
					lo.Summary.Fixed++
				}
			}
			vs = res.Remaining()
		}
		for _, v := range vs {
			if !v.Severity.AtLeast(threshold) {
				continue
			}
			fr.Diagnostics = append(fr.Diagnostics, diagnostic(v))
			countSeverity(&lo.Summary, v.Severity)
		}
		lo.Files = append(lo.Files, fr)
	}
	return lo
}

func diagnostic(v lint.Violation) output.LintDiagnostic {
	d := output.LintDiagnostic{
		RuleID:   v.RuleID,
		Rule:     v.RuleName,
		Severity: v.Severity.String(),
		Message:  v.Message,
		Line:     v.SourcePos.Line,
		Column:   v.SourcePos.Column,
	}
	if v.FixStatus != fix.StatusNone {
		d.FixStatus = v.FixStatus.String()
	}
	return d
}

func countSeverity(s *output.LintSummary, sev core.Severity) {
	s.TotalIssues++
	switch sev {
	case core.SeverityError:
		s.Errors++
	case core.SeverityWarning:
		s.Warnings++
	case core.SeverityInfo:
		s.Info++
	case core.SeverityHint:
		s.Hints++
	}
}

// renderLintResults writes the report and reports whether anything is
// left for the user to address.
func renderLintResults(r *output.Renderer, lo output.LintOutput, fixing bool) bool {
	hasIssues := lo.Summary.TotalIssues > 0
	for _, f := range lo.Files {
		if f.Error != "" {
			hasIssues = true
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(lo)
		return hasIssues
	}

	styles := r.Styles()
	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, f := range lo.Files {
		stuck := fixing && f.Error == "" && !f.Converged
		if len(f.Diagnostics) == 0 && f.Error == "" && !stuck {
			continue
		}
		if markdown {
			r.Println(output.FormatHeader(2, f.Path))
			r.Println("")
		} else {
			r.Println(styles.FilePath.Render(f.Path))
		}
		if f.Error != "" {
			r.Printf("  %s  %s\n", styles.Error.Render("error  "), f.Error)
		}
		for _, d := range f.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
			if d.Line == 0 {
				loc = "-"
			}
			if markdown {
				r.Printf("- `%s` **%s** %s: %s\n", loc, d.RuleID, d.Severity, d.Message)
				continue
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(styles, d.Severity),
				styles.Bold.Render(d.RuleID),
				d.Message,
			)
		}
		if stuck {
			r.Println(styles.Warning.Render("  fixes did not converge within the pass limit"))
		}
		r.Println("")
	}

	if fixing && lo.Summary.Fixed > 0 {
		r.Success(fmt.Sprintf("Fixed %d issues, %d files changed", lo.Summary.Fixed, lo.Summary.FilesChanged))
	}
	if !hasIssues {
		r.Success(fmt.Sprintf("No lint issues found in %d files", lo.Summary.FilesAnalyzed))
		return false
	}

	parts := []string{fmt.Sprintf("%d issues", lo.Summary.TotalIssues)}
	if lo.Summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", lo.Summary.Errors))
	}
	if lo.Summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", lo.Summary.Warnings))
	}
	if lo.Summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", lo.Summary.Info))
	}
	if lo.Summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", lo.Summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), lo.Summary.FilesAnalyzed)
	return true
}

func severityLabel(styles *output.Styles, sev string) string {
	label := fmt.Sprintf("%-7s", sev)
	switch sev {
	case core.SeverityError.String():
		return styles.Error.Render(label)
	case core.SeverityWarning.String():
		return styles.Warning.Render(label)
	case core.SeverityInfo.String():
		return styles.Info.Render(label)
	default:
		return styles.Muted.Render(label)
	}
}
