package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Format   string // text, yaml, json
	CodeOnly bool   // Omit whitespace, newlines and comments
}

var parseFormats = []string{"text", "yaml", "json"}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the parse tree of a SQL file",
		Long: `Render a SQL file and print the segment tree the rules run on.

Unparsable and unlexable regions appear in the tree as their own
segments. The command fails when there are any.`,
		Example: `  # Print the tree
  leaplint parse models/orders.sql

  # As YAML, without layout segments
  leaplint parse --format yaml --code-only models/orders.sql

  # From stdin
  echo "select 1" | leaplint parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, yaml, json")
	cmd.Flags().BoolVar(&opts.CodeOnly, "code-only", false, "Omit whitespace, newlines and comments")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return parseFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, path string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd, "")
	r := cmdCtx.Renderer

	src, stdin, err := readStdin(cmd, []string{path})
	if err != nil {
		return err
	}
	name := "stdin"
	if !stdin {
		name = path
		if src, err = readFile(path); err != nil {
			return err
		}
	}

	l, err := cmdCtx.NewLinter(false)
	if err != nil {
		return err
	}
	tf, err := l.Templater().Render(cmd.Context(), src, name, cmdCtx.Cfg.Vars)
	if err != nil {
		return err
	}
	res, err := l.Engine().Parser().Parse(tf.Rendered)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "text":
		r.Printf("%s", formatTree(res.Tree, opts.CodeOnly))
	case "yaml":
		enc := yaml.NewEncoder(r.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(treeYAML(res.Tree, opts.CodeOnly)); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case "json":
		if err := r.JSON(treeJSON(res.Tree, opts.CodeOnly)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (available: %v)", opts.Format, parseFormats)
	}

	return parseProblems(r, res)
}

// parseProblems reports lex and parse errors on stderr.
func parseProblems(r *output.Renderer, res *parser.Result) error {
	if res.Clean() {
		return nil
	}
	var errs []error
	for _, e := range res.LexErrors {
		errs = append(errs, e)
	}
	for _, e := range res.ParseErrors {
		errs = append(errs, e)
	}
	for _, e := range errs {
		r.Error(e.Error())
	}
	return fmt.Errorf("%w: %w", ErrIssuesFound, errors.Join(errs...))
}

func skipSegment(s *segment.Segment, codeOnly bool) bool {
	return codeOnly && s.IsRaw() && (s.IsWhitespace() || s.IsComment())
}

func formatTree(tree *segment.Segment, codeOnly bool) string {
	return segment.FormatFunc(tree, func(s *segment.Segment) bool {
		return !skipSegment(s, codeOnly)
	})
}

// treeYAML renders a segment as a mapping from its type to its raw text
// or its children.
func treeYAML(s *segment.Segment, codeOnly bool) *yaml.Node {
	key := &yaml.Node{Kind: yaml.ScalarNode, Value: s.Type()}
	var value *yaml.Node
	if s.IsRaw() {
		style := yaml.SingleQuotedStyle
		if strings.ContainsAny(s.Raw(), "\n\r\t") {
			style = yaml.DoubleQuotedStyle
		}
		value = &yaml.Node{Kind: yaml.ScalarNode, Value: s.Raw(), Style: style}
	} else {
		value = &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range s.Children() {
			if !skipSegment(c, codeOnly) {
				value.Content = append(value.Content, treeYAML(c, codeOnly))
			}
		}
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, value}}
}

// segmentJSON is the JSON form of a segment.
type segmentJSON struct {
	Type     string         `json:"type"`
	Raw      string         `json:"raw,omitempty"`
	Children []*segmentJSON `json:"children,omitempty"`
}

func treeJSON(s *segment.Segment, codeOnly bool) *segmentJSON {
	out := &segmentJSON{Type: s.Type()}
	if s.IsRaw() {
		out.Raw = s.Raw()
		return out
	}
	for _, c := range s.Children() {
		if !skipSegment(c, codeOnly) {
			out.Children = append(out.Children, treeJSON(c, codeOnly))
		}
	}
	return out
}
