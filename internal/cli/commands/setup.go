package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// ErrIssuesFound is returned by commands that found violations or files
// that could not be processed. It maps to exit status 1.
var ErrIssuesFound = errors.New("lint issues found")

// StdinPath reads SQL from standard input.
const StdinPath = "-"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
// A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// NewLinter creates a linter from the loaded configuration.
func (c *CommandContext) NewLinter(fix bool) (*linter.Linter, error) {
	return linter.New(c.Cfg.LinterConfig(fix), linter.WithLogger(c.Logger))
}

// readStdin reports whether paths asks for standard input, and reads it.
func readStdin(cmd *cobra.Command, paths []string) (string, bool, error) {
	if !slices.Contains(paths, StdinPath) {
		return "", false, nil
	}
	if len(paths) > 1 {
		return "", true, fmt.Errorf("%q cannot be combined with other paths", StdinPath)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", true, fmt.Errorf("read stdin: %w", err)
	}
	return string(data), true, nil
}

// defaultPaths lints the working directory when no paths are given.
func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
