package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
)

// BuildInfo identifies a leaplint build.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// withVCS fills an unknown commit from the module build info stamped by
// the go tool.
func (b BuildInfo) withVCS() BuildInfo {
	if b.Commit != "" && b.Commit != "unknown" {
		return b
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			b.Commit = s.Value[:7]
		}
	}
	return b
}

// NewVersionCommand creates the version command.
func NewVersionCommand(build BuildInfo) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the leaplint version, build metadata and the registered dialects.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, build.Version)
				return
			}
			b := build.withVCS()
			_, _ = fmt.Fprintf(out, "leaplint v%s\n", b.Version)
			_, _ = fmt.Fprintf(out, "  commit:   %s\n", orUnknown(b.Commit))
			_, _ = fmt.Fprintf(out, "  built:    %s\n", orUnknown(b.Date))
			_, _ = fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "  dialects: %s\n", strings.Join(dialect.List(), ", "))
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
