package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List available SQL dialects",
		Long: `List the registered SQL dialects and the dialects they extend.

A dialect inherits lexer rules, grammar and keywords from its parent and
overrides what differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd, format).Renderer
			infos, err := dialectInfos()
			if err != nil {
				return err
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(infos)
			}

			rows := make([][]string, len(infos))
			for i, d := range infos {
				rows[i] = []string{d.Name, d.Extends, strings.Join(d.Chain, " → ")}
			}
			r.Header(1, "Dialects")
			r.Table([]string{"Name", "Extends", "Resolution order"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func dialectInfos() ([]output.DialectInfo, error) {
	names := dialect.List()
	infos := make([]output.DialectInfo, 0, len(names))
	for _, name := range names {
		res, err := dialect.Resolve(name)
		if err != nil {
			return nil, err
		}
		chain := res.Chain()
		info := output.DialectInfo{Name: name, Chain: chain}
		if len(chain) > 1 {
			info.Extends = chain[1]
		}
		infos = append(infos, info)
	}
	return infos, nil
}
