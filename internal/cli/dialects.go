package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdp/relite/internal/dialect"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name      string   `json:"name"`
	Operators []string `json:"operators,omitempty"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dialects",
		Short:         "List registered dialects",
		Long:          "List the registered dialects and the operators each adds to the generic table.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			infos, err := listDialects()
			if err != nil {
				return formatter.Fail(ExitCommandError, err)
			}

			if formatter.Format == "json" {
				return formatter.Success(infos)
			}

			for _, info := range infos {
				if len(info.Operators) == 0 {
					fmt.Fprintln(formatter.Writer, info.Name)
					continue
				}
				fmt.Fprintf(formatter.Writer, "%s (%s)\n", info.Name, strings.Join(info.Operators, ", "))
			}
			return nil
		},
	}
}

// listDialects returns every registered dialect with its extra operators
// in sorted order.
func listDialects() ([]DialectInfo, error) {
	names := dialect.Names()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, err := dialect.Lookup(name)
		if err != nil {
			return nil, err
		}

		var ops []string
		for _, op := range slices.Sorted(maps.Keys(d.Operators())) {
			ops = append(ops, string(op))
		}
		infos = append(infos, DialectInfo{Name: name, Operators: ops})
	}
	return infos, nil
}
