package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jdp/relite/internal/ir"
	"github.com/jdp/relite/internal/store"
)

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect saved statements",
		Long: `Inspect statements saved with "relite compile --save".

The catalog keeps the latest text of each named statement together with
its fingerprint and revision. Statements are never executed.`,
	}

	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogShowCommand(rootOpts))

	return cmd
}

func newCatalogListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved statements",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			// --dialect narrows the listing
			stmts, err := st.List(cmd.Context(), opts.Dialect)
			if err != nil {
				return formatter.Fail(ExitCommandError, err)
			}

			if formatter.Format == "json" {
				return formatter.Success(stmts)
			}

			if len(stmts) == 0 {
				fmt.Fprintln(formatter.Writer, "No statements saved.")
				return nil
			}

			tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIALECT\tREVISION\tFINGERPRINT")
			for _, s := range stmts {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, s.Dialect, s.Revision, ir.ShortID(s.Fingerprint))
			}
			return tw.Flush()
		},
	}
}

func newCatalogShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show one saved statement",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			s, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return formatter.Fail(ExitCommandError, err)
			}

			if formatter.Format == "json" {
				return formatter.Success(s)
			}

			w := formatter.Writer
			fmt.Fprintf(w, "%s [%s] revision %d\n", s.Name, s.Dialect, s.Revision)
			fmt.Fprintf(w, "  id:          %s\n", s.ID)
			fmt.Fprintf(w, "  fingerprint: %s\n", s.Fingerprint)
			if s.Source != "" {
				fmt.Fprintf(w, "  source:      %s\n", s.Source)
			}
			fmt.Fprintf(w, "\n%s\n", s.SQL)
			return nil
		},
	}
}

// openCatalog opens the catalog named by --db, reporting failures.
func openCatalog(opts *RootOptions, formatter *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.dbPath())
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeCatalog, err)
	}
	opts.logger().Debug("opened catalog", "path", opts.dbPath())
	return st, nil
}
