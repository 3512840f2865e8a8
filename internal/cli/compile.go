package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdp/relite/internal/ir"
	"github.com/jdp/relite/internal/querydoc"
	"github.com/jdp/relite/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	Save   bool   // save compiled statements to the catalog
	Watch  bool   // recompile whenever the file changes
}

// CompilationResult holds the statements compiled from one file.
type CompilationResult struct {
	File       string              `json:"file"`
	Statements []CompiledStatement `json:"statements"`
}

// CompiledStatement is one compiled statement with its fingerprint and,
// after --save, its catalog revision.
type CompiledStatement struct {
	querydoc.Compiled
	Fingerprint string `json:"fingerprint"`
	Revision    int64  `json:"revision,omitempty"`
	Changed     bool   `json:"changed,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile query documents to query strings",
		Long: `Compile the statements of a YAML or CUE query document.

Each statement is compiled with its own dialect key unless --dialect
overrides it. With --save the results are upserted into the statement
catalog; with --watch the file is recompiled on every change until
interrupted.

Examples:
  relite compile queries.yaml
  relite compile queries.cue --dialect simpledb
  relite compile queries.yaml --save --db catalog.db
  relite compile queries.yaml --watch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save compiled statements to the catalog")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "recompile when the file changes")

	return cmd
}

func runCompile(ctx context.Context, opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	logger := opts.logger()

	if err := compileAndReport(ctx, opts, path, formatter); err != nil && !opts.Watch {
		return err
	}
	if !opts.Watch {
		return nil
	}

	logger.Info("watching query file", "path", path)
	err := watchFile(ctx, path, logger, func() {
		// Failures are already reported; keep watching
		_ = compileAndReport(ctx, opts, path, formatter)
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, err)
	}
	return nil
}

// compileAndReport compiles path once and writes the outcome.
func compileAndReport(ctx context.Context, opts *CompileOptions, path string, formatter *OutputFormatter) error {
	logger := opts.logger()

	result, err := compileFile(ctx, opts, path)
	if err != nil {
		logger.Debug("compilation failed", "path", path, "error", err)
		return formatter.Fail(ExitCommandError, err)
	}

	for _, s := range result.Statements {
		logger.Debug("compiled statement", "name", s.Name, "dialect", s.Dialect, "fingerprint", ir.ShortID(s.Fingerprint))
	}

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
		}
	}

	return outputCompileSuccess(formatter, result, opts)
}

// compileFile loads, compiles and optionally saves every statement of path.
func compileFile(ctx context.Context, opts *CompileOptions, path string) (*CompilationResult, error) {
	stmts, err := querydoc.LoadFile(path)
	if err != nil {
		return nil, err
	}

	compiled, err := querydoc.CompileAll(stmts, opts.Dialect)
	if err != nil {
		return nil, err
	}

	result := &CompilationResult{
		File:       path,
		Statements: make([]CompiledStatement, 0, len(compiled)),
	}
	for _, c := range compiled {
		fingerprint, err := ir.StatementID(c.Dialect, c.SQL)
		if err != nil {
			return nil, fmt.Errorf("statement %q: %w", c.Name, err)
		}
		result.Statements = append(result.Statements, CompiledStatement{
			Compiled:    c,
			Fingerprint: fingerprint,
		})
	}

	if opts.Save {
		if err := saveStatements(ctx, opts, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// saveStatements upserts every compiled statement into the catalog.
func saveStatements(ctx context.Context, opts *CompileOptions, result *CompilationResult) error {
	st, err := store.Open(opts.dbPath())
	if err != nil {
		return err
	}
	defer st.Close()

	source, err := filepath.Abs(result.File)
	if err != nil {
		source = result.File
	}

	for i := range result.Statements {
		s := &result.Statements[i]
		res, err := st.Put(ctx, s.Name, s.Dialect, s.SQL, source)
		if err != nil {
			return err
		}
		s.Revision = res.Statement.Revision
		s.Changed = res.Changed
		opts.logger().Info("saved statement", "name", s.Name, "revision", s.Revision, "changed", s.Changed)
	}
	return nil
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, opts *CompileOptions) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %d statement(s) from %s\n\n", len(result.Statements), result.File)
	for _, s := range result.Statements {
		fmt.Fprintf(w, "%s [%s]\n", s.Name, s.Dialect)
		fmt.Fprintf(w, "  %s\n", s.SQL)
		if opts.Save {
			fmt.Fprintf(w, "  revision %d (%s)\n", s.Revision, ir.ShortID(s.Fingerprint))
		}
	}

	if opts.Save {
		fmt.Fprintf(w, "\nSaved to %s\n", opts.dbPath())
	}
	if opts.Output != "" {
		fmt.Fprintf(w, "\nWrote results to %s\n", opts.Output)
	}

	return nil
}

// writeResultToFile writes the compilation result as indented JSON.
func writeResultToFile(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
