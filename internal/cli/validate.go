package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdp/relite/internal/querydoc"
	"github.com/jdp/relite/internal/queryir"
)

// ValidationResult holds validation results for one file.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Statements []StatementReport `json:"statements"`
}

// StatementReport lists the problems found in one statement.
type StatementReport struct {
	Name     string   `json:"name"`
	Dialect  string   `json:"dialect,omitempty"`
	Code     string   `json:"code,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate query documents without rendering them",
		Long: `Validate the statements of a YAML or CUE query document.

Every statement is resolved against its dialect, built into a query tree
and checked for malformed operands. Unlike compile, all statements are
checked and every problem is reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	logger := opts.logger()

	stmts, err := querydoc.LoadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, err)
	}
	logger.Debug("loaded query document", "path", path, "statements", len(stmts))

	result := ValidationResult{Valid: true, Statements: make([]StatementReport, 0, len(stmts))}
	for i := range stmts {
		report := validateStatement(&stmts[i], opts.Dialect)
		if len(report.Problems) > 0 {
			result.Valid = false
		}
		result.Statements = append(result.Statements, report)
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// validateStatement builds one statement and collects its problems.
func validateStatement(stmt *querydoc.Statement, override string) StatementReport {
	report := StatementReport{Name: stmt.Name}

	d, err := querydoc.Resolve(stmt, override)
	if err != nil {
		report.Code = MapErrorToCode(err)
		report.Problems = []string{err.Error()}
		return report
	}
	report.Dialect = d.Name()

	rel, err := querydoc.Build(stmt, d)
	if err != nil {
		report.Code = MapErrorToCode(err)
		report.Problems = []string{err.Error()}
		return report
	}

	if v := queryir.Validate(rel); !v.Valid {
		report.Code = ErrCodeMalformedOperand
		report.Problems = v.Problems
	}
	return report
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d statement(s) valid\n", len(result.Statements))
	return nil
}

// outputValidationErrors outputs every invalid statement.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	invalid := 0
	var first *StatementReport
	for i := range result.Statements {
		if len(result.Statements[i].Problems) > 0 {
			invalid++
			if first == nil {
				first = &result.Statements[i]
			}
		}
	}

	if formatter.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Problems[0],
			},
		}); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d statement(s)", invalid))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, s := range result.Statements {
		if len(s.Problems) == 0 {
			continue
		}
		fmt.Fprintf(formatter.Writer, "statement %q\n", s.Name)
		for _, p := range s.Problems {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", s.Code, p)
		}
		fmt.Fprintln(formatter.Writer)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d statement(s)", invalid))
}
