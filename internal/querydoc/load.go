package querydoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// LoadError reports a document that could not be loaded, with the CUE
// position when one is available.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadFile reads statements from a .yaml, .yml or .cue file.
func LoadFile(path string) ([]Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return LoadYAML(bytes.NewReader(data))
	case ".cue":
		return LoadCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported query file extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}

// LoadYAML decodes every document of a YAML stream into a statement.
// Unknown keys are rejected.
func LoadYAML(r io.Reader) ([]Statement, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Reject unknown fields

	var stmts []Statement
	for {
		var stmt Statement
		err := decoder.Decode(&stmt)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", len(stmts), err)
		}
		stmts = append(stmts, stmt)
	}

	if err := validateStatements(stmts); err != nil {
		return nil, err
	}
	return stmts, nil
}

// LoadCUE evaluates a CUE source and decodes every field of its top-level
// query struct into a statement, in declaration order.
func LoadCUE(src []byte, filename string) ([]Statement, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	queryVal := v.LookupPath(cue.ParsePath("query"))
	if !queryVal.Exists() {
		return nil, &LoadError{Field: "query", Message: "no query struct found", Pos: v.Pos()}
	}

	iter, err := queryVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var stmts []Statement
	for iter.Next() {
		label := iter.Selector().String()
		stmt, err := decodeCUEStatement(iter.Value())
		if err != nil {
			return nil, &LoadError{
				Field:   "query." + label,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		if stmt.Name == "" {
			stmt.Name = label
		}
		stmts = append(stmts, stmt)
	}

	if err := validateStatements(stmts); err != nil {
		return nil, err
	}
	return stmts, nil
}

// decodeCUEStatement goes through JSON so CUE and YAML share one schema.
func decodeCUEStatement(v cue.Value) (Statement, error) {
	var stmt Statement
	data, err := v.MarshalJSON()
	if err != nil {
		return stmt, formatCUEError(err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&stmt); err != nil {
		return stmt, err
	}
	return stmt, nil
}

// validateStatements checks the top-level requirements of a document set.
func validateStatements(stmts []Statement) error {
	if len(stmts) == 0 {
		return fmt.Errorf("no statements found")
	}
	seen := make(map[string]int, len(stmts))
	for i, s := range stmts {
		if s.Name == "" {
			return fmt.Errorf("statement %d: name is required", i)
		}
		if prev, ok := seen[s.Name]; ok {
			return fmt.Errorf("statement %d: duplicate name %q (first used by statement %d)", i, s.Name, prev)
		}
		seen[s.Name] = i
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
