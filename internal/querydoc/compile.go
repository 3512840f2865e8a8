package querydoc

import (
	"fmt"

	"github.com/jdp/relite/internal/dialect"
	"github.com/jdp/relite/internal/queryir"
	"github.com/jdp/relite/internal/querysql"
)

// Compiled is a statement rendered for one dialect.
type Compiled struct {
	Name    string `json:"name"`
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
}

// Resolve returns the dialect for stmt. A non-empty override wins over the
// statement's own dialect key.
func Resolve(stmt *Statement, override string) (querysql.Dialect, error) {
	name := stmt.Dialect
	if override != "" {
		name = override
	}
	return dialect.Lookup(name)
}

// Compile resolves the dialect, builds the tree, validates it and renders it.
func Compile(stmt *Statement, override string) (*Compiled, error) {
	d, err := Resolve(stmt, override)
	if err != nil {
		return nil, fmt.Errorf("statement %q: %w", stmt.Name, err)
	}

	rel, err := Build(stmt, d)
	if err != nil {
		return nil, fmt.Errorf("statement %q: %w", stmt.Name, err)
	}

	if err := queryir.Validate(rel).Err(); err != nil {
		return nil, fmt.Errorf("statement %q: %w", stmt.Name, err)
	}

	sql, err := querysql.New(d).Compile(rel)
	if err != nil {
		return nil, fmt.Errorf("statement %q: %w", stmt.Name, err)
	}

	return &Compiled{Name: stmt.Name, Dialect: d.Name(), SQL: sql}, nil
}

// CompileAll compiles every statement, stopping at the first error.
func CompileAll(stmts []Statement, override string) ([]Compiled, error) {
	out := make([]Compiled, 0, len(stmts))
	for i := range stmts {
		c, err := Compile(&stmts[i], override)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}
