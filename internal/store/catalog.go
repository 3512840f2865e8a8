package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/jdp/relite/internal/ir"
)

// ErrNotFound is returned when no statement has the requested name.
var ErrNotFound = errors.New("statement not found")

// Statement is one catalog row.
type Statement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Dialect     string `json:"dialect"`
	SQL         string `json:"sql"`
	Fingerprint string `json:"fingerprint"`
	Source      string `json:"source,omitempty"`
	Revision    int64  `json:"revision"`
}

// PutResult describes what Put did.
type PutResult struct {
	Statement Statement

	// Changed is false when the stored fingerprint already matched.
	Changed bool
}

var statementColumns = []string{"id", "name", "dialect", "sql", "fingerprint", "source", "revision"}

// Put saves a compiled statement under name.
//
// A new name is inserted at revision 1 with a fresh UUIDv7 id. An existing
// name keeps its id; its revision is bumped only when the fingerprint
// (dialect + text) changed. Source is refreshed either way.
func (s *Store) Put(ctx context.Context, name, dialect, text, source string) (PutResult, error) {
	if name == "" {
		return PutResult{}, fmt.Errorf("put statement: name is required")
	}

	fingerprint, err := ir.StatementID(dialect, text)
	if err != nil {
		return PutResult{}, fmt.Errorf("put statement %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PutResult{}, fmt.Errorf("put statement %q: begin: %w", name, err)
	}
	defer tx.Rollback()

	existing, err := getStatement(ctx, tx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		id, err := uuid.NewV7()
		if err != nil {
			return PutResult{}, fmt.Errorf("put statement %q: generate id: %w", name, err)
		}
		stmt := Statement{
			ID:          id.String(),
			Name:        name,
			Dialect:     dialect,
			SQL:         text,
			Fingerprint: fingerprint,
			Source:      source,
			Revision:    1,
		}
		query, args, err := sq.Insert("statements").
			Columns(statementColumns...).
			Values(stmt.ID, stmt.Name, stmt.Dialect, stmt.SQL, stmt.Fingerprint, stmt.Source, stmt.Revision).
			ToSql()
		if err != nil {
			return PutResult{}, fmt.Errorf("put statement %q: build insert: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return PutResult{}, fmt.Errorf("put statement %q: insert: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return PutResult{}, fmt.Errorf("put statement %q: commit: %w", name, err)
		}
		return PutResult{Statement: stmt, Changed: true}, nil

	case err != nil:
		return PutResult{}, fmt.Errorf("put statement %q: %w", name, err)
	}

	changed := existing.Fingerprint != fingerprint
	update := sq.Update("statements").
		Set("source", source).
		Where(sq.Eq{"id": existing.ID})
	if changed {
		update = update.
			Set("dialect", dialect).
			Set("sql", text).
			Set("fingerprint", fingerprint).
			Set("revision", sq.Expr("revision + 1"))
		existing.Dialect = dialect
		existing.SQL = text
		existing.Fingerprint = fingerprint
		existing.Revision++
	}
	existing.Source = source

	query, args, err := update.ToSql()
	if err != nil {
		return PutResult{}, fmt.Errorf("put statement %q: build update: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return PutResult{}, fmt.Errorf("put statement %q: update: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return PutResult{}, fmt.Errorf("put statement %q: commit: %w", name, err)
	}

	return PutResult{Statement: *existing, Changed: changed}, nil
}

// Get returns the statement saved under name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (*Statement, error) {
	stmt, err := getStatement(ctx, s.db, name)
	if err != nil {
		return nil, fmt.Errorf("get statement %q: %w", name, err)
	}
	return stmt, nil
}

// List returns every saved statement ordered by name. A non-empty dialect
// restricts the list to that dialect.
func (s *Store) List(ctx context.Context, dialect string) ([]Statement, error) {
	builder := sq.Select(statementColumns...).
		From("statements").
		OrderBy("name ASC")
	if dialect != "" {
		builder = builder.Where(sq.Eq{"dialect": dialect})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("list statements: build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()

	stmts := []Statement{}
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("list statements: %w", err)
		}
		stmts = append(stmts, *stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	return stmts, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func getStatement(ctx context.Context, q queryer, name string) (*Statement, error) {
	query, args, err := sq.Select(statementColumns...).
		From("statements").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	stmt, err := scanStatement(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return stmt, err
}

func scanStatement(row scanner) (*Statement, error) {
	var stmt Statement
	err := row.Scan(
		&stmt.ID,
		&stmt.Name,
		&stmt.Dialect,
		&stmt.SQL,
		&stmt.Fingerprint,
		&stmt.Source,
		&stmt.Revision,
	)
	if err != nil {
		return nil, err
	}
	return &stmt, nil
}
