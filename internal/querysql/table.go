package querysql

import "github.com/jdp/relite/internal/queryir"

// Table is a fluent statement builder bound to one dialect.
//
// Every call wraps the relation built so far (or the bare source, on the
// first call) and returns a new Table of the same dialect type, so a chain
// started on a SimpleDB domain keeps compiling with SimpleDB rules. The
// receiver is never modified.
//
// Example:
//
//	users := querysql.NewTable(fql.Dialect{}, "user")
//	uid := users.Column("uid")
//	stmt := users.Select(users.Column("name")).Where(queryir.Eq(uid, fql.Me()))
//	sql, err := stmt.SQL() // select name from user where uid = me()
type Table[D Dialect] struct {
	dialect D
	source  *queryir.Source
}

// NewTable returns a bare table reference named name.
func NewTable[D Dialect](dialect D, name string) Table[D] {
	return NewTableFrom(dialect, queryir.Field{Name: name})
}

// NewTableFrom returns a bare table reference whose name is an arbitrary
// expression, which allows dialect pseudo-fields as sources.
func NewTableFrom[D Dialect](dialect D, name queryir.Expr) Table[D] {
	return Table[D]{
		dialect: dialect,
		source:  &queryir.Source{Name: name},
	}
}

// Dialect returns the dialect the table is bound to.
func (t Table[D]) Dialect() D {
	return t.dialect
}

// Column returns a field reference for name.
func (t Table[D]) Column(name string) queryir.Field {
	return queryir.Field{Name: name}
}

// Relation returns the tree built so far. A bare table returns its source.
func (t Table[D]) Relation() queryir.Relation {
	return t.source
}

// Select projects the given fields.
func (t Table[D]) Select(first queryir.Expr, rest ...queryir.Expr) Table[D] {
	return t.wrap(queryir.Project(t.base(), first, rest...))
}

// SelectColumns projects the named columns.
func (t Table[D]) SelectColumns(first string, rest ...string) Table[D] {
	fields := queryir.Fields(append([]string{first}, rest...)...)
	return t.Select(fields[0], fields[1:]...)
}

// Where filters by expr.
func (t Table[D]) Where(filter queryir.Expr) Table[D] {
	return t.wrap(queryir.Select(t.base(), filter))
}

// OrderBy sorts ascending by key.
func (t Table[D]) OrderBy(key queryir.Expr) Table[D] {
	return t.wrap(queryir.Order(t.base(), key, false))
}

// OrderByColumn sorts ascending by the named column.
func (t Table[D]) OrderByColumn(name string) Table[D] {
	return t.OrderBy(queryir.Fields(name)[0])
}

// OrderByDesc sorts descending by key.
func (t Table[D]) OrderByDesc(key queryir.Expr) Table[D] {
	return t.wrap(queryir.Order(t.base(), key, true))
}

// Limit caps the result to amount rows.
func (t Table[D]) Limit(amount int64) Table[D] {
	return t.wrap(queryir.Limit(t.base(), queryir.Int(amount)))
}

// LimitSkip caps the result to amount rows after skipping skip rows.
func (t Table[D]) LimitSkip(amount, skip int64) Table[D] {
	return t.wrap(queryir.LimitSkip(t.base(), queryir.Int(amount), queryir.Int(skip)))
}

// SQL compiles the statement with the table's dialect.
func (t Table[D]) SQL() (string, error) {
	return New(t.dialect).Compile(t.source)
}

// base returns the relation the next call builds upon: the attached relation,
// or a copy of the bare source.
func (t Table[D]) base() queryir.Relation {
	if t.source.Upstream != nil {
		return t.source.Upstream
	}
	return &queryir.Source{Name: t.source.Name}
}

func (t Table[D]) wrap(rel queryir.Relation) Table[D] {
	return Table[D]{
		dialect: t.dialect,
		source:  &queryir.Source{Name: t.source.Name, Upstream: rel},
	}
}
