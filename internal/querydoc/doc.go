// Package querydoc loads declarative query statements from YAML or CUE
// documents and builds them into query trees.
//
// # Document Format
//
// One statement per YAML document (multi-document streams are allowed):
//
//	name: recent_books
//	dialect: simpledb
//	from: mydomain
//	select:
//	  - op: star
//	where:
//	  op: lt
//	  args: [{field: Year}, {string: "1980"}]
//	order_by: {key: {field: Year}}
//	limit: {amount: 2}
//
// In CUE, every field of the top-level query struct is a statement; the
// label is used as the name when name is omitted:
//
//	query: recent_books: {
//	    dialect: "simpledb"
//	    from:    "mydomain"
//	    select: [{op: "star"}]
//	}
//
// # Expressions
//
// An expression sets exactly one of field, literal, string, number, query
// or op. A query (a nested statement) is only accepted as an in term.
//
// Generic operators: eq, ne, gt, ge, lt, le, like, not_like, is, is_not,
// is_null, is_not_null, in, and, or, not. Any other operator is offered to
// the dialect through ExprBuilder.
package querydoc
