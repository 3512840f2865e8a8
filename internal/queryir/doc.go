// Package queryir provides the in-memory query tree for relite.
//
// The tree has two halves. Relations describe a queryable source and the
// transformations stacked on it (projection, selection, ordering,
// limitation). Expressions describe the scalar and boolean values used in
// field lists, filters and sort keys.
//
// ARCHITECTURE:
//
//	[builders] → [query tree] → [querysql.Compiler + Dialect] → query string
//
// The package has no knowledge of any dialect. Dialect packages add their own
// expression kinds by embedding Extension, and their own binary forms by
// declaring new Op values.
//
// SEALED INTERFACES:
//
// Node, Expr and Relation are sealed with marker methods. The only way for a
// type outside this package to satisfy Expr is to embed Extension, so the
// generic compiler can switch exhaustively over the core kinds and hand
// everything else to the dialect override.
//
//	switch n := node.(type) {
//	case *Selection:
//	    // render upstream, then " where <filter>"
//	case *BinaryOp:
//	    // render "<left> <token> <right>"
//	default:
//	    // dialect extension or unsupported node
//	}
//
// ASSOCIATIVE MERGE:
//
// Or and And are the only builders that may mutate an existing node. When the
// left operand is already an AssociativeOp of the same kind, the right operand
// is appended to its terms and the same pointer is returned. Callers must use
// the returned node going forward.
//
// ERRORS:
//
// ErrUnsupportedNode, ErrUnsupportedOperation and ErrMalformedOperand form the
// error taxonomy shared with the compiler. They are always wrapped, so use
// errors.Is to classify them.
package queryir
