package querydoc

import (
	"fmt"

	"github.com/jdp/relite/internal/queryir"
	"github.com/jdp/relite/internal/querysql"
)

// Build turns a statement into a relation tree for dialect d. Dialect
// operators are resolved through d when it implements ExprBuilder.
//
// Every structural fault (missing from, empty select, unknown operator,
// wrong arity, several forms set on one expression) wraps
// queryir.ErrMalformedOperand.
func Build(stmt *Statement, d querysql.Dialect) (queryir.Relation, error) {
	b := &builder{}
	if eb, ok := d.(ExprBuilder); ok {
		b.dialect = eb
	}
	return b.statement("statement", stmt)
}

// builder carries the dialect hook through the recursion.
type builder struct {
	dialect ExprBuilder
}

func (b *builder) statement(path string, stmt *Statement) (queryir.Relation, error) {
	if stmt.From == "" {
		return nil, malformed(path+".from", "is required")
	}
	if len(stmt.Select) == 0 {
		return nil, malformed(path+".select", "needs at least one expression")
	}

	fields := make([]queryir.Expr, 0, len(stmt.Select))
	for i := range stmt.Select {
		f, err := b.expr(fmt.Sprintf("%s.select[%d]", path, i), &stmt.Select[i])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	proj, err := queryir.NewProjection(queryir.Table(stmt.From), fields)
	if err != nil {
		return nil, err
	}
	var rel queryir.Relation = proj

	if stmt.Where != nil {
		filter, err := b.expr(path+".where", stmt.Where)
		if err != nil {
			return nil, err
		}
		rel = queryir.Select(rel, filter)
	}

	if stmt.OrderBy != nil {
		key, err := b.expr(path+".order_by.key", &stmt.OrderBy.Key)
		if err != nil {
			return nil, err
		}
		rel = queryir.Order(rel, key, stmt.OrderBy.Desc)
	}

	if stmt.Limit != nil {
		if stmt.Limit.Amount < 0 || stmt.Limit.Skip < 0 {
			return nil, malformed(path+".limit", "amount and skip must not be negative")
		}
		if stmt.Limit.Skip > 0 {
			rel = queryir.LimitSkip(rel, queryir.Int(stmt.Limit.Amount), queryir.Int(stmt.Limit.Skip))
		} else {
			rel = queryir.Limit(rel, queryir.Int(stmt.Limit.Amount))
		}
	}

	return rel, nil
}

// expr builds an expression. Nested queries are rejected here; only in
// terms accept them, through node.
func (b *builder) expr(path string, e *Expr) (queryir.Expr, error) {
	n, err := b.node(path, e)
	if err != nil {
		return nil, err
	}
	ex, ok := n.(queryir.Expr)
	if !ok {
		return nil, malformed(path, "a query is only allowed as an in term")
	}
	return ex, nil
}

func (b *builder) node(path string, e *Expr) (queryir.Node, error) {
	if n := e.forms(); n != 1 {
		return nil, malformed(path, fmt.Sprintf("expected exactly one of field, literal, string, number, query, op (got %d)", n))
	}

	switch {
	case e.Field != nil:
		if *e.Field == "" {
			return nil, malformed(path+".field", "is empty")
		}
		return queryir.Field{Name: *e.Field}, nil
	case e.Literal != nil:
		return queryir.Literal{Text: *e.Literal}, nil
	case e.String != nil:
		return queryir.String(*e.String), nil
	case e.Number != nil:
		return queryir.Decimal(*e.Number), nil
	case e.Query != nil:
		return b.statement(path+".query", e.Query)
	default:
		return b.op(path, e)
	}
}

// forms counts how many expression forms are set.
func (e *Expr) forms() int {
	n := 0
	for _, set := range []bool{
		e.Field != nil, e.Literal != nil, e.String != nil,
		e.Number != nil, e.Query != nil, e.Op != "",
	} {
		if set {
			n++
		}
	}
	return n
}

func (b *builder) op(path string, e *Expr) (queryir.Node, error) {
	path = path + "." + e.Op
	op := queryir.Op(e.Op)

	switch op {
	case queryir.OpEq, queryir.OpNe, queryir.OpGt, queryir.OpGe, queryir.OpLt, queryir.OpLe,
		queryir.OpLike, queryir.OpNotLike, queryir.OpIs, queryir.OpIsNot:
		args, err := b.exprArgs(path, e.Args, 2)
		if err != nil {
			return nil, err
		}
		return &queryir.BinaryOp{Op: op, Left: args[0], Right: args[1]}, nil

	case "is_null", "is_not_null":
		args, err := b.exprArgs(path, e.Args, 1)
		if err != nil {
			return nil, err
		}
		if op == "is_null" {
			return queryir.IsNull(args[0]), nil
		}
		return queryir.IsNotNull(args[0]), nil

	case "not":
		args, err := b.exprArgs(path, e.Args, 1)
		if err != nil {
			return nil, err
		}
		out, err := queryir.Not(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return out, nil

	case queryir.OpAnd, queryir.OpOr:
		if len(e.Args) < 2 {
			return nil, malformed(path, fmt.Sprintf("takes at least 2 arguments, got %d", len(e.Args)))
		}
		args, err := b.exprArgs(path, e.Args, len(e.Args))
		if err != nil {
			return nil, err
		}
		chain, err := queryir.NewAssociative(op, args)
		if err != nil {
			return nil, err
		}
		return chain, nil

	case queryir.OpIn:
		if len(e.Args) < 2 {
			return nil, malformed(path, fmt.Sprintf("takes a left operand and at least 1 term, got %d arguments", len(e.Args)))
		}
		left, err := b.expr(fmt.Sprintf("%s.args[0]", path), &e.Args[0])
		if err != nil {
			return nil, err
		}
		terms := make([]queryir.Node, 0, len(e.Args)-1)
		for i := 1; i < len(e.Args); i++ {
			t, err := b.node(fmt.Sprintf("%s.args[%d]", path, i), &e.Args[i])
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		}
		in, err := queryir.NewIn(left, terms)
		if err != nil {
			return nil, err
		}
		return in, nil

	default:
		return b.dialectOp(path, e)
	}
}

// dialectOp offers an unknown operator to the dialect.
func (b *builder) dialectOp(path string, e *Expr) (queryir.Node, error) {
	if b.dialect == nil {
		return nil, malformed(path, "unknown operator")
	}
	args := make([]queryir.Node, 0, len(e.Args))
	for i := range e.Args {
		a, err := b.node(fmt.Sprintf("%s.args[%d]", path, i), &e.Args[i])
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	out, ok, err := b.dialect.BuildExpr(e.Op, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !ok {
		return nil, malformed(path, "unknown operator")
	}
	return out, nil
}

// exprArgs builds exactly want expression arguments.
func (b *builder) exprArgs(path string, args []Expr, want int) ([]queryir.Expr, error) {
	if len(args) != want {
		return nil, malformed(path, fmt.Sprintf("takes %d arguments, got %d", want, len(args)))
	}
	out := make([]queryir.Expr, 0, len(args))
	for i := range args {
		e, err := b.expr(fmt.Sprintf("%s.args[%d]", path, i), &args[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func malformed(path, msg string) error {
	return fmt.Errorf("%w: %s %s", queryir.ErrMalformedOperand, path, msg)
}
