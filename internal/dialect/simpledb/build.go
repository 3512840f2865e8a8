package simpledb

import (
	"fmt"

	"github.com/jdp/relite/internal/queryir"
)

// BuildExpr builds the SimpleDB expression kinds from a query document
// operator. It returns ok=false for operators it does not know.
func (Dialect) BuildExpr(op string, args []queryir.Node) (queryir.Expr, bool, error) {
	switch op {
	case "between":
		exprs, err := exprArgs(op, args, 3)
		if err != nil {
			return nil, true, err
		}
		return Between(exprs[0], exprs[1], exprs[2]), true, nil
	case "every":
		exprs, err := exprArgs(op, args, 1)
		if err != nil {
			return nil, true, err
		}
		field, ok := exprs[0].(queryir.Field)
		if !ok {
			return nil, true, fmt.Errorf("%w: every takes a field, got %T", queryir.ErrMalformedOperand, exprs[0])
		}
		return Every(field), true, nil
	case string(OpIntersection):
		exprs, err := exprArgs(op, args, 2)
		if err != nil {
			return nil, true, err
		}
		return Intersection(exprs[0], exprs[1]), true, nil
	case "item_name":
		if _, err := exprArgs(op, args, 0); err != nil {
			return nil, true, err
		}
		return ItemName(), true, nil
	case "count":
		if _, err := exprArgs(op, args, 0); err != nil {
			return nil, true, err
		}
		return Count(), true, nil
	case "star":
		if _, err := exprArgs(op, args, 0); err != nil {
			return nil, true, err
		}
		return Star(), true, nil
	default:
		return nil, false, nil
	}
}

// exprArgs checks arity and that every argument is an expression.
func exprArgs(op string, args []queryir.Node, want int) ([]queryir.Expr, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", queryir.ErrMalformedOperand, op, want, len(args))
	}
	exprs := make([]queryir.Expr, len(args))
	for i, a := range args {
		e, ok := a.(queryir.Expr)
		if !ok || queryir.IsNil(a) {
			return nil, fmt.Errorf("%w: %s argument %d is not an expression", queryir.ErrMalformedOperand, op, i)
		}
		exprs[i] = e
	}
	return exprs, nil
}
