package queryir

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Eq builds "left = right".
func Eq(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpEq, Left: left, Right: right} }

// Ne builds "left != right".
func Ne(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpNe, Left: left, Right: right} }

// Gt builds "left > right".
func Gt(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpGt, Left: left, Right: right} }

// Ge builds "left >= right".
func Ge(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpGe, Left: left, Right: right} }

// Lt builds "left < right".
func Lt(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpLt, Left: left, Right: right} }

// Le builds "left <= right".
func Le(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpLe, Left: left, Right: right} }

// Like builds a pattern match.
func Like(left, pattern Expr) *BinaryOp {
	return &BinaryOp{Op: OpLike, Left: left, Right: pattern}
}

// NotLike builds a negated pattern match.
func NotLike(left, pattern Expr) *BinaryOp {
	return &BinaryOp{Op: OpNotLike, Left: left, Right: pattern}
}

// Is builds "left is right".
func Is(left, right Expr) *BinaryOp { return &BinaryOp{Op: OpIs, Left: left, Right: right} }

// IsNot builds "left is not right".
func IsNot(left, right Expr) *BinaryOp {
	return &BinaryOp{Op: OpIsNot, Left: left, Right: right}
}

// IsNull builds a null test against the Null marker.
func IsNull(e Expr) *BinaryOp { return Is(e, Null) }

// IsNotNull builds the complement of IsNull.
func IsNotNull(e Expr) *BinaryOp { return IsNot(e, Null) }

// In builds a membership test. At least one term is required, which the
// signature enforces; use NewIn when the terms arrive as a slice.
func In(left Expr, first Node, rest ...Node) *InOp {
	terms := make([]Node, 0, 1+len(rest))
	terms = append(terms, first)
	terms = append(terms, rest...)
	return &InOp{Left: left, Terms: terms}
}

// NewIn builds a membership test from a slice of terms.
// Returns ErrMalformedOperand if terms is empty or holds a nil term.
func NewIn(left Expr, terms []Node) (*InOp, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: in requires at least one term", ErrMalformedOperand)
	}
	for i, t := range terms {
		if t == nil {
			return nil, fmt.Errorf("%w: in term %d is nil", ErrMalformedOperand, i)
		}
	}
	return &InOp{Left: left, Terms: append([]Node(nil), terms...)}, nil
}

// InValues builds a membership test from raw Go values, promoting each one
// with Value.
func InValues(left Expr, values ...any) (*InOp, error) {
	terms := make([]Node, 0, len(values))
	for i, v := range values {
		e, err := Value(v)
		if err != nil {
			return nil, fmt.Errorf("in term %d: %w", i, err)
		}
		terms = append(terms, e)
	}
	return NewIn(left, terms)
}

// Value promotes a raw Go scalar to an expression.
//
// Strings become String, integers and floats become Number, and anything
// that already is an Expr is returned unchanged. NaN, infinities and other
// types (including nil) fail with ErrMalformedOperand.
func Value(v any) (Expr, error) {
	switch val := v.(type) {
	case Expr:
		return val, nil
	case string:
		return String(val), nil
	case int:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Number{Value: decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(val)), 0)}, nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return Number{Value: decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0)}, nil
	case float32:
		if !finite(float64(val)) {
			return nil, fmt.Errorf("%w: %v is not a finite number", ErrMalformedOperand, val)
		}
		return Number{Value: decimal.NewFromFloat32(val)}, nil
	case float64:
		if !finite(val) {
			return nil, fmt.Errorf("%w: %v is not a finite number", ErrMalformedOperand, val)
		}
		return Float(val), nil
	case decimal.Decimal:
		return Decimal(val), nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as an expression", ErrMalformedOperand, v)
	}
}

// Fields promotes bare column names to field references, keeping their order.
func Fields(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, name := range names {
		out[i] = Field{Name: name}
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Or combines boolean expressions with "or", left to right.
//
// If left is already an or-chain, the right operand (or its terms, when it
// is an or-chain too) is appended to it and left itself is returned.
// Otherwise a fresh chain holding exactly the two operands is built.
func Or(left, right Expr, more ...Expr) *AssociativeOp {
	return fold(OpOr, left, right, more)
}

// And combines boolean expressions with "and". See Or for the merge rules.
func And(left, right Expr, more ...Expr) *AssociativeOp {
	return fold(OpAnd, left, right, more)
}

// NewAssociative builds an or/and chain from a slice of terms, applying the
// same merge rules as Or and And. A single term yields a one-term chain.
// Returns ErrUnsupportedOperation if op is not a combinator and
// ErrMalformedOperand if terms is empty.
func NewAssociative(op Op, terms []Expr) (*AssociativeOp, error) {
	if op != OpOr && op != OpAnd {
		return nil, fmt.Errorf("%w: %q is not an associative operator", ErrUnsupportedOperation, op)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %s requires at least one term", ErrMalformedOperand, op)
	}
	if len(terms) == 1 {
		return &AssociativeOp{Op: op, Terms: []Expr{terms[0]}}, nil
	}
	return fold(op, terms[0], terms[1], terms[2:]), nil
}

func fold(op Op, left, right Expr, more []Expr) *AssociativeOp {
	acc := combine(op, left, right)
	for _, e := range more {
		acc = combine(op, acc, e)
	}
	return acc
}

// combine implements the associative merge for a single step.
func combine(op Op, left, right Expr) *AssociativeOp {
	chain, ok := left.(*AssociativeOp)
	if !ok || chain.Op != op {
		return &AssociativeOp{Op: op, Terms: []Expr{left, right}}
	}
	if other, ok := right.(*AssociativeOp); ok && other.Op == op {
		chain.Terms = append(chain.Terms, other.Terms...)
		return chain
	}
	chain.Terms = append(chain.Terms, right)
	return chain
}

// Not returns the logical complement of e.
//
// Only the documented pairs are supported (eq/ne, like/not like, is/is not);
// the result is a new node with the same operands. Every other kind fails
// with ErrUnsupportedOperation - there is no generic negation wrapper.
func Not(e Expr) (Expr, error) {
	op, ok := e.(*BinaryOp)
	if !ok {
		return nil, fmt.Errorf("%w: no complement for %T", ErrUnsupportedOperation, e)
	}
	c, err := op.Complement()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Complement returns the complementary operator with the same operands.
func (b *BinaryOp) Complement() (*BinaryOp, error) {
	pair, ok := complements[b.Op]
	if !ok {
		return nil, fmt.Errorf("%w: no complement for operator %q", ErrUnsupportedOperation, b.Op)
	}
	return &BinaryOp{Op: pair, Left: b.Left, Right: b.Right}, nil
}
