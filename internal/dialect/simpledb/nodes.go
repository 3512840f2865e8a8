package simpledb

import "github.com/jdp/relite/internal/queryir"

// BetweenOp tests whether Left lies in the inclusive range [Lower, Upper].
type BetweenOp struct {
	queryir.Extension
	Left  queryir.Expr
	Lower queryir.Expr
	Upper queryir.Expr
}

// Operands returns left, lower and upper, in that order.
func (b *BetweenOp) Operands() []queryir.Node {
	return []queryir.Node{b.Left, b.Lower, b.Upper}
}

// Between builds a range test.
func Between(left, lower, upper queryir.Expr) *BetweenOp {
	return &BetweenOp{Left: left, Lower: lower, Upper: upper}
}

// EveryField makes a comparison hold for every value of a multi-valued
// attribute instead of any of them.
type EveryField struct {
	queryir.Extension
	Field queryir.Field
}

// Operands returns the wrapped field.
func (e EveryField) Operands() []queryir.Node {
	return []queryir.Node{e.Field}
}

// Every wraps field.
func Every(field queryir.Field) EveryField {
	return EveryField{Field: field}
}

// PseudoField is a built-in selectable that is rendered verbatim, never quoted.
type PseudoField struct {
	queryir.Extension
	Text string
}

// ItemName is the item name pseudo-field.
func ItemName() PseudoField { return PseudoField{Text: "itemName()"} }

// Count is the row count pseudo-field.
func Count() PseudoField { return PseudoField{Text: "count(*)"} }

// Star selects every attribute.
func Star() queryir.Literal { return queryir.Literal{Text: "*"} }

// Intersection intersects the items matched by left and right.
func Intersection(left, right queryir.Expr) *queryir.BinaryOp {
	return &queryir.BinaryOp{Op: OpIntersection, Left: left, Right: right}
}
