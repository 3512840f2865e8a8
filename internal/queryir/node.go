package queryir

import "github.com/shopspring/decimal"

// Node is any element of a query tree.
//
// This is a sealed interface - only types in this package implement it
// directly. Dialect packages reach it by embedding Extension.
type Node interface {
	queryNode() // Marker method - seals interface to this package
}

// Expr is a node that evaluates to a scalar or boolean value.
//
// Expression kinds:
//   - Field: a named column
//   - Literal: pre-rendered text inserted verbatim
//   - String, Number: raw scalar values
//   - BinaryOp, InOp: two-sided comparisons and membership tests
//   - AssociativeOp: or/and chains
//   - anything embedding Extension (dialect-specific kinds)
type Expr interface {
	Node
	exprNode()
}

// Relation is a node that describes a queryable source or a transformation
// of one. Every relation except Source wraps exactly one upstream relation.
type Relation interface {
	Node
	relationNode()
}

// Extension is embedded by expression kinds declared outside this package.
//
// Example (SimpleDB range test):
//
//	type Between struct {
//	    queryir.Extension
//	    Left, Lower, Upper queryir.Expr
//	}
//
// The generic compiler never renders an extension itself; it hands it to the
// dialect's override hook and reports ErrUnsupportedNode when nobody claims it.
type Extension struct{}

func (Extension) queryNode() {}
func (Extension) exprNode()  {}

// Op identifies the kind of an operator node.
//
// Op is an open string type so dialects can declare their own binary forms
// (and give them a token) without touching this package. The string value is
// also the operator's name in query documents.
type Op string

// Generic operator kinds.
const (
	OpEq      Op = "eq"
	OpNe      Op = "ne"
	OpGt      Op = "gt"
	OpGe      Op = "ge"
	OpLt      Op = "lt"
	OpLe      Op = "le"
	OpLike    Op = "like"
	OpNotLike Op = "not_like"
	OpIs      Op = "is"
	OpIsNot   Op = "is_not"
	OpIn      Op = "in"
	OpOr      Op = "or"
	OpAnd     Op = "and"
)

// complements lists the operator kinds that have a logical complement.
// The relation is symmetric.
var complements = map[Op]Op{
	OpEq:      OpNe,
	OpNe:      OpEq,
	OpLike:    OpNotLike,
	OpNotLike: OpLike,
	OpIs:      OpIsNot,
	OpIsNot:   OpIs,
}

// Field references a named column. Identity is the name.
type Field struct {
	Name string
}

func (Field) queryNode() {}
func (Field) exprNode()  {}

// Literal is pre-rendered text inserted into the output verbatim, never
// quoted or escaped (e.g. "*", "count(*)", "me()").
type Literal struct {
	Text string
}

func (Literal) queryNode() {}
func (Literal) exprNode()  {}

// Null is the literal null marker used by IsNull and IsNotNull.
var Null = Literal{Text: "null"}

// String is a raw string value. Compilers render it through the dialect's
// string quoting policy.
type String string

func (String) queryNode() {}
func (String) exprNode()  {}

// Number is a raw numeric value, rendered as its canonical decimal text
// without quoting.
type Number struct {
	Value decimal.Decimal
}

func (Number) queryNode() {}
func (Number) exprNode()  {}

// Int returns a Number holding n.
func Int(n int64) Number {
	return Number{Value: decimal.NewFromInt(n)}
}

// Float returns a Number holding f. It panics if f is NaN or infinite;
// Value reports those as ErrMalformedOperand instead.
func Float(f float64) Number {
	return Number{Value: decimal.NewFromFloat(f)}
}

// Decimal returns a Number holding d.
func Decimal(d decimal.Decimal) Number {
	return Number{Value: d}
}

// String returns the canonical decimal text of the number.
func (n Number) String() string {
	return n.Value.String()
}

// BinaryOp is an operator with exactly two operand expressions.
type BinaryOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (*BinaryOp) queryNode() {}
func (*BinaryOp) exprNode()  {}

// InOp is a membership test. Terms is a non-empty ordered sequence; a term
// may be a relation, in which case it is rendered as a nested query.
type InOp struct {
	Left  Expr
	Terms []Node
}

func (*InOp) queryNode() {}
func (*InOp) exprNode()  {}

// AssociativeOp is an or/and chain over an ordered list of terms.
//
// Unlike every other node it is mutable: combining it again with the same
// combinator appends to Terms instead of nesting. See Or and And.
type AssociativeOp struct {
	Op    Op
	Terms []Expr
}

func (*AssociativeOp) queryNode() {}
func (*AssociativeOp) exprNode()  {}

// Source is a bare table (or domain) reference.
//
// Upstream is only set by the fluent builder layer: it holds the relation the
// source is currently equivalent to. A compiler renders Upstream when present
// and the bare Name otherwise.
type Source struct {
	Name     Expr
	Upstream Relation
}

func (*Source) queryNode()    {}
func (*Source) relationNode() {}

// Projection selects an ordered list of expressions from its upstream.
type Projection struct {
	Upstream Relation
	Fields   []Expr
}

func (*Projection) queryNode()    {}
func (*Projection) relationNode() {}

// Selection filters its upstream by one expression.
type Selection struct {
	Upstream Relation
	Filter   Expr
}

func (*Selection) queryNode()    {}
func (*Selection) relationNode() {}

// Ordering sorts its upstream by one key.
type Ordering struct {
	Upstream Relation
	Key      Expr
	Desc     bool
}

func (*Ordering) queryNode()    {}
func (*Ordering) relationNode() {}

// Limitation caps the number of rows of its upstream. Skip is optional
// (nil = no offset).
type Limitation struct {
	Upstream Relation
	Amount   Expr
	Skip     Expr
}

func (*Limitation) queryNode()    {}
func (*Limitation) relationNode() {}
