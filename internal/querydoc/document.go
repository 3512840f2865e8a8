package querydoc

import (
	"github.com/shopspring/decimal"

	"github.com/jdp/relite/internal/queryir"
)

// Statement is one declarative query.
type Statement struct {
	// Name identifies the statement in catalogs and output. Required at the
	// top level, ignored for nested queries.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Dialect selects the compiler. Empty means generic.
	Dialect string `yaml:"dialect,omitempty" json:"dialect,omitempty"`

	// From is the table or domain name.
	From string `yaml:"from" json:"from"`

	// Select lists the projected expressions, at least one.
	Select []Expr `yaml:"select" json:"select"`

	Where   *Expr  `yaml:"where,omitempty" json:"where,omitempty"`
	OrderBy *Order `yaml:"order_by,omitempty" json:"order_by,omitempty"`
	Limit   *Limit `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Expr is one expression. Exactly one form must be set.
type Expr struct {
	Field   *string          `yaml:"field,omitempty" json:"field,omitempty"`
	Literal *string          `yaml:"literal,omitempty" json:"literal,omitempty"`
	String  *string          `yaml:"string,omitempty" json:"string,omitempty"`
	Number  *decimal.Decimal `yaml:"number,omitempty" json:"number,omitempty"`
	Query   *Statement       `yaml:"query,omitempty" json:"query,omitempty"`

	Op   string `yaml:"op,omitempty" json:"op,omitempty"`
	Args []Expr `yaml:"args,omitempty" json:"args,omitempty"`
}

// Order sorts by one key.
type Order struct {
	Key  Expr `yaml:"key" json:"key"`
	Desc bool `yaml:"desc,omitempty" json:"desc,omitempty"`
}

// Limit caps the row count. A zero Skip means no offset.
type Limit struct {
	Amount int64 `yaml:"amount" json:"amount"`
	Skip   int64 `yaml:"skip,omitempty" json:"skip,omitempty"`
}

// ExprBuilder is implemented by dialects that declare document operators of
// their own. BuildExpr returns ok=false for operators it does not know.
type ExprBuilder interface {
	BuildExpr(op string, args []queryir.Node) (expr queryir.Expr, ok bool, err error)
}
