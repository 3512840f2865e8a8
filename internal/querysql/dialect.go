package querysql

import "github.com/jdp/relite/internal/queryir"

// Dialect configures the generic compiler for a concrete query language.
//
// A dialect supplies an operator token table (layered over the generic
// table), a field quoting policy and a string escaping policy. Dialects that
// add their own node kinds also implement Extender.
type Dialect interface {
	// Name identifies the dialect (e.g. "simpledb").
	Name() string

	// Operators returns tokens layered on top of, or overriding, the
	// generic operator table. May return nil.
	Operators() map[queryir.Op]string

	// QuoteField renders a field name.
	QuoteField(name string) string

	// QuoteString escapes the body of a string literal. The compiler adds
	// the surrounding double quotes.
	QuoteString(s string) string
}

// Extender is implemented by dialects that render node kinds of their own.
//
// CompileNode is consulted before the generic expression switch. It returns
// handled=false to let the generic compiler take over.
type Extender interface {
	CompileNode(c *Compiler, n queryir.Node, depth int) (fragment string, handled bool, err error)
}

// Generic is the default dialect: fields are rendered as-is and strings are
// wrapped in double quotes without escaping.
//
// Concrete dialects embed Generic and override what they need.
type Generic struct{}

// Name returns "generic".
func (Generic) Name() string { return "generic" }

// Operators adds nothing to the generic table.
func (Generic) Operators() map[queryir.Op]string { return nil }

// QuoteField returns name unchanged.
func (Generic) QuoteField(name string) string { return name }

// QuoteString returns s unchanged.
func (Generic) QuoteString(s string) string { return s }

// genericOperators is the token table shared by every dialect.
var genericOperators = map[queryir.Op]string{
	queryir.OpEq:  "=",
	queryir.OpNe:  "!=",
	queryir.OpGt:  ">",
	queryir.OpGe:  ">=",
	queryir.OpLt:  "<",
	queryir.OpLe:  "<=",
	queryir.OpOr:  "or",
	queryir.OpAnd: "and",
}

// operatorTable layers the dialect's tokens over the generic table.
func operatorTable(d Dialect) map[queryir.Op]string {
	extra := d.Operators()
	table := make(map[queryir.Op]string, len(genericOperators)+len(extra))
	for op, tok := range genericOperators {
		table[op] = tok
	}
	for op, tok := range extra {
		table[op] = tok
	}
	return table
}
