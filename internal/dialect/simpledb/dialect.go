package simpledb

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jdp/relite/internal/queryir"
	"github.com/jdp/relite/internal/querysql"
)

// OpIntersection intersects the item sets matched by two expressions.
const OpIntersection queryir.Op = "intersection"

// plainName matches attribute names that need no quoting.
var plainName = regexp.MustCompile(`(?i)^[a-z0-9_$]+$`)

// reservedWords are the SimpleDB keywords. Names are compared case-folded.
var reservedWords = map[string]struct{}{
	"or": {}, "and": {}, "not": {}, "from": {}, "where": {}, "select": {},
	"like": {}, "null": {}, "is": {}, "order": {}, "by": {}, "asc": {},
	"desc": {}, "in": {}, "between": {}, "intersection": {}, "limit": {},
	"every": {},
}

var operators = map[queryir.Op]string{
	queryir.OpLike:    "like",
	queryir.OpNotLike: "not like",
	queryir.OpIs:      "is",
	queryir.OpIsNot:   "is not",
	OpIntersection:    "intersection",
}

// Dialect compiles query trees into SimpleDB select expressions.
type Dialect struct {
	querysql.Generic
}

var (
	_ querysql.Dialect  = Dialect{}
	_ querysql.Extender = Dialect{}
)

// Name returns "simpledb".
func (Dialect) Name() string { return "simpledb" }

// Operators returns the SimpleDB tokens layered over the generic table.
func (Dialect) Operators() map[queryir.Op]string {
	return operators
}

// QuoteField wraps name in backticks when it is not a plain identifier or is
// a reserved word. Embedded backticks are doubled.
func (Dialect) QuoteField(name string) string {
	if plainName.MatchString(name) && !IsReserved(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteString doubles embedded double quotes.
func (Dialect) QuoteString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// IsReserved reports whether name is a SimpleDB keyword, ignoring case.
//
// SimpleDB parses keywords case-insensitively, so "Order" and "BETWEEN" are
// reserved as well and get backtick-quoted by QuoteField. This is stricter
// than an exact lower-case match, which would leave them bare.
func IsReserved(name string) bool {
	_, ok := reservedWords[cases.Fold().String(name)]
	return ok
}

// CompileNode renders the SimpleDB expression kinds.
func (Dialect) CompileNode(c *querysql.Compiler, n queryir.Node, depth int) (string, bool, error) {
	switch node := n.(type) {
	case *BetweenOp:
		s, err := compileBetween(c, node, depth)
		return s, true, err
	case EveryField:
		s, err := c.CompileField(node.Field)
		if err != nil {
			return "", true, err
		}
		return "every(" + s + ")", true, nil
	case PseudoField:
		return node.Text, true, nil
	default:
		return "", false, nil
	}
}

// compileBetween renders "<left> between <lower> and <upper>".
func compileBetween(c *querysql.Compiler, op *BetweenOp, depth int) (string, error) {
	parts := make([]string, 0, 3)
	for _, operand := range op.Operands() {
		s, err := c.CompileExpr(operand, depth+1)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return c.Parenthesize(parts[0]+" between "+parts[1]+" and "+parts[2], depth), nil
}
