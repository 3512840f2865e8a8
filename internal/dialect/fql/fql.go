// Package fql is the Facebook Query Language dialect.
//
// FQL uses the generic compiler rules unchanged and adds the me() literal,
// which names the viewing user.
//
//	u := fql.NewTable("user")
//	uid := u.Column("uid")
//	sql, err := u.Select(u.Column("name")).Where(queryir.Eq(uid, fql.Me())).SQL()
//	// select name from user where uid = me()
package fql

import (
	"fmt"

	"github.com/jdp/relite/internal/queryir"
	"github.com/jdp/relite/internal/querysql"
)

// Dialect compiles query trees into FQL.
type Dialect struct {
	querysql.Generic
}

// Name returns "fql".
func (Dialect) Name() string { return "fql" }

// Table is a fluent statement builder bound to the FQL dialect.
type Table = querysql.Table[Dialect]

// NewTable returns a bare reference to the named table.
func NewTable(name string) Table {
	return querysql.NewTable(Dialect{}, name)
}

// Me is the id of the viewing user.
func Me() queryir.Literal {
	return queryir.Literal{Text: "me()"}
}

// BuildExpr builds the me() literal from a query document operator.
func (Dialect) BuildExpr(op string, args []queryir.Node) (queryir.Expr, bool, error) {
	if op != "me" {
		return nil, false, nil
	}
	if len(args) != 0 {
		return nil, true, fmt.Errorf("%w: me takes no arguments, got %d", queryir.ErrMalformedOperand, len(args))
	}
	return Me(), true, nil
}
