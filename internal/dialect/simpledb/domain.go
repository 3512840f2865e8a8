package simpledb

import "github.com/jdp/relite/internal/querysql"

// Domain is a fluent statement builder bound to the SimpleDB dialect.
type Domain = querysql.Table[Dialect]

// NewDomain returns a bare reference to the named domain.
func NewDomain(name string) Domain {
	return querysql.NewTable(Dialect{}, name)
}
