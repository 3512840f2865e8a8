// Package simpledb is the Amazon SimpleDB select dialect.
//
// It layers the like, is and intersection operators over the generic
// compiler, quotes attribute names with backticks when they are not plain
// identifiers or collide with a reserved word, and escapes double quotes in
// strings by doubling them.
//
// It also declares the SimpleDB-only expression kinds: the between range
// test, the every() multi-valued attribute wrapper and the itemName() and
// count(*) pseudo-fields.
//
//	d := simpledb.NewDomain("mydomain")
//	year := d.Column("Year")
//	sql, err := d.Select(simpledb.Star()).
//	    Where(simpledb.Between(year, queryir.Int(1998), queryir.Int(2000))).
//	    SQL()
//	// select * from mydomain where Year between 1998 and 2000
package simpledb
