package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdp/relite/internal/queryir"
)

func TestTable_FluentChain(t *testing.T) {
	users := NewTable(Generic{}, "user")
	name := users.Column("name")
	uid := users.Column("uid")

	stmt := users.Select(name).Where(queryir.Eq(uid, queryir.Literal{Text: "me()"}))

	sql, err := stmt.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select name from user where uid = me()", sql)
}

func TestTable_ColumnNames(t *testing.T) {
	users := NewTable(Generic{}, "user")

	stmt := users.SelectColumns("name", "pic_square").
		Where(queryir.Gt(users.Column("age"), queryir.Int(21))).
		OrderByColumn("name")

	sql, err := stmt.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select name, pic_square from user where age > 21 order by name", sql)
}

func TestTable_KeepsDialect(t *testing.T) {
	d := NewTable(bracketDialect{}, "books")
	year := d.Column("Year")

	stmt := d.Select(year).Where(queryir.Ne(year, queryir.Int(2000))).OrderByDesc(year).Limit(3)

	var _ Table[bracketDialect] = stmt
	assert.Equal(t, "bracket", stmt.Dialect().Name())

	sql, err := stmt.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select [Year] from [books] where [Year] <> 2000 order by [Year] desc limit 3", sql)
}

func TestTable_Immutable(t *testing.T) {
	base := NewTable(Generic{}, "t")
	a := base.Column("a")

	projected := base.Select(a)
	filtered := projected.Where(queryir.Gt(a, queryir.Int(1)))
	_ = filtered.OrderBy(a)

	sql, err := base.SQL()
	require.NoError(t, err)
	assert.Equal(t, "t", sql)

	sql, err = projected.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select a from t", sql)

	sql, err = filtered.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select a from t where a > 1", sql)
}

func TestTable_LimitSkip(t *testing.T) {
	tbl := NewTable(Generic{}, "t")

	sql, err := tbl.Select(tbl.Column("a")).LimitSkip(5, 10).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select a from t limit 10, 5", sql)
}

func TestTable_RelationAsMembershipTerm(t *testing.T) {
	friends := NewTable(Generic{}, "friend")
	me := queryir.Literal{Text: "me()"}
	sub := friends.Select(friends.Column("uid2")).Where(queryir.Eq(friends.Column("uid1"), me))

	users := NewTable(Generic{}, "user")
	uid := users.Column("uid")
	stmt := users.Select(uid).Where(queryir.In(uid, sub.Relation()))

	sql, err := stmt.SQL()
	require.NoError(t, err)
	assert.Equal(t, "select uid from user where uid in (select uid2 from friend where uid1 = me())", sql)
}

func TestTable_PseudoFieldSource(t *testing.T) {
	tbl := NewTableFrom(Generic{}, queryir.Literal{Text: "stream()"})

	sql, err := tbl.Select(queryir.Literal{Text: "*"}).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select * from stream()", sql)
}
