package fql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdp/relite/internal/queryir"
)

func TestTable_Me(t *testing.T) {
	u := NewTable("user")
	name := u.Column("name")
	uid := u.Column("uid")

	sql, err := u.Select(name).Where(queryir.Eq(uid, Me())).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select name from user where uid = me()", sql)
}

func TestTable_FriendsSubquery(t *testing.T) {
	u := NewTable("user")
	uid := u.Column("uid")
	name := u.Column("name")
	picSquare := u.Column("pic_square")

	f := NewTable("friend")
	uid1 := f.Column("uid1")
	uid2 := f.Column("uid2")
	friends := f.Select(uid2).Where(queryir.Eq(uid1, Me()))

	filter := queryir.Or(queryir.Eq(uid, Me()), queryir.In(uid, friends.Relation()))
	sql, err := u.Select(uid, name, picSquare).Where(filter).SQL()
	require.NoError(t, err)
	assert.Equal(t,
		"select uid, name, pic_square from user where (uid = me()) or (uid in (select uid2 from friend where uid1 = me()))",
		sql)
}

func TestTable_GenericRulesOnly(t *testing.T) {
	u := NewTable("user")

	_, err := u.Select(u.Column("name")).Where(queryir.Like(u.Column("name"), queryir.String("A%"))).SQL()
	assert.ErrorIs(t, err, queryir.ErrUnsupportedNode)
}

func TestBuildExpr(t *testing.T) {
	got, ok, err := Dialect{}.BuildExpr("me", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Me(), got)

	_, ok, err = Dialect{}.BuildExpr("me", []queryir.Node{queryir.Int(1)})
	assert.True(t, ok)
	assert.ErrorIs(t, err, queryir.ErrMalformedOperand)

	_, ok, err = Dialect{}.BuildExpr("between", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
