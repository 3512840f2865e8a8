package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdp/relite/internal/dialect/fql"
	"github.com/jdp/relite/internal/dialect/simpledb"
	"github.com/jdp/relite/internal/querysql"
)

func TestLookup(t *testing.T) {
	d, err := Lookup("simpledb")
	require.NoError(t, err)
	assert.Equal(t, simpledb.Dialect{}, d)

	d, err = Lookup("fql")
	require.NoError(t, err)
	assert.Equal(t, fql.Dialect{}, d)

	d, err = Lookup("")
	require.NoError(t, err)
	assert.Equal(t, querysql.Generic{}, d)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("mysql")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), `unknown dialect "mysql"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"fql", "generic", "simpledb"}, Names())
}
