package querydoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAML(t *testing.T) {
	stmts, err := LoadFile("testdata/books.yaml")
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	assert.Equal(t, "recent_books", stmts[0].Name)
	assert.Equal(t, "simpledb", stmts[0].Dialect)
	assert.Equal(t, "mydomain", stmts[0].From)
	require.NotNil(t, stmts[0].Limit)
	assert.Equal(t, int64(2), stmts[0].Limit.Amount)
	require.NotNil(t, stmts[0].OrderBy)
	require.NotNil(t, stmts[0].OrderBy.Key.Field)
	assert.Equal(t, "Year", *stmts[0].OrderBy.Key.Field)

	require.NotNil(t, stmts[2].Where)
	require.Len(t, stmts[2].Where.Args, 3)
	require.NotNil(t, stmts[2].Where.Args[1].Number)
	assert.Equal(t, "1990", stmts[2].Where.Args[1].Number.String())
}

func TestLoadFile_CUE(t *testing.T) {
	stmts, err := LoadFile("testdata/friends.cue")
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	assert.Equal(t, "me", stmts[0].Name)
	assert.Equal(t, "friends", stmts[1].Name)
	assert.Equal(t, "fql", stmts[1].Dialect)
	require.Len(t, stmts[1].Select, 3)

	in := stmts[1].Where.Args[1]
	assert.Equal(t, "in", in.Op)
	require.NotNil(t, in.Args[1].Query)
	assert.Equal(t, "friend", in.Args[1].Query.From)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported query file extension")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadYAML_RejectsUnknownFields(t *testing.T) {
	src := `
name: typo
from: t
selct: [{field: a}]
`
	_, err := LoadYAML(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selct")
}

func TestLoadYAML_RequiresNames(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty stream",
			src:  "",
			want: "no statements found",
		},
		{
			name: "missing name",
			src:  "from: t\nselect: [{field: a}]\n",
			want: "statement 0: name is required",
		},
		{
			name: "duplicate name",
			src:  "name: a\nfrom: t\nselect: [{field: a}]\n---\nname: a\nfrom: u\nselect: [{field: b}]\n",
			want: `statement 1: duplicate name "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCUE_NoQueryStruct(t *testing.T) {
	_, err := LoadCUE([]byte(`other: 1`), "q.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "query", loadErr.Field)
}

func TestLoadCUE_SyntaxErrorHasPosition(t *testing.T) {
	_, err := LoadCUE([]byte("query: a: {\n\tfrom: \n"), "broken.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, loadErr.Pos.IsValid())
	assert.Contains(t, loadErr.Error(), "broken.cue")
}

func TestLoadCUE_UnknownFieldNamesStatement(t *testing.T) {
	src := `query: bad: {
	from: "t"
	select: [{field: "a"}]
	colour: "red"
}
`
	_, err := LoadCUE([]byte(src), "bad.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "query.bad", loadErr.Field)
	assert.Contains(t, loadErr.Message, "colour")
}
