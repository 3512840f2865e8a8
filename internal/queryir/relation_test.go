package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationChain(t *testing.T) {
	src := Table("mydomain")
	year := Field{Name: "Year"}

	proj := Project(src, Literal{Text: "*"})
	sel := Select(proj, Lt(year, String("1980")))
	ord := Order(sel, year, true)
	lim := Limit(ord, Int(2))

	// Each wrapper owns exactly its upstream
	assert.Same(t, src, proj.Upstream)
	assert.Same(t, proj, sel.Upstream)
	assert.Same(t, sel, ord.Upstream)
	assert.Same(t, ord, lim.Upstream)

	// Building never mutates the upstream
	assert.Nil(t, src.Upstream)
	assert.Len(t, proj.Fields, 1)
	assert.True(t, ord.Desc)
	assert.Nil(t, lim.Skip)
}

func TestRelation_ImplementsRelation(t *testing.T) {
	rels := []Relation{
		Table("t"),
		Project(Table("t"), Field{Name: "a"}),
		Select(Table("t"), Eq(Field{Name: "a"}, Int(1))),
		Order(Table("t"), Field{Name: "a"}, false),
		Limit(Table("t"), Int(1)),
	}

	for _, r := range rels {
		switch r.(type) {
		case *Source, *Projection, *Selection, *Ordering, *Limitation:
			// Expected
		default:
			t.Fatalf("unexpected relation type %T", r)
		}
	}
}

func TestNewProjection(t *testing.T) {
	fields := []Expr{Field{Name: "a"}, Field{Name: "b"}}
	proj, err := NewProjection(Table("t"), fields)
	require.NoError(t, err)

	// Slice is copied
	fields[0] = Field{Name: "z"}
	assert.Equal(t, Field{Name: "a"}, proj.Fields[0])

	_, err = NewProjection(Table("t"), nil)
	assert.ErrorIs(t, err, ErrMalformedOperand)
}

func TestLimitation_HasSkip(t *testing.T) {
	src := Table("t")

	assert.False(t, Limit(src, Int(5)).HasSkip())
	assert.False(t, LimitSkip(src, Int(5), Int(0)).HasSkip())
	assert.True(t, LimitSkip(src, Int(5), Int(10)).HasSkip())
	assert.True(t, LimitSkip(src, Int(5), Literal{Text: "0"}).HasSkip())
	assert.False(t, LimitSkip(src, Int(5), String("")).HasSkip())
	assert.True(t, LimitSkip(src, Int(5), String("10")).HasSkip())
}
