package simpledb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdp/relite/internal/queryir"
	"github.com/jdp/relite/internal/querysql"
)

func mustNot(t *testing.T, e queryir.Expr) queryir.Expr {
	t.Helper()
	out, err := queryir.Not(e)
	require.NoError(t, err)
	return out
}

func mustIn(t *testing.T, left queryir.Expr, values ...any) *queryir.InOp {
	t.Helper()
	out, err := queryir.InValues(left, values...)
	require.NoError(t, err)
	return out
}

func TestDomain_Where(t *testing.T) {
	d := NewDomain("mydomain")
	stmt := d.Select(Star())

	city := d.Column("city")
	name := d.Column("name")
	weight := d.Column("weight")
	year := d.Column("Year")
	author := d.Column("Author")
	keyword := d.Column("Keyword")
	title := d.Column("Title")
	rating := d.Column("Rating")
	pages := d.Column("Pages")
	str := func(s string) queryir.String { return queryir.String(s) }

	tests := []struct {
		name   string
		filter queryir.Expr
		want   string
	}{
		{
			name:   "equality",
			filter: queryir.Eq(city, str("Seattle")),
			want:   `select * from mydomain where city = "Seattle"`,
		},
		{
			name:   "or",
			filter: queryir.Or(queryir.Eq(city, str("Seattle")), queryir.Eq(city, str("Portland"))),
			want:   `select * from mydomain where (city = "Seattle") or (city = "Portland")`,
		},
		{
			name:   "not equal",
			filter: queryir.Ne(name, str("John")),
			want:   `select * from mydomain where name != "John"`,
		},
		{
			name:   "and",
			filter: queryir.And(queryir.Ne(name, str("John")), queryir.Ne(name, str("Humberto"))),
			want:   `select * from mydomain where (name != "John") and (name != "Humberto")`,
		},
		{
			name:   "greater",
			filter: queryir.Gt(weight, queryir.Int(34)),
			want:   `select * from mydomain where weight > 34`,
		},
		{
			name:   "greater or equal",
			filter: queryir.Ge(weight, queryir.Int(65)),
			want:   `select * from mydomain where weight >= 65`,
		},
		{
			name:   "less",
			filter: queryir.Lt(weight, queryir.Int(34)),
			want:   `select * from mydomain where weight < 34`,
		},
		{
			name:   "less or equal",
			filter: queryir.Le(year, queryir.Int(2000)),
			want:   `select * from mydomain where Year <= 2000`,
		},
		{
			name:   "like",
			filter: queryir.Like(author, str("Henry%")),
			want:   `select * from mydomain where Author like "Henry%"`,
		},
		{
			name:   "and with like",
			filter: queryir.And(queryir.Eq(keyword, str("Book")), queryir.Like(author, str("%Miller"))),
			want:   `select * from mydomain where (Keyword = "Book") and (Author like "%Miller")`,
		},
		{
			name:   "negated like",
			filter: mustNot(t, queryir.Like(author, str("Henry%"))),
			want:   `select * from mydomain where Author not like "Henry%"`,
		},
		{
			name:   "between numbers",
			filter: Between(year, queryir.Int(1998), queryir.Int(2000)),
			want:   `select * from mydomain where Year between 1998 and 2000`,
		},
		{
			name:   "in",
			filter: mustIn(t, year, 1998, 2000, 2003),
			want:   `select * from mydomain where Year in (1998, 2000, 2003)`,
		},
		{
			name:   "is null",
			filter: queryir.IsNull(year),
			want:   `select * from mydomain where Year is null`,
		},
		{
			name:   "negated is null",
			filter: mustNot(t, queryir.IsNull(year)),
			want:   `select * from mydomain where Year is not null`,
		},
		{
			name:   "every",
			filter: queryir.Eq(Every(keyword), str("Book")),
			want:   `select * from mydomain where every(Keyword) = "Book"`,
		},
		{
			name:   "spaces in string",
			filter: queryir.Eq(title, str("The Right Stuff")),
			want:   `select * from mydomain where Title = "The Right Stuff"`,
		},
		{
			name:   "string comparison",
			filter: queryir.Gt(year, str("1985")),
			want:   `select * from mydomain where Year > "1985"`,
		},
		{
			name:   "stars in pattern",
			filter: queryir.Like(rating, str("****%")),
			want:   `select * from mydomain where Rating like "****%"`,
		},
		{
			name:   "zero padded",
			filter: queryir.Lt(pages, str("00320")),
			want:   `select * from mydomain where Pages < "00320"`,
		},
		{
			name:   "string range",
			filter: queryir.And(queryir.Gt(year, str("1975")), queryir.Lt(year, str("2008"))),
			want:   `select * from mydomain where (Year > "1975") and (Year < "2008")`,
		},
		{
			name:   "between strings",
			filter: Between(year, str("1975"), str("2008")),
			want:   `select * from mydomain where Year between "1975" and "2008"`,
		},
		{
			name:   "rating or",
			filter: queryir.Or(queryir.Eq(rating, str("***")), queryir.Eq(rating, str("*****"))),
			want:   `select * from mydomain where (Rating = "***") or (Rating = "*****")`,
		},
		{
			name: "nested and inside flattened or",
			filter: queryir.Or(
				queryir.Or(
					queryir.And(queryir.Gt(year, str("1950")), queryir.Lt(year, str("1960"))),
					queryir.Like(year, str("193%")),
				),
				queryir.Eq(year, str("2007")),
			),
			want: `select * from mydomain where ((Year > "1950") and (Year < "1960")) or (Year like "193%") or (Year = "2007")`,
		},
		{
			name:   "multi-valued and",
			filter: queryir.And(queryir.Eq(keyword, str("Book")), queryir.Eq(keyword, str("Hardcover"))),
			want:   `select * from mydomain where (Keyword = "Book") and (Keyword = "Hardcover")`,
		},
		{
			name:   "every in",
			filter: mustIn(t, Every(keyword), "Book", "Paperback"),
			want:   `select * from mydomain where every(Keyword) in ("Book", "Paperback")`,
		},
		{
			name:   "every equals",
			filter: queryir.Eq(Every(rating), str("****")),
			want:   `select * from mydomain where every(Rating) = "****"`,
		},
		{
			name:   "intersection",
			filter: Intersection(queryir.Eq(keyword, str("Book")), queryir.Eq(keyword, str("Hardcover"))),
			want:   `select * from mydomain where (Keyword = "Book") intersection (Keyword = "Hardcover")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := stmt.Where(tt.filter).SQL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestDomain_OrderAndLimit(t *testing.T) {
	d := NewDomain("mydomain")
	stmt := d.Select(Star())
	year := d.Column("Year")
	author := d.Column("Author")

	sql, err := stmt.Where(queryir.Lt(year, queryir.String("1980"))).OrderBy(year).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select * from mydomain where Year < "1980" order by Year`, sql)

	filter := Intersection(queryir.Eq(year, queryir.String("2007")), queryir.IsNotNull(author))
	sql, err = stmt.Where(filter).OrderByDesc(author).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select * from mydomain where (Year = "2007") intersection (Author is not null) order by Author desc`, sql)

	sql, err = stmt.Where(queryir.Lt(year, queryir.String("1980"))).OrderBy(year).Limit(2).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select * from mydomain where Year < "1980" order by Year limit 2`, sql)
}

func TestDomain_PseudoFields(t *testing.T) {
	d := NewDomain("mydomain")
	title := d.Column("Title")
	year := d.Column("Year")

	sql, err := d.Select(ItemName()).
		Where(queryir.Like(ItemName(), queryir.String("B000%"))).
		OrderBy(ItemName()).
		SQL()
	require.NoError(t, err)
	assert.Equal(t, `select itemName() from mydomain where itemName() like "B000%" order by itemName()`, sql)

	counted := d.Select(Count())

	sql, err = counted.Where(queryir.Eq(title, queryir.String("The Right Stuff"))).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select count(*) from mydomain where Title = "The Right Stuff"`, sql)

	sql, err = counted.Where(queryir.Gt(year, queryir.String("1985"))).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select count(*) from mydomain where Year > "1985"`, sql)

	sql, err = counted.Limit(500).SQL()
	require.NoError(t, err)
	assert.Equal(t, `select count(*) from mydomain limit 500`, sql)
}

func TestDomain_QuotedNames(t *testing.T) {
	d := NewDomain("mydomain")
	stmt := d.Select(Star())

	sql, err := stmt.Where(queryir.Eq(d.Column("abc`123"), queryir.String("1"))).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select * from mydomain where `abc``123` = \"1\"", sql)

	sql, err = stmt.Where(queryir.Eq(d.Column("between"), queryir.String("1"))).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select * from mydomain where `between` = \"1\"", sql)

	sql, err = stmt.Where(queryir.Eq(d.Column("Order"), queryir.String("1"))).SQL()
	require.NoError(t, err)
	assert.Equal(t, "select * from mydomain where `Order` = \"1\"", sql)
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Year", "Year"},
		{"pic_square", "pic_square"},
		{"price$", "price$"},
		{"2010", "2010"},
		{"first name", "`first name`"},
		{"abc`123", "`abc``123`"},
		{"select", "`select`"},
		{"Select", "`Select`"},
		{"ORDER", "`ORDER`"},
		{"every", "`every`"},
		{"everyone", "everyone"},
		{"", "``"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dialect{}.QuoteField(tt.name))
		})
	}
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `say ""hi""`, Dialect{}.QuoteString(`say "hi"`))
	assert.Equal(t, "plain", Dialect{}.QuoteString("plain"))

	sql, err := querysql.New(Dialect{}).Compile(queryir.String(`a"b`))
	require.NoError(t, err)
	assert.Equal(t, `"a""b"`, sql)
}

func TestBetween_NestedIsParenthesized(t *testing.T) {
	year := queryir.Field{Name: "Year"}
	filter := queryir.Or(
		Between(year, queryir.Int(1990), queryir.Int(1995)),
		queryir.Eq(year, queryir.Int(2001)),
	)

	sql, err := querysql.New(Dialect{}).Compile(filter)
	require.NoError(t, err)
	assert.Equal(t, "(Year between 1990 and 1995) or (Year = 2001)", sql)
}

func TestBetween_Validate(t *testing.T) {
	year := queryir.Field{Name: "Year"}

	assert.True(t, queryir.Validate(Between(year, queryir.Int(1), queryir.Int(2))).Valid)

	result := queryir.Validate(Between(year, queryir.Int(1), nil))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"query.operands[2]: missing node"}, result.Problems)

	_, err := querysql.New(Dialect{}).Compile(Between(year, nil, queryir.Int(2)))
	assert.ErrorIs(t, err, queryir.ErrMalformedOperand)
}

func TestExtensionsNeedTheDialect(t *testing.T) {
	_, err := querysql.New(querysql.Generic{}).Compile(Every(queryir.Field{Name: "Keyword"}))
	assert.ErrorIs(t, err, queryir.ErrUnsupportedNode)

	_, err = querysql.New(querysql.Generic{}).Compile(Intersection(queryir.Field{Name: "a"}, queryir.Field{Name: "b"}))
	assert.ErrorIs(t, err, queryir.ErrUnsupportedNode)
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("intersection"))
	assert.True(t, IsReserved("Limit"))
	assert.True(t, IsReserved("Order"))
	assert.True(t, IsReserved("BETWEEN"))
	assert.False(t, IsReserved("limits"))
}
