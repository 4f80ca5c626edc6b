package query

import (
	"fmt"
	"testing"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, desc string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Description: desc, Price: decimal.NewFromFloat(price)}
}

func ids(items []models.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func numbered(n int) []models.Product {
	items := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, product(fmt.Sprintf("p%d", i), fmt.Sprintf("Item %d", i), "thing", float64(i)))
	}
	return items
}

func TestApply_PriceRangeAndSort(t *testing.T) {
	items := []models.Product{
		product("a", "A", "", 10),
		product("b", "B", "", 20),
		product("c", "C", "", 30),
	}

	res := Apply(items, Params{MinPrice: "15"})
	assert.Equal(t, []string{"b", "c"}, ids(res.Items))
	assert.Equal(t, 2, res.Total)

	res = Apply(items, Params{MinPrice: "15", Sort: SortPriceDesc})
	assert.Equal(t, []string{"c", "b"}, ids(res.Items))

	res = Apply(items, Params{MaxPrice: "20", Sort: SortPriceAsc})
	assert.Equal(t, []string{"a", "b"}, ids(res.Items))
}

func TestApply_BoundsAreInclusive(t *testing.T) {
	items := []models.Product{product("a", "A", "", 10), product("b", "B", "", 20)}

	res := Apply(items, Params{MinPrice: "10", MaxPrice: "20"})
	assert.Equal(t, []string{"a", "b"}, ids(res.Items))
}

func TestApply_TextMatchesNameOrDescription(t *testing.T) {
	items := []models.Product{
		product("a", "Red Chair", "wooden", 10),
		product("b", "Table", "a RED top", 20),
		product("c", "Lamp", "bright", 30),
	}

	res := Apply(items, Params{Query: "red"})
	assert.Equal(t, []string{"a", "b"}, ids(res.Items))

	res = Apply(items, Params{Query: "  "})
	assert.Len(t, res.Items, 3)
}

func TestApply_EmptyInput(t *testing.T) {
	res := Apply(nil, Params{Page: 4})
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 0, res.Total)
}

func TestApply_Pagination(t *testing.T) {
	items := numbered(9)

	res := Apply(items, Params{Page: 1, PageSize: 8})
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Items, 8)

	res = Apply(items, Params{Page: 5, PageSize: 8})
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []string{"p9"}, ids(res.Items))

	res = Apply(items, Params{Page: 0})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, DefaultPageSize, res.PageSize)
}

func TestSortProducts_StableAndNonMutating(t *testing.T) {
	items := []models.Product{
		product("a", "A", "", 20),
		product("b", "B", "", 10),
		product("c", "C", "", 20),
	}

	asc := SortProducts(items, SortPriceAsc)
	assert.Equal(t, []string{"b", "a", "c"}, ids(asc))

	desc := SortProducts(items, SortPriceDesc)
	assert.Equal(t, []string{"a", "c", "b"}, ids(desc))

	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortProducts(items, SortDefault)))
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"15", "15", true},
		{" 15.5", "15.5", true},
		{"15abc", "15", true},
		{".5", "0.5", true},
		{"-3", "-3", true},
		{"1e2", "100", true},
		{"", "", false},
		{"abc", "", false},
		{"-", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseBound(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			}
		})
	}
}

func TestApply_InvalidBoundIsIgnored(t *testing.T) {
	items := []models.Product{product("a", "A", "", 10), product("b", "B", "", 20)}

	res := Apply(items, Params{MinPrice: "cheap", MaxPrice: "x"})
	assert.Len(t, res.Items, 2)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSort("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSort(" PRICE-DESC "))
	assert.Equal(t, SortDefault, ParseSort("name"))
	assert.Equal(t, SortDefault, ParseSort(""))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 8))
	assert.Equal(t, 1, TotalPages(8, 8))
	assert.Equal(t, 2, TotalPages(9, 8))
	assert.Equal(t, 3, TotalPages(9, 4))
}
