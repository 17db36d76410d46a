package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/structs/tables"
)

func TestParseProductListOptionsEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)

	opts, err := ParseProductListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, 0, opts.Page)
	assert.Nil(t, opts.CategoryId)
	assert.Nil(t, opts.InStock)
}

func TestParseProductListOptionsFull(t *testing.T) {
	categoryID := uuid.New()
	r := httptest.NewRequest("GET",
		"/products?page=2&page_size=24&category="+categoryID.String()+
			"&brand=Stitchmart&search=linen&min_price=1000&max_price=5000"+
			"&sizes=S,%20M%20,L&in_stock=true&min_rating=3.5&sort=price_asc&include_images=true",
		nil)

	opts, err := ParseProductListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 24, opts.PageSize)
	require.NotNil(t, opts.CategoryId)
	assert.Equal(t, categoryID, *opts.CategoryId)
	assert.Equal(t, "Stitchmart", opts.Brand)
	assert.Equal(t, "linen", opts.SearchTerm)
	require.NotNil(t, opts.MinPrice)
	assert.Equal(t, uint64(1000), *opts.MinPrice)
	require.NotNil(t, opts.MaxPrice)
	assert.Equal(t, uint64(5000), *opts.MaxPrice)
	assert.Equal(t, []string{"S", "M", "L"}, opts.Sizes)
	require.NotNil(t, opts.InStock)
	assert.True(t, *opts.InStock)
	require.NotNil(t, opts.MinRating)
	assert.Equal(t, 3.5, *opts.MinRating)
	assert.Equal(t, "price_asc", opts.SortBy)
	assert.True(t, opts.IncludeImages)
}

func TestParseProductListOptionsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric page", query: "page=abc"},
		{name: "malformed category uuid", query: "category=not-a-uuid"},
		{name: "negative min_price", query: "min_price=-5"},
		{name: "non-boolean in_stock", query: "in_stock=maybe"},
		{name: "non-numeric rating", query: "min_rating=high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/products?"+tt.query, nil)
			_, err := ParseProductListOptions(r)
			assert.Error(t, err)
		})
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?page=3&page_size=15", nil)
	page, pageSize, err := ParsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 15, pageSize)

	r = httptest.NewRequest("GET", "/orders", nil)
	page, pageSize, err = ParsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, 0, page)
	assert.Equal(t, 0, pageSize)

	r = httptest.NewRequest("GET", "/orders?page=first", nil)
	_, _, err = ParsePagination(r)
	assert.Error(t, err)
}

func TestParseOrderListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?page=2&status=shipped", nil)

	opts, err := ParseOrderListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, tables.OrderStatusShipped, opts.Status)
	assert.Equal(t, uuid.Nil, opts.UserId)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "L"}, splitAndTrim("S, M ,L"))
	assert.Equal(t, []string{"XL"}, splitAndTrim("XL,,  ,"))
	assert.Empty(t, splitAndTrim(" , "))
}
