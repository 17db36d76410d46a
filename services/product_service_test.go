package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
)

func TestRoundRating(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{avg: 4.0, want: 4.0},
		{avg: 4.25, want: 4.3},
		{avg: 4.24, want: 4.2},
		{avg: 3.3333333, want: 3.3},
		{avg: 0, want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, roundRating(tt.avg), 1e-9, "avg=%v", tt.avg)
	}
}

func TestOptionsHashStable(t *testing.T) {
	categoryID := uuid.New()
	minPrice := uint64(1000)

	a := &ProductListOptions{CategoryId: &categoryID, MinPrice: &minPrice, SortBy: "price_asc"}
	b := &ProductListOptions{CategoryId: &categoryID, MinPrice: &minPrice, SortBy: "price_asc"}

	assert.Equal(t, optionsHash(a), optionsHash(b))
	assert.Len(t, optionsHash(a), 16)
}

func TestOptionsHashDiffers(t *testing.T) {
	base := &ProductListOptions{SortBy: "newest"}
	other := &ProductListOptions{SortBy: "price_desc"}

	assert.NotEqual(t, optionsHash(base), optionsHash(other))
}

func TestProductListKey(t *testing.T) {
	key := ProductListKey("abc123", 2, 20)
	assert.Equal(t, "products:list:abc123:page:2:size:20", key)
}

func countPrimary(rows []tables.ProductImage) int {
	n := 0
	for _, row := range rows {
		if row.IsPrimary {
			n++
		}
	}
	return n
}

func TestBuildImageRows(t *testing.T) {
	productId := uuid.New()

	t.Run("first flagged primary wins", func(t *testing.T) {
		rows := buildImageRows(productId, []structs.ImagePayload{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", IsPrimary: true},
			{URL: "https://cdn.example.com/c.jpg", IsPrimary: true},
		})
		require.Len(t, rows, 3)
		assert.Equal(t, 1, countPrimary(rows))
		assert.False(t, rows[0].IsPrimary)
		assert.True(t, rows[1].IsPrimary)
		assert.False(t, rows[2].IsPrimary)
	})

	t.Run("no primary flagged", func(t *testing.T) {
		rows := buildImageRows(productId, []structs.ImagePayload{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg"},
		})
		require.Len(t, rows, 2)
		assert.Equal(t, 0, countPrimary(rows))
	})

	t.Run("rows carry the product id and payload fields", func(t *testing.T) {
		rows := buildImageRows(productId, []structs.ImagePayload{
			{URL: "https://cdn.example.com/a.jpg", AltText: "front view", IsPrimary: true},
		})
		require.Len(t, rows, 1)
		assert.Equal(t, productId, rows[0].ProductId)
		assert.Equal(t, "https://cdn.example.com/a.jpg", rows[0].URL)
		assert.Equal(t, "front view", rows[0].AltText)
	})

	t.Run("empty payload batch", func(t *testing.T) {
		assert.Empty(t, buildImageRows(productId, nil))
	})
}
