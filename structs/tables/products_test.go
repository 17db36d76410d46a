package tables

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProductQtyLeft(t *testing.T) {
	tests := []struct {
		name     string
		totalQty uint64
		sold     uint64
		want     uint64
	}{
		{name: "untouched stock", totalQty: 10, sold: 0, want: 10},
		{name: "partially sold", totalQty: 10, sold: 4, want: 6},
		{name: "sold out", totalQty: 10, sold: 10, want: 0},
		{name: "sold exceeds quantity clamps to zero", totalQty: 5, sold: 8, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{TotalQty: tt.totalQty, TotalSold: tt.sold}
			assert.Equal(t, tt.want, p.QtyLeft())
		})
	}
}

func TestProductIsInStock(t *testing.T) {
	assert.True(t, (&Product{TotalQty: 3, TotalSold: 2}).IsInStock())
	assert.False(t, (&Product{TotalQty: 3, TotalSold: 3}).IsInStock())
	assert.False(t, (&Product{}).IsInStock())
}

func TestProductIsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		totalQty  uint64
		sold      uint64
		threshold uint64
		want      bool
	}{
		{name: "at default threshold", totalQty: 10, sold: 5, threshold: 0, want: true},
		{name: "just above default threshold", totalQty: 10, sold: 4, threshold: 0, want: false},
		{name: "out of stock is not low stock", totalQty: 10, sold: 10, threshold: 0, want: false},
		{name: "custom threshold hit", totalQty: 20, sold: 12, threshold: 8, want: true},
		{name: "custom threshold missed", totalQty: 20, sold: 11, threshold: 8, want: false},
		{name: "single unit left", totalQty: 1, sold: 0, threshold: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{TotalQty: tt.totalQty, TotalSold: tt.sold}
			assert.Equal(t, tt.want, p.IsLowStock(tt.threshold))
		})
	}
}

func TestProductValidate(t *testing.T) {
	valid := func() *Product {
		return &Product{
			Id:         uuid.New(),
			Name:       "Linen Shirt",
			Brand:      "Stitchmart",
			CategoryId: uuid.New(),
			Price:      2500,
			Sizes:      []string{"S", "M", "L"},
			TotalQty:   10,
			TotalSold:  2,
		}
	}

	t.Run("valid product", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("zero price", func(t *testing.T) {
		p := valid()
		p.Price = 0
		assert.ErrorContains(t, p.Validate(), "price")
	})

	t.Run("invalid size", func(t *testing.T) {
		p := valid()
		p.Sizes = []string{"M", "XS"}
		assert.ErrorContains(t, p.Validate(), "invalid size: XS")
	})

	t.Run("sold exceeds quantity", func(t *testing.T) {
		p := valid()
		p.TotalSold = 11
		assert.ErrorContains(t, p.Validate(), "total sold")
	})

	t.Run("no sizes is allowed", func(t *testing.T) {
		p := valid()
		p.Sizes = nil
		assert.NoError(t, p.Validate())
	})
}
