package tables

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ValidSizes is the fixed size enumeration for catalog products.
var ValidSizes = []string{"S", "M", "L", "XL", "XXL"}

// DefaultLowStockThreshold is used when a caller does not supply one.
const DefaultLowStockThreshold = 5

type Category struct {
	tableName   struct{}  `bun:"table:categories,alias:c"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string    `bun:"name,unique,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	Id          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	Brand       string    `bun:"brand,notnull" json:"brand"`
	CategoryId  uuid.UUID `bun:"category_id,type:uuid,notnull" json:"category_id"`
	Category    *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	UserId      uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"` // creating user
	Price       uint64    `bun:"price,notnull" json:"price"`               // stored in cents
	Sizes       []string  `bun:"sizes,array" json:"sizes,omitempty"`
	TotalQty    uint64    `bun:"total_qty,notnull,default:0" json:"total_qty"`
	TotalSold   uint64    `bun:"total_sold,notnull,default:0" json:"total_sold"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Images []ProductImage `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
}

// QtyLeft is the units still available. TotalSold never exceeds TotalQty,
// so the result is never negative.
func (p *Product) QtyLeft() uint64 {
	if p.TotalSold > p.TotalQty {
		return 0
	}
	return p.TotalQty - p.TotalSold
}

func (p *Product) IsInStock() bool {
	return p.QtyLeft() > 0
}

// IsLowStock reports whether 0 < qty_left <= threshold. A threshold of 0
// falls back to DefaultLowStockThreshold.
func (p *Product) IsLowStock(threshold uint64) bool {
	if threshold == 0 {
		threshold = DefaultLowStockThreshold
	}
	left := p.QtyLeft()
	return left > 0 && left <= threshold
}

// Validate applies the catalog invariants before any write.
func (p *Product) Validate() error {
	if p.Price == 0 {
		return fmt.Errorf("price must be positive")
	}
	for _, size := range p.Sizes {
		if !slices.Contains(ValidSizes, size) {
			return fmt.Errorf("invalid size: %s (valid sizes: S, M, L, XL, XXL)", size)
		}
	}
	if p.TotalSold > p.TotalQty {
		return fmt.Errorf("total sold cannot exceed total quantity")
	}
	return nil
}

// ProductImage belongs to exactly one product. At most one image per
// product carries IsPrimary; the swap is enforced transactionally in the
// product service.
type ProductImage struct {
	tableName struct{}  `bun:"table:product_images,alias:pi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	AltText   string    `bun:"alt_text" json:"alt_text,omitempty"`
	IsPrimary bool      `bun:"is_primary,notnull,default:false" json:"is_primary"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
