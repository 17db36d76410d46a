package structs

import (
	"stitchmart_server/structs/tables"

	"github.com/google/uuid"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=255"`
	Description string         `json:"description" validate:"required"`
	Brand       string         `json:"brand" validate:"required,max=100"`
	CategoryId  uuid.UUID      `json:"category_id" validate:"required"`
	Price       uint64         `json:"price" validate:"required,gt=0"` // cents
	TotalQty    uint64         `json:"total_qty"`
	Sizes       []string       `json:"sizes" validate:"omitempty,dive,oneof=S M L XL XXL"`
	Images      []ImagePayload `json:"images,omitempty"`
}

type ImagePayload struct {
	URL       string `json:"url" validate:"required,url"`
	AltText   string `json:"alt_text" validate:"omitempty,max=255"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string    `json:"description,omitempty"`
	Brand       *string    `json:"brand,omitempty" validate:"omitempty,max=100"`
	CategoryId  *uuid.UUID `json:"category_id,omitempty"`
	Price       *uint64    `json:"price,omitempty" validate:"omitempty,gt=0"`
	TotalQty    *uint64    `json:"total_qty,omitempty"`
	TotalSold   *uint64    `json:"total_sold,omitempty"`
	Sizes       []string   `json:"sizes,omitempty" validate:"omitempty,dive,oneof=S M L XL XXL"`
}

// RatingSummary is computed from reviews on read; nothing is
// denormalized onto the product row.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"` // rounded to 1 decimal, 0.0 when unrated
	ReviewCount   int     `json:"review_count"`
}

type CatalogStats struct {
	TotalProducts   int    `json:"total_products"`
	TotalCategories int    `json:"total_categories"`
	OutOfStock      int    `json:"out_of_stock"`
	LowStock        int    `json:"low_stock"`
	TotalUnitsSold  uint64 `json:"total_units_sold"`

	TopSellers     []tables.Product `json:"top_sellers"`
	RecentProducts []tables.Product `json:"recent_products"`
}

// DashboardStats is the admin dashboard payload: catalog figures plus
// the user figures.
type DashboardStats struct {
	Catalog *CatalogStats `json:"catalog"`
	Users   *UserStats    `json:"users"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type WishlistRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
}
