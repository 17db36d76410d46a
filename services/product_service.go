package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListOptions contains filtering, sorting and pagination options
// for catalog queries.
type ProductListOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	CategoryId *uuid.UUID `json:"category_id,omitempty"`
	Brand      string     `json:"brand,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"` // matches name, description, brand
	MinPrice   *uint64    `json:"min_price,omitempty"`   // cents
	MaxPrice   *uint64    `json:"max_price,omitempty"`   // cents
	Sizes      []string   `json:"sizes,omitempty"`       // any-of match
	InStock    *bool      `json:"in_stock,omitempty"`
	MinRating  *float64   `json:"min_rating,omitempty"`

	// SortBy is one of: price_asc, price_desc, newest, oldest, rating,
	// popular, name_asc, name_desc. Unknown values fall back to newest.
	SortBy string `json:"sort_by,omitempty"`

	IncludeImages bool `json:"include_images"`

	Timeout time.Duration `json:"-"`
}

// ProductView augments a product row with its derived fields. Stock and
// rating figures are computed per read, never stored.
type ProductView struct {
	tables.Product
	QtyLeft       uint64  `json:"qty_left"`
	IsInStock     bool    `json:"is_in_stock"`
	IsLowStock    bool    `json:"is_low_stock"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []ProductView       `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	QueryTime  time.Duration       `json:"query_time"`
}

const ratingSubquery = "(SELECT COALESCE(AVG(r.rating), 0) FROM product_reviews r WHERE r.product_id = p.id)"

// GetAllProducts retrieves products with filtering, sorting and
// pagination. List pages are served from cache when possible.
func (ps *ProductService) GetAllProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaultOptions(opts)

	cacheKey := ProductListKey(optionsHash(opts), opts.Page, opts.PageSize)
	if cached, err := ps.cacheService.Get(cacheKey); err == nil && cached != "" {
		var result ProductListResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			ps.logger.Debug("Product list served from cache", gecho.Field("key", cacheKey))
			result.QueryTime = time.Since(startTime)
			return &result, nil
		}
	}

	queryCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = ps.applySorting(query, opts)
	query = query.Relation("Category")
	if opts.IncludeImages {
		query = query.Relation("Images")
	}

	page, err := database.Paginate(query, queryCtx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("page_size", opts.PageSize),
			gecho.Field("duration", time.Since(startTime)))
		return nil, lib.MapPgError(err)
	}

	views, err := ps.annotate(queryCtx, page.Data)
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{
		Products:   views,
		Pagination: page.Pagination,
		QueryTime:  time.Since(startTime),
	}

	if data, err := json.Marshal(result); err == nil {
		if cacheErr := ps.cacheService.Set(cacheKey, data, ps.cacheService.config.Cache.ProductTTL); cacheErr != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", cacheErr), gecho.Field("key", cacheKey))
		}
	}

	ps.logger.Debug("Products fetched",
		gecho.Field("count", len(views)),
		gecho.Field("total", page.Pagination.TotalItems),
		gecho.Field("duration", time.Since(startTime)))

	return result, nil
}

func (ps *ProductService) applyDefaultOptions(opts *ProductListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100
	}
	if opts.SortBy == "" {
		opts.SortBy = "newest"
	}
}

func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.CategoryId != nil {
		query = query.Where("category_id", *opts.CategoryId)
	}
	if opts.Brand != "" {
		query = query.WhereRaw("brand ILIKE ?", opts.Brand)
	}
	if opts.SearchTerm != "" {
		pattern := "%" + opts.SearchTerm + "%"
		query = query.WhereRaw("(name ILIKE ? OR description ILIKE ? OR brand ILIKE ?)", pattern, pattern, pattern)
	}
	if opts.MinPrice != nil {
		query = query.WhereOp("price", ">=", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query = query.WhereOp("price", "<=", *opts.MaxPrice)
	}
	if len(opts.Sizes) > 0 {
		query = query.WhereRaw("sizes && ?", pgdialect.Array(opts.Sizes))
	}
	if opts.InStock != nil {
		if *opts.InStock {
			query = query.WhereRaw("total_qty - total_sold > 0")
		} else {
			query = query.WhereRaw("total_qty - total_sold <= 0")
		}
	}
	if opts.MinRating != nil {
		query = query.WhereRaw(ratingSubquery+" >= ?", *opts.MinRating)
	}
	return query
}

func (ps *ProductService) applySorting(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	switch opts.SortBy {
	case "price_asc":
		return query.OrderBy("price", database.ASC)
	case "price_desc":
		return query.OrderBy("price", database.DESC)
	case "oldest":
		return query.OrderBy("created_at", database.ASC)
	case "rating":
		return query.OrderByRaw(ratingSubquery + " DESC")
	case "popular":
		return query.OrderBy("total_sold", database.DESC)
	case "name_asc":
		return query.OrderBy("name", database.ASC)
	case "name_desc":
		return query.OrderBy("name", database.DESC)
	default: // newest
		return query.OrderBy("created_at", database.DESC)
	}
}

// optionsHash identifies one filter/sort combination for cache keys.
func optionsHash(opts *ProductListOptions) string {
	data, _ := json.Marshal(opts)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:8])
}

type ratingRow struct {
	ProductId   uuid.UUID `bun:"product_id"`
	Average     float64   `bun:"average"`
	ReviewCount int       `bun:"review_count"`
}

// GetRatingSummaries aggregates review stats for a set of products.
func (ps *ProductService) GetRatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]structs.RatingSummary, error) {
	summaries := make(map[uuid.UUID]structs.RatingSummary, len(productIDs))
	if len(productIDs) == 0 {
		return summaries, nil
	}

	rows, err := database.RawQuery[ratingRow](ps.db, ctx,
		"SELECT product_id, AVG(rating) AS average, COUNT(*) AS review_count FROM product_reviews WHERE product_id IN (?) GROUP BY product_id",
		bun.In(productIDs))
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for _, row := range rows {
		summaries[row.ProductId] = structs.RatingSummary{
			AverageRating: roundRating(row.Average),
			ReviewCount:   row.ReviewCount,
		}
	}
	return summaries, nil
}

// roundRating rounds to one decimal place.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// annotate attaches derived stock and rating fields to product rows.
func (ps *ProductService) annotate(ctx context.Context, products []tables.Product) ([]ProductView, error) {
	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].Id
	}

	summaries, err := ps.GetRatingSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i := range products {
		summary := summaries[products[i].Id] // zero value covers unrated
		views[i] = ProductView{
			Product:       products[i],
			QtyLeft:       products[i].QtyLeft(),
			IsInStock:     products[i].IsInStock(),
			IsLowStock:    products[i].IsLowStock(0),
			AverageRating: summary.AverageRating,
			ReviewCount:   summary.ReviewCount,
		}
	}
	return views, nil
}

// GetProduct returns one product with category, images and derived
// fields. The underlying row is cached; ratings are always fresh.
func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := ps.cacheService.GetProductFromCache(id)
	if err != nil {
		ps.logger.Warn("Failed to read product cache", gecho.Field("error", err), gecho.Field("product_id", id))
	}

	if product == nil {
		product, err = database.Query[tables.Product](ps.db).
			Where("id", id).
			Relation("Category").
			Relation("Images").
			First(ctx)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if product == nil {
			return nil, lib.ErrNotFound
		}

		go func(p tables.Product) {
			if err := ps.cacheService.SetProductInCache(&p); err != nil {
				ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("product_id", p.Id))
			}
		}(*product)
	}

	views, err := ps.annotate(ctx, []tables.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// buildImageRows turns an image payload batch into rows, enforcing the
// single-primary rule: when several payloads are flagged primary, the
// first flagged one wins and the rest are demoted.
func buildImageRows(productId uuid.UUID, payloads []structs.ImagePayload) []tables.ProductImage {
	rows := make([]tables.ProductImage, 0, len(payloads))
	primarySeen := false
	for _, img := range payloads {
		isPrimary := img.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		rows = append(rows, tables.ProductImage{
			ProductId: productId,
			URL:       img.URL,
			AltText:   img.AltText,
			IsPrimary: isPrimary,
		})
	}
	return rows
}

// CreateProduct inserts the product and its images in one transaction.
// At most one provided image may be primary; when several are flagged,
// the first flagged one wins.
func (ps *ProductService) CreateProduct(ctx context.Context, userId uuid.UUID, req *structs.CreateProductRequest) (*ProductView, error) {
	product := &tables.Product{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		CategoryId:  req.CategoryId,
		UserId:      userId,
		Price:       req.Price,
		Sizes:       req.Sizes,
		TotalQty:    req.TotalQty,
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", lib.ErrValidation, err.Error())
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return err
		}

		for _, image := range buildImageRows(product.Id, req.Images) {
			if _, err := tx.NewInsert().Model(&image).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		mappedErr := lib.MapPgError(err)
		ps.logger.Error("Failed to create product", gecho.Field("error", mappedErr), gecho.Field("name", req.Name))
		return nil, mappedErr
	}

	ps.invalidate(product.Id)
	ps.logger.Info("Product created", gecho.Field("product_id", product.Id), gecho.Field("name", product.Name))

	return ps.GetProduct(ctx, product.Id)
}

// UpdateProduct patches the provided fields, re-checking invariants
// against the resulting row.
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *structs.UpdateProductRequest) (*ProductView, error) {
	current, err := database.Query[tables.Product](ps.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if current == nil {
		return nil, lib.ErrNotFound
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Brand != nil {
		current.Brand = *req.Brand
	}
	if req.CategoryId != nil {
		current.CategoryId = *req.CategoryId
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.TotalQty != nil {
		current.TotalQty = *req.TotalQty
	}
	if req.TotalSold != nil {
		current.TotalSold = *req.TotalSold
	}
	if req.Sizes != nil {
		current.Sizes = req.Sizes
	}

	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", lib.ErrValidation, err.Error())
	}

	updates := map[string]any{
		"name":        current.Name,
		"description": current.Description,
		"brand":       current.Brand,
		"category_id": current.CategoryId,
		"price":       current.Price,
		"total_qty":   current.TotalQty,
		"total_sold":  current.TotalSold,
		"sizes":       pgdialect.Array(current.Sizes),
		"updated_at":  time.Now(),
	}
	if _, err := database.Query[tables.Product](ps.db).Where("id", id).Update(ctx, updates); err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidate(id)
	return ps.GetProduct(ctx, id)
}

// DeleteProduct removes a product with its images, reviews and wishlist
// entries. Historical orders keep their snapshots and are unaffected.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		for _, table := range []string{"product_images", "product_reviews", "wishlists"} {
			if _, err := tx.NewDelete().Table(table).Where("product_id = ?", id).Exec(ctx); err != nil {
				return err
			}
		}
		res, err := tx.NewDelete().Table("products").Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	ps.invalidate(id)
	ps.logger.Info("Product deleted", gecho.Field("product_id", id))
	return nil
}

// SaveImage attaches an image. When the new image is primary, the demote
// of the current primary and the insert happen in the same transaction
// so exactly one primary survives any interleaving.
func (ps *ProductService) SaveImage(ctx context.Context, productId uuid.UUID, payload *structs.ImagePayload) (*tables.ProductImage, error) {
	exists, err := database.Query[tables.Product](ps.db).Where("id", productId).Exists(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, lib.ErrNotFound
	}

	image := &tables.ProductImage{
		ProductId: productId,
		URL:       payload.URL,
		AltText:   payload.AltText,
		IsPrimary: payload.IsPrimary,
	}

	err = database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if payload.IsPrimary {
			if _, err := tx.NewUpdate().Table("product_images").
				Set("is_primary = ?", false).
				Where("product_id = ?", productId).
				Where("is_primary = ?", true).
				Exec(ctx); err != nil {
				return err
			}
		}
		_, err := tx.NewInsert().Model(image).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidate(productId)
	return image, nil
}

func (ps *ProductService) DeleteImage(ctx context.Context, productId, imageId uuid.UUID) error {
	affected, err := database.Query[tables.ProductImage](ps.db).
		Where("id", imageId).
		Where("product_id", productId).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	ps.invalidate(productId)
	return nil
}

// RecordSale increments total_sold atomically, guarded by available
// stock. Runs on the caller's transaction so an order either reserves
// stock for every item or for none.
func (ps *ProductService) RecordSale(ctx context.Context, idb bun.IDB, productId uuid.UUID, quantity int) error {
	res, err := idb.NewUpdate().Table("products").
		Set("total_sold = total_sold + ?", quantity).
		Set("updated_at = now()").
		Where("id = ?", productId).
		Where("total_qty - total_sold >= ?", quantity).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Either the product is gone or the guard failed; disambiguate
		exists, err := idb.NewSelect().Table("products").Where("id = ?", productId).Exists(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		if !exists {
			return lib.ErrNotFound
		}
		return lib.ErrInsufficientStock
	}

	ps.invalidate(productId)
	return nil
}

// ReleaseSale returns previously reserved units, clamped at zero.
func (ps *ProductService) ReleaseSale(ctx context.Context, idb bun.IDB, productId uuid.UUID, quantity int) error {
	_, err := idb.NewUpdate().Table("products").
		Set("total_sold = GREATEST(total_sold - ?, 0)", quantity).
		Set("updated_at = now()").
		Where("id = ?", productId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	ps.invalidate(productId)
	return nil
}

// Restock raises total_qty.
func (ps *ProductService) Restock(ctx context.Context, productId uuid.UUID, quantity uint64) error {
	affected, err := database.RawExec(ps.db, ctx,
		"UPDATE products SET total_qty = total_qty + ?, updated_at = now() WHERE id = ?",
		quantity, productId)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	ps.invalidate(productId)
	return nil
}

// GetLowStock lists products with 0 < qty_left <= threshold.
func (ps *ProductService) GetLowStock(ctx context.Context, threshold uint64, page, pageSize int) (*ProductListResult, error) {
	if threshold == 0 {
		threshold = tables.DefaultLowStockThreshold
	}

	query := database.Query[tables.Product](ps.db).
		WhereRaw("total_qty - total_sold > 0").
		WhereRaw("total_qty - total_sold <= ?", threshold).
		OrderByRaw("total_qty - total_sold ASC")

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	views, err := ps.annotate(ctx, result.Data)
	if err != nil {
		return nil, err
	}

	return &ProductListResult{Products: views, Pagination: result.Pagination}, nil
}

// GetOutOfStock lists products with no units left.
func (ps *ProductService) GetOutOfStock(ctx context.Context, page, pageSize int) (*ProductListResult, error) {
	query := database.Query[tables.Product](ps.db).
		WhereRaw("total_qty - total_sold <= 0").
		OrderBy("updated_at", database.DESC)

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	views, err := ps.annotate(ctx, result.Data)
	if err != nil {
		return nil, err
	}

	return &ProductListResult{Products: views, Pagination: result.Pagination}, nil
}

// GetCatalogStats aggregates admin dashboard figures in one round trip
// per figure.
func (ps *ProductService) GetCatalogStats(ctx context.Context) (*structs.CatalogStats, error) {
	stats := &structs.CatalogStats{}

	var err error
	if stats.TotalProducts, err = database.Query[tables.Product](ps.db).Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	if stats.TotalCategories, err = database.Query[tables.Category](ps.db).Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	if stats.OutOfStock, err = database.Query[tables.Product](ps.db).WhereRaw("total_qty - total_sold <= 0").Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	if stats.LowStock, err = database.Query[tables.Product](ps.db).
		WhereRaw("total_qty - total_sold > 0").
		WhereRaw("total_qty - total_sold <= ?", tables.DefaultLowStockThreshold).
		Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}

	type soldRow struct {
		TotalSold uint64 `bun:"total_sold"`
	}
	row, err := database.RawQueryOne[soldRow](ps.db, ctx, "SELECT COALESCE(SUM(total_sold), 0) AS total_sold FROM products")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row != nil {
		stats.TotalUnitsSold = row.TotalSold
	}

	if stats.TopSellers, err = database.Query[tables.Product](ps.db).
		WhereOp("total_sold", ">", 0).
		OrderBy("total_sold", database.DESC).
		Limit(5).
		All(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	if stats.RecentProducts, err = database.Query[tables.Product](ps.db).
		OrderBy("created_at", database.DESC).
		Limit(5).
		All(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}

	return stats, nil
}

func (ps *ProductService) invalidate(productId uuid.UUID) {
	if err := ps.cacheService.InvalidateProduct(productId); err != nil {
		ps.logger.Warn("Failed to invalidate product cache", gecho.Field("error", err), gecho.Field("product_id", productId))
	}
}
