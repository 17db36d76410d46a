package services

import (
	"context"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CategoryService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCategoryService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CategoryService {
	return &CategoryService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

func (cs *CategoryService) ListCategories(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Category], error) {
	query := database.Query[tables.Category](cs.db).OrderBy("name", database.ASC)
	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (cs *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*tables.Category, error) {
	category, err := database.Query[tables.Category](cs.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if category == nil {
		return nil, lib.ErrNotFound
	}
	return category, nil
}

// CreateCategory inserts a category; the unique name constraint comes
// back as ErrConflict.
func (cs *CategoryService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	category := &tables.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	category, err := database.Query[tables.Category](cs.db).Insert(ctx, category)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			cs.logger.Warn("Category name already taken", gecho.Field("name", req.Name))
		} else {
			cs.logger.Error("Failed to create category", gecho.Field("error", mappedErr), gecho.Field("name", req.Name))
		}
		return nil, mappedErr
	}

	cs.logger.Info("Category created", gecho.Field("category_id", category.Id), gecho.Field("name", category.Name))
	return category, nil
}

func (cs *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *structs.CategoryRequest) (*tables.Category, error) {
	updates := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"updated_at":  time.Now(),
	}
	affected, err := database.Query[tables.Category](cs.db).Where("id", id).Update(ctx, updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}
	return cs.GetCategory(ctx, id)
}

// DeleteCategory removes the category and its products in one
// transaction, product images included.
func (cs *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := database.Transaction(cs.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().Table("product_images").
			Where("product_id IN (SELECT id FROM products WHERE category_id = ?)", id).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Table("products").Where("category_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().Table("categories").Where("id = ?", id).Exec(ctx)
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

	// Cached lists may reference the deleted products
	if cacheErr := cs.cacheService.DeleteByPattern("products:list:*"); cacheErr != nil {
		cs.logger.Warn("Failed to invalidate product list cache after category delete", gecho.Field("error", cacheErr))
	}

	cs.logger.Info("Category deleted with its products", gecho.Field("category_id", id))
	return nil
}
