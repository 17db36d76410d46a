package services

import (
	"context"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type WishlistService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewWishlistService(logger *gecho.Logger, db *database.DB) *WishlistService {
	return &WishlistService{
		logger: logger,
		db:     db,
	}
}

// ListWishlist returns the user's wishlist with product details.
func (ws *WishlistService) ListWishlist(ctx context.Context, userId uuid.UUID, page, pageSize int) (*database.PaginationResult[tables.Wishlist], error) {
	query := database.Query[tables.Wishlist](ws.db).
		Where("user_id", userId).
		Relation("Product").
		OrderBy("created_at", database.DESC)

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// AddToWishlist inserts the (user, product) pair. A duplicate add is a
// conflict, not a no-op, per the unique constraint.
func (ws *WishlistService) AddToWishlist(ctx context.Context, userId, productId uuid.UUID) (*tables.Wishlist, error) {
	exists, err := database.Query[tables.Product](ws.db).Where("id", productId).Exists(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, lib.ErrNotFound
	}

	entry := &tables.Wishlist{
		UserId:    userId,
		ProductId: productId,
	}
	entry, err = database.Query[tables.Wishlist](ws.db).Insert(ctx, entry)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			ws.logger.Debug("Duplicate wishlist add rejected",
				gecho.Field("user_id", userId),
				gecho.Field("product_id", productId),
			)
		}
		return nil, mappedErr
	}

	return entry, nil
}

// RemoveFromWishlist deletes by product, scoped to the calling user.
func (ws *WishlistService) RemoveFromWishlist(ctx context.Context, userId, productId uuid.UUID) error {
	affected, err := database.Query[tables.Wishlist](ws.db).
		Where("user_id", userId).
		Where("product_id", productId).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// IsWishlisted reports whether the user has the product saved.
func (ws *WishlistService) IsWishlisted(ctx context.Context, userId, productId uuid.UUID) (bool, error) {
	exists, err := database.Query[tables.Wishlist](ws.db).
		Where("user_id", userId).
		Where("product_id", productId).
		Exists(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	return exists, nil
}
