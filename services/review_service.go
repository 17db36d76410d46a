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
)

type ReviewService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewReviewService(logger *gecho.Logger, db *database.DB) *ReviewService {
	return &ReviewService{
		logger: logger,
		db:     db,
	}
}

// ListReviews returns a product's reviews, newest first, with authors.
func (rs *ReviewService) ListReviews(ctx context.Context, productId uuid.UUID, page, pageSize int) (*database.PaginationResult[tables.Review], error) {
	exists, err := database.Query[tables.Product](rs.db).Where("id", productId).Exists(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, lib.ErrNotFound
	}

	query := database.Query[tables.Review](rs.db).
		Where("product_id", productId).
		Relation("User").
		OrderBy("created_at", database.DESC)

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		if result.Data[i].User != nil {
			result.Data[i].User.PasswordHash = ""
		}
	}
	return result, nil
}

// CreateReview inserts a review. The (product, user) unique constraint
// surfaces concurrent duplicates as ErrConflict without any pre-check
// race.
func (rs *ReviewService) CreateReview(ctx context.Context, userId, productId uuid.UUID, req *structs.ReviewRequest) (*tables.Review, error) {
	exists, err := database.Query[tables.Product](rs.db).Where("id", productId).Exists(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, lib.ErrNotFound
	}

	review := &tables.Review{
		ProductId: productId,
		UserId:    userId,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	review, err = database.Query[tables.Review](rs.db).Insert(ctx, review)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			rs.logger.Debug("Duplicate review rejected",
				gecho.Field("user_id", userId),
				gecho.Field("product_id", productId),
			)
		} else {
			rs.logger.Error("Failed to create review",
				gecho.Field("error", mappedErr),
				gecho.Field("product_id", productId),
			)
		}
		return nil, mappedErr
	}

	rs.logger.Debug("Review created", gecho.Field("review_id", review.Id), gecho.Field("product_id", productId))
	return review, nil
}

// UpdateReview edits rating or comment; only the author or an admin may
// call it, which the handler has already checked via the owner id.
func (rs *ReviewService) UpdateReview(ctx context.Context, reviewId uuid.UUID, req *structs.ReviewRequest) (*tables.Review, error) {
	updates := map[string]any{
		"rating":     req.Rating,
		"comment":    req.Comment,
		"updated_at": time.Now(),
	}
	affected, err := database.Query[tables.Review](rs.db).Where("id", reviewId).Update(ctx, updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	review, err := database.Query[tables.Review](rs.db).Where("id", reviewId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return review, nil
}

func (rs *ReviewService) DeleteReview(ctx context.Context, reviewId uuid.UUID) error {
	affected, err := database.Query[tables.Review](rs.db).Where("id", reviewId).Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// GetReview fetches one review; used by handlers for ownership checks.
func (rs *ReviewService) GetReview(ctx context.Context, reviewId uuid.UUID) (*tables.Review, error) {
	review, err := database.Query[tables.Review](rs.db).Where("id", reviewId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if review == nil {
		return nil, lib.ErrNotFound
	}
	return review, nil
}
