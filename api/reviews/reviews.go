package reviews

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/handling"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (rrm *ReviewRoutesManager) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := rrm.reviewService.ListReviews(r.Context(), productId, page, pageSize)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		rrm.logger.Error("Failed to list reviews", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("error.reviews.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"reviews":    result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (rrm *ReviewRoutesManager) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReviewRequest](r)
	if err != nil {
		rrm.logger.Warn("Failed to extract review body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check the review fields"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check the review fields"), gecho.Send())
		return
	}

	review, err := rrm.reviewService.CreateReview(r.Context(), claims.Sub, productId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("You have already reviewed this product"), gecho.Send())
			return
		}
		rrm.logger.Error("Failed to create review", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save review. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review saved"),
		gecho.WithData(review),
		gecho.Send(),
	)
}

// HandleUpdateReview lets the author or an admin edit a review.
func (rrm *ReviewRoutesManager) HandleUpdateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	reviewId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.reviews.invalidReviewId"), gecho.Send())
		return
	}

	existing, err := rrm.reviewService.GetReview(r.Context(), reviewId)
	if err != nil {
		handling.RespondError(w, rrm.logger, err, "error.reviews.notFound")
		return
	}

	if err := lib.Authorize(claims, existing.UserId); err != nil {
		gecho.Forbidden(w, gecho.WithMessage("You can only edit your own reviews"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReviewRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the review fields"), gecho.Send())
		return
	}

	review, err := rrm.reviewService.UpdateReview(r.Context(), reviewId, body)
	if err != nil {
		rrm.logger.Error("Failed to update review", gecho.Field("error", err), gecho.Field("review_id", reviewId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update review. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review updated"),
		gecho.WithData(review),
		gecho.Send(),
	)
}

// HandleDeleteReview lets the author or an admin remove a review.
func (rrm *ReviewRoutesManager) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	reviewId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.reviews.invalidReviewId"), gecho.Send())
		return
	}

	existing, err := rrm.reviewService.GetReview(r.Context(), reviewId)
	if err != nil {
		handling.RespondError(w, rrm.logger, err, "error.reviews.notFound")
		return
	}

	if err := lib.Authorize(claims, existing.UserId); err != nil {
		gecho.Forbidden(w, gecho.WithMessage("You can only delete your own reviews"), gecho.Send())
		return
	}

	if err := rrm.reviewService.DeleteReview(r.Context(), reviewId); err != nil {
		rrm.logger.Error("Failed to delete review", gecho.Field("error", err), gecho.Field("review_id", reviewId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete review. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review deleted"),
		gecho.Send(),
	)
}
