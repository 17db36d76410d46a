package wishlist

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

func (wrm *WishlistRoutesManager) HandleListWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := wrm.wishlistService.ListWishlist(r.Context(), claims.Sub, page, pageSize)
	if err != nil {
		wrm.logger.Error("Failed to list wishlist", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("error.wishlist.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"wishlist":   result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) HandleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.WishlistRequest](r)
	if err != nil {
		wrm.logger.Warn("Failed to extract wishlist body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("A product id is required"), gecho.Send())
		return
	}

	entry, err := wrm.wishlistService.AddToWishlist(r.Context(), claims.Sub, body.ProductId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("Product is already on your wishlist"), gecho.Send())
			return
		}
		wrm.logger.Error("Failed to add to wishlist", gecho.Field("error", err), gecho.Field("product_id", body.ProductId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update wishlist. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Added to wishlist"),
		gecho.WithData(entry),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) HandleCheckWishlisted(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	productId, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	wishlisted, err := wrm.wishlistService.IsWishlisted(r.Context(), claims.Sub, productId)
	if err != nil {
		wrm.logger.Error("Failed to check wishlist", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to check wishlist. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product_id": productId,
			"wishlisted": wishlisted,
		}),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) HandleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	productId, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := wrm.wishlistService.RemoveFromWishlist(r.Context(), claims.Sub, productId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product is not on your wishlist"), gecho.Send())
			return
		}
		wrm.logger.Error("Failed to remove from wishlist", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update wishlist. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Removed from wishlist"),
		gecho.Send(),
	)
}
