package admin

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/handling"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check the product information and try again"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check the product information and try again"), gecho.Send())
		return
	}

	arm.logger.Debug("Creating product",
		gecho.Field("product_name", body.Name),
		gecho.Field("images_count", len(body.Images)),
	)

	product, err := arm.productService.CreateProduct(r.Context(), claims.Sub, body)
	if err != nil {
		if errors.Is(err, lib.ErrValidation) {
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrNotFound) {
			gecho.BadRequest(w, gecho.WithMessage("Category does not exist"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create product", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create product. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the product information and try again"), gecho.Send())
		return
	}

	product, err := arm.productService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrValidation) {
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update product. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// HandleDeleteProduct removes a product. Historical orders keep their
// item snapshots.
func (arm *AdminRoutesManager) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete product. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}

type restockRequest struct {
	Quantity uint64 `json:"quantity" validate:"required,gt=0"`
}

func (arm *AdminRoutesManager) HandleRestock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[restockRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("A positive quantity is required"), gecho.Send())
		return
	}

	if err := arm.productService.Restock(r.Context(), id, body.Quantity); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to restock product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to restock product. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Stock updated"),
		gecho.Send(),
	)
}

// HandleLowStock lists products running low; ?threshold= overrides the
// default.
func (arm *AdminRoutesManager) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	var threshold uint64
	if t := r.URL.Query().Get("threshold"); t != "" {
		val, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
			return
		}
		threshold = val
	}

	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := arm.productService.GetLowStock(r.Context(), threshold, page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to fetch low stock products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleOutOfStock(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := arm.productService.GetOutOfStock(r.Context(), page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to fetch out of stock products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}
