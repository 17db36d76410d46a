package products

import (
	"errors"
	"net/http"
	"stitchmart_server/handling"
	"stitchmart_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := prm.categoryService.ListCategories(r.Context(), page, pageSize)
	if err != nil {
		prm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.categories.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalidCategoryId"), gecho.Send())
		return
	}

	category, err := prm.categoryService.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to fetch category", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.categories.failedToFetchOne"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.Send(),
	)
}
