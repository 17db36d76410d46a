package admin

import (
	"errors"
	"net/http"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract category body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the category information and try again"), gecho.Send())
		return
	}

	category, err := arm.categoryService.CreateCategory(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create category", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalidCategoryId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the category information and try again"), gecho.Send())
		return
	}

	category, err := arm.categoryService.UpdateCategory(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
			return
		}
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("category_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

// HandleDeleteCategory removes a category together with its products.
func (arm *AdminRoutesManager) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.categories.invalidCategoryId"), gecho.Send())
		return
	}

	if err := arm.categoryService.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.categories.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.Send(),
	)
}
