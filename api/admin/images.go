package admin

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxImageUploadBytes = 8 << 20 // per file

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// HandleAddImage attaches an already-hosted image by URL.
func (arm *AdminRoutesManager) HandleAddImage(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ImagePayload](r)
	if err != nil {
		arm.logger.Warn("Failed to extract image body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the image information and try again"), gecho.Send())
		return
	}

	image, err := arm.productService.SaveImage(r.Context(), productId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to save product image", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save image. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image saved"),
		gecho.WithData(image),
		gecho.Send(),
	)
}

// HandleUploadImages accepts multipart uploads under the "image" or
// "images" field, writes the files below the media dir and registers
// them on the product. The first uploaded file of a product with no
// primary image becomes primary.
func (arm *AdminRoutesManager) HandleUploadImages(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid multipart form data"), gecho.Send())
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		files = r.MultipartForm.File["image"]
	}
	if len(files) == 0 {
		gecho.BadRequest(w, gecho.WithMessage("No image files provided"), gecho.Send())
		return
	}

	saved := make([]any, 0, len(files))
	for _, header := range files {
		url, err := arm.storeUpload(productId, header)
		if err != nil {
			arm.logger.Warn("Rejected image upload", gecho.Field("error", err), gecho.Field("filename", header.Filename))
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		}

		image, err := arm.productService.SaveImage(r.Context(), productId, &structs.ImagePayload{
			URL:     url,
			AltText: header.Filename,
		})
		if err != nil {
			if errors.Is(err, lib.ErrNotFound) {
				gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
				return
			}
			arm.logger.Error("Failed to register uploaded image", gecho.Field("error", err), gecho.Field("product_id", productId))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to save image. Please try again"), gecho.Send())
			return
		}
		saved = append(saved, image)
	}

	gecho.Success(w,
		gecho.WithMessage("Images uploaded"),
		gecho.WithData(map[string]any{
			"images": saved,
			"count":  len(saved),
		}),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) storeUpload(productId uuid.UUID, header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageUploadBytes {
		return "", fmt.Errorf("file %s exceeds the size limit", header.Filename)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(arm.cfg.Media.Dir, "products", productId.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/products/%s/%s", arm.cfg.Media.URLPrefix, productId.String(), filename), nil
}

func (arm *AdminRoutesManager) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	imageId, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidImageId"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteImage(r.Context(), productId, imageId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.products.imageNotFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete product image", gecho.Field("error", err), gecho.Field("image_id", imageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete image. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image deleted"),
		gecho.Send(),
	)
}
