package users

import (
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/handling"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (urm *UserRoutesManager) HandleGetAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	address, err := urm.userService.GetShippingAddress(r.Context(), claims.Sub)
	if err != nil {
		handling.RespondError(w, urm.logger, err, "No shipping address on file")
		return
	}

	gecho.Success(w,
		gecho.WithData(address),
		gecho.Send(),
	)
}

// HandleSaveAddress creates or replaces the caller's single shipping
// address.
func (urm *UserRoutesManager) HandleSaveAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ShippingAddressRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract address body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check the address fields"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check the address fields"), gecho.Send())
		return
	}

	address, err := urm.userService.SaveShippingAddress(r.Context(), claims.Sub, body)
	if err != nil {
		urm.logger.Error("Failed to save shipping address", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save shipping address"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Shipping address saved"),
		gecho.WithData(address),
		gecho.Send(),
	)
}
