package users

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (urm *UserRoutesManager) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user, address, err := urm.userService.GetProfile(r.Context(), claims.Sub)
	if err != nil {
		urm.logger.Error("Failed to load profile", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"user":             user,
			"shipping_address": address,
		}),
		gecho.Send(),
	)
}

// HandleUpdateProfile changes the caller's own fullname or email.
func (urm *UserRoutesManager) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProfileUpdateRequest](r)
	if err != nil {
		urm.logger.Warn("Failed to extract profile update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the profile information and try again"), gecho.Send())
		return
	}

	user, err := urm.userService.UpdateUser(r.Context(), claims.Sub, &structs.UserUpdateRequest{
		Fullname: body.Fullname,
		Email:    body.Email,
	})
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.users.notFound"), gecho.Send())
			return
		}
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with this email already exists"), gecho.Send())
			return
		}
		urm.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update profile. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Profile updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
