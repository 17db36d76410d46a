package auth

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.PasswordChangeRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract password change body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check the password fields"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check the password fields"), gecho.Send())
		return
	}

	if err := arm.authService.ChangePassword(claims.Sub, body); err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			gecho.Unauthorized(w, gecho.WithMessage("Current password is incorrect"), gecho.Send())
			return
		}
		arm.logger.Error("Password change failed", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to change password. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Password changed"),
		gecho.Send(),
	)
}
