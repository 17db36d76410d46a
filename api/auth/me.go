package auth

import (
	"net/http"
	"stitchmart_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUserByID(claims.Sub)
	if err != nil {
		arm.logger.Error("Failed to load current user", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
