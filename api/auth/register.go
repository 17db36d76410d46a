package auth

import (
	"net/http"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract registration body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check your registration information"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information"), gecho.Send())
		return
	}

	user, err := arm.authService.Register(body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with this email already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Registration failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create account. Please try again"), gecho.Send())
		return
	}

	accessToken, err := arm.authService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate access token after registration", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Account created, please log in"), gecho.Send())
		return
	}

	refreshToken, err := arm.authService.GenerateRefreshToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate refresh token after registration", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Account created, please log in"), gecho.Send())
		return
	}

	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, accessToken, arm.authService.GetAccessTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Account created"),
		gecho.WithData(map[string]any{
			"user":          user,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		}),
		gecho.Send(),
	)
}
