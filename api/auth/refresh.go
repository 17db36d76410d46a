package auth

import (
	"errors"
	"net/http"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates the token pair. The refresh token is read from
// the cookie first, the request body second.
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil || refreshToken == "" {
		body, err := lib.ExtractAndValidateBody[structs.RefreshTokenRequest](r)
		if err != nil {
			arm.logger.Warn("No refresh token provided", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Refresh token required"), gecho.Send())
			return
		}
		refreshToken = body.RefreshToken
	}

	response, err := arm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidToken) || errors.Is(err, lib.ErrExpiredToken) {
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired refresh token"), gecho.Send())
			return
		}
		arm.logger.Error("Token refresh failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to refresh session. Please log in again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.RefreshCookieName, response.RefreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, response.AccessToken, arm.authService.GetAccessTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Session refreshed"),
		gecho.WithData(response),
		gecho.Send(),
	)
}
