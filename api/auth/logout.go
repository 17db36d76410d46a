package auth

import (
	"net/http"
	"stitchmart_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleLogout clears the auth cookies and blacklists both tokens.
// Always succeeds; a half-valid session still ends up logged out.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.authService.GetAccessTokenSecret())
	if err != nil {
		claims = nil
	}

	refreshToken, _ := lib.GetCookieValue(lib.RefreshCookieName, r)

	arm.authService.Logout(claims, refreshToken)

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out"),
		gecho.Send(),
	)
}
