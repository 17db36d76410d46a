package admin

import (
	"net/http"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleDashboardStats returns the admin dashboard figures: catalog
// totals plus user counts and recent registrations.
func (arm *AdminRoutesManager) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	catalog, err := arm.productService.GetCatalogStats(r.Context())
	if err != nil {
		arm.logger.Error("Failed to fetch catalog stats", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.stats.failedToFetch"), gecho.Send())
		return
	}

	users, err := arm.userService.GetUserStats(r.Context())
	if err != nil {
		arm.logger.Error("Failed to fetch user stats", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.stats.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(&structs.DashboardStats{Catalog: catalog, Users: users}),
		gecho.Send(),
	)
}
