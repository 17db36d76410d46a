package orders

import (
	"errors"
	"net/http"
	"stitchmart_server/api/health"
	"stitchmart_server/api/middleware"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract order body", gecho.Field("error", err))
		if verr, ok := lib.AsValidationError(err); ok {
			gecho.BadRequest(w, gecho.WithMessage("Please check the order fields"), gecho.WithData(verr.Errors), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Please check the order fields"), gecho.Send())
		return
	}

	user, err := orm.authService.GetUserByID(claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to load user for order", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to place order. Please try again"), gecho.Send())
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), user, body)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrInsufficientStock):
			gecho.Conflict(w, gecho.WithMessage("One or more items no longer have enough stock"), gecho.Send())
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("One or more products could not be found"), gecho.Send())
		case errors.Is(err, lib.ErrValidation):
			gecho.BadRequest(w, gecho.WithMessage("A shipping address is required before ordering"), gecho.Send())
		default:
			orm.logger.Error("Failed to place order", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to place order. Please try again"), gecho.Send())
		}
		return
	}

	health.OrdersPlaced.Inc()

	gecho.Success(w,
		gecho.WithMessage("Order placed"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
