package admin

import (
	"errors"
	"net/http"
	"stitchmart_server/handling"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandleListOrders lists all orders, optionally filtered by status.
func (arm *AdminRoutesManager) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	if userIdStr := r.URL.Query().Get("user_id"); userIdStr != "" {
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("error.users.invalidUserId"), gecho.Send())
			return
		}
		opts.UserId = userId
	}

	views, pagination, err := arm.orderService.ListOrders(r.Context(), opts)
	if err != nil {
		arm.logger.Error("Failed to list orders", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.orders.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders":     views,
			"pagination": pagination,
		}),
		gecho.Send(),
	)
}

// HandleUpdateOrder moves an order through its lifecycle or updates its
// payment status.
func (arm *AdminRoutesManager) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderUpdateRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract order update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the order information and try again"), gecho.Send())
		return
	}

	order, err := arm.orderService.UpdateOrder(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
			return
		}
		if errors.Is(err, lib.ErrInvalidTransition) {
			gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update order", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update order. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
