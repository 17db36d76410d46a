package orders

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/handling"
	"stitchmart_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandleListMyOrders lists the caller's own orders, newest first.
func (orm *OrderRoutesManager) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}
	opts.UserId = claims.Sub

	views, pagination, err := orm.orderService.ListOrders(r.Context(), opts)
	if err != nil {
		orm.logger.Error("Failed to list orders", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
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

// HandleGetOrder returns one order; owners and admins only.
func (orm *OrderRoutesManager) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidOrderId"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrder(r.Context(), orderId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
			return
		}
		orm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("error.orders.failedToFetchOne"), gecho.Send())
		return
	}

	if err := lib.Authorize(claims, order.UserId); err != nil {
		// Do not reveal that the order exists
		gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

// HandleCancelOrder cancels a pending order and returns its stock.
func (orm *OrderRoutesManager) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.orders.invalidOrderId"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrder(r.Context(), orderId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
			return
		}
		orm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", orderId))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	if err := lib.Authorize(claims, order.UserId); err != nil {
		gecho.NotFound(w, gecho.WithMessage("error.orders.notFound"), gecho.Send())
		return
	}

	cancelled, err := orm.orderService.CancelOrder(r.Context(), orderId)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidTransition) {
			gecho.Conflict(w, gecho.WithMessage("Only pending orders can be cancelled"), gecho.Send())
			return
		}
		orm.logger.Error("Failed to cancel order", gecho.Field("error", err), gecho.Field("order_id", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to cancel order. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order cancelled"),
		gecho.WithData(cancelled),
		gecho.Send(),
	)
}

// HandleMyOrderStats aggregates the caller's order figures.
func (orm *OrderRoutesManager) HandleMyOrderStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	stats, err := orm.orderService.GetOrderStats(r.Context(), claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to fetch order stats", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("error.orders.failedToFetchStats"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}
