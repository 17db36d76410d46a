package orders

import (
	"stitchmart_server/api/middleware"
	"stitchmart_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	authService  *services.AuthService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		authService:  authService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(orm.mw.UserAuthMiddleware)
		r.Post("/", orm.HandleCreateOrder)
		r.Get("/", orm.HandleListMyOrders)
		r.Get("/stats", orm.HandleMyOrderStats)
		r.Get("/{id}", orm.HandleGetOrder)
		r.Post("/{id}/cancel", orm.HandleCancelOrder)
	})
}
