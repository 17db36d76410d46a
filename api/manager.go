package api

import (
	"stitchmart_server/api/admin"
	"stitchmart_server/api/auth"
	"stitchmart_server/api/health"
	"stitchmart_server/api/middleware"
	"stitchmart_server/api/orders"
	"stitchmart_server/api/products"
	"stitchmart_server/api/reviews"
	"stitchmart_server/api/users"
	"stitchmart_server/api/wishlist"
	"stitchmart_server/services"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	userRoutes     *users.UserRoutesManager
	reviewRoutes   *reviews.ReviewRoutesManager
	wishlistRoutes *wishlist.WishlistRoutesManager
	orderRoutes    *orders.OrderRoutesManager
	adminRoutes    *admin.AdminRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.ProductService, sm.CategoryService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, cfg, mw),
		userRoutes:     users.NewUserRoutesManager(logger, sm.UserService, mw),
		reviewRoutes:   reviews.NewReviewRoutesManager(logger, sm.ReviewService, mw),
		wishlistRoutes: wishlist.NewWishlistRoutesManager(logger, sm.WishlistService, mw),
		orderRoutes:    orders.NewOrderRoutesManager(logger, sm.OrderService, sm.AuthService, mw),
		adminRoutes:    admin.NewAdminRoutesManager(logger, cfg, sm.ProductService, sm.CategoryService, sm.UserService, sm.OrderService, sm.AuthService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.userRoutes.RegisterRoutes(r)
	rm.reviewRoutes.RegisterRoutes(r)
	rm.wishlistRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
