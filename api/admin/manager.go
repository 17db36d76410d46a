package admin

import (
	"stitchmart_server/api/middleware"
	"stitchmart_server/services"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	productService  *services.ProductService
	categoryService *services.CategoryService
	userService     *services.UserService
	orderService    *services.OrderService
	authService     *services.AuthService
	mw              *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	productService *services.ProductService,
	categoryService *services.CategoryService,
	userService *services.UserService,
	orderService *services.OrderService,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:          logger,
		cfg:             cfg,
		productService:  productService,
		categoryService: categoryService,
		userService:     userService,
		orderService:    orderService,
		authService:     authService,
		mw:              mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Post("/categories", arm.HandleCreateCategory)
		r.Put("/categories/{id}", arm.HandleUpdateCategory)
		r.Delete("/categories/{id}", arm.HandleDeleteCategory)

		r.Post("/products", arm.HandleCreateProduct)
		r.Put("/products/{id}", arm.HandleUpdateProduct)
		r.Delete("/products/{id}", arm.HandleDeleteProduct)
		r.Post("/products/{id}/images", arm.HandleAddImage)
		r.Post("/products/{id}/images/upload", arm.HandleUploadImages)
		r.Delete("/products/{id}/images/{imageId}", arm.HandleDeleteImage)
		r.Post("/products/{id}/restock", arm.HandleRestock)
		r.Get("/products/low-stock", arm.HandleLowStock)
		r.Get("/products/out-of-stock", arm.HandleOutOfStock)

		r.Get("/users", arm.HandleListUsers)
		r.Post("/users", arm.HandleCreateUser)
		r.Get("/users/{id}", arm.HandleGetUser)
		r.Put("/users/{id}", arm.HandleUpdateUser)
		r.Delete("/users/{id}", arm.HandleDeleteUser)

		r.Get("/orders", arm.HandleListOrders)
		r.Put("/orders/{id}", arm.HandleUpdateOrder)

		r.Get("/stats", arm.HandleDashboardStats)
	})
}
