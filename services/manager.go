package services

import (
	"stitchmart_server/database"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	UserService     *UserService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	CategoryService *CategoryService
	ProductService  *ProductService
	ReviewService   *ReviewService
	WishlistService *WishlistService
	OrderService    *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService, emailService)
	userService := NewUserService(logger, db, cacheService)
	healthService := NewHealthService(logger, db, cacheService)
	categoryService := NewCategoryService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	reviewService := NewReviewService(logger, db)
	wishlistService := NewWishlistService(logger, db)
	orderService := NewOrderService(logger, cfg, db, productService, emailService)

	return &ServiceManager{
		AuthService:     authService,
		UserService:     userService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		CategoryService: categoryService,
		ProductService:  productService,
		ReviewService:   reviewService,
		WishlistService: wishlistService,
		OrderService:    orderService,
	}
}
