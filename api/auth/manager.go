package auth

import (
	"stitchmart_server/api/middleware"
	"stitchmart_server/services"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	cfg         *structs.Config
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		cfg:         cfg,
		mw:          mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// Public routes
		r.Post("/register", arm.HandleRegister)
		r.Post("/login", arm.HandleLogin)
		r.Post("/logout", arm.HandleLogout)
		r.Post("/refresh", arm.HandleRefresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.UserAuthMiddleware)
			r.Get("/me", arm.HandleMe)
			r.Post("/change-password", arm.HandleChangePassword)
		})
	})
}
