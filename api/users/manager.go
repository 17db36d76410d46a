package users

import (
	"stitchmart_server/api/middleware"
	"stitchmart_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type UserRoutesManager struct {
	logger      *gecho.Logger
	userService *services.UserService
	mw          *middleware.Middleware
}

func NewUserRoutesManager(
	logger *gecho.Logger,
	userService *services.UserService,
	mw *middleware.Middleware,
) *UserRoutesManager {
	return &UserRoutesManager{
		logger:      logger,
		userService: userService,
		mw:          mw,
	}
}

func (urm *UserRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/users/me", func(r chi.Router) {
		r.Use(urm.mw.UserAuthMiddleware)
		r.Get("/", urm.HandleGetProfile)
		r.Put("/", urm.HandleUpdateProfile)
		r.Get("/address", urm.HandleGetAddress)
		r.Put("/address", urm.HandleSaveAddress)
	})
}
