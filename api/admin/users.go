package admin

import (
	"errors"
	"net/http"
	"stitchmart_server/api/middleware"
	"stitchmart_server/handling"
	"stitchmart_server/lib"
	"stitchmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := arm.userService.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to list users", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.users.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"users":      result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.users.invalidUserId"), gecho.Send())
		return
	}

	user, address, err := arm.userService.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.users.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch user", gecho.Field("error", err), gecho.Field("user_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.users.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"user":             user,
			"shipping_address": address,
		}),
		gecho.Send(),
	)
}

// HandleCreateUser registers an account from the admin surface; the
// admin flag is applied after the insert so the registration path stays
// shared with the public endpoint.
func (arm *AdminRoutesManager) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AdminRegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract admin register body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the account information and try again"), gecho.Send())
		return
	}

	user, err := arm.authService.Register(&structs.RegisterRequest{
		Email:           body.Email,
		Fullname:        body.Fullname,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	})
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with this email already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to register user", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create user. Please try again"), gecho.Send())
		return
	}

	if body.IsAdmin {
		promoted, err := arm.userService.UpdateUser(r.Context(), user.Id, &structs.UserUpdateRequest{IsAdmin: &body.IsAdmin})
		if err != nil {
			arm.logger.Error("Failed to grant admin flag", gecho.Field("error", err), gecho.Field("user_id", user.Id))
			gecho.InternalServerError(w, gecho.WithMessage("Account created, but the admin flag could not be applied"), gecho.Send())
			return
		}
		user = promoted
	}

	gecho.Success(w,
		gecho.WithMessage("User created"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.users.invalidUserId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UserUpdateRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract user update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the user information and try again"), gecho.Send())
		return
	}

	user, err := arm.userService.UpdateUser(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.users.notFound"), gecho.Send())
			return
		}
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with this email already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update user", gecho.Field("error", err), gecho.Field("user_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update user. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

// HandleDeleteUser removes an account. Admins cannot delete themselves.
func (arm *AdminRoutesManager) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.users.invalidUserId"), gecho.Send())
		return
	}

	if id == claims.Sub {
		gecho.BadRequest(w, gecho.WithMessage("You cannot delete your own account"), gecho.Send())
		return
	}

	if err := arm.userService.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.users.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete user", gecho.Field("error", err), gecho.Field("user_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete user. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User deleted"),
		gecho.Send(),
	)
}
