package structs

import (
	"time"

	"stitchmart_server/structs/tables"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub     uuid.UUID `json:"sub"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	Iat     time.Time `json:"iat"`
	Exp     time.Time `json:"exp"`
	Jti     uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Fullname        string `json:"fullname" validate:"required,min=2,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// AdminRegisterRequest is the admin-surface variant of RegisterRequest;
// it may grant the admin flag on creation.
type AdminRegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Fullname        string `json:"fullname" validate:"required,min=2,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	IsAdmin         bool   `json:"is_admin"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type PasswordChangeRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// ProfileUpdateRequest is the self-service subset of UserUpdateRequest;
// the admin flag is only reachable through the admin surface.
type ProfileUpdateRequest struct {
	Fullname *string `json:"fullname,omitempty" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UserUpdateRequest struct {
	Fullname *string `json:"fullname,omitempty" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

// UserStats holds the user figures for the admin dashboard. RecentUsers
// is the five most recent registrations, sanitized of password hashes.
type UserStats struct {
	TotalUsers        int `json:"total_users"`
	AdminUsers        int `json:"admin_users"`
	RegularUsers      int `json:"regular_users"`
	UsersWithShipping int `json:"users_with_shipping_address"`

	RecentUsers []tables.User `json:"recent_users"`
}

type ShippingAddressRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}
