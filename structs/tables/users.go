package tables

import (
	"time"

	"github.com/google/uuid"
)

type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// User is identified by email; there is no separate username.
type User struct {
	tableName    struct{}  `bun:"table:users,alias:u"`
	Id           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	Fullname     string    `json:"fullname" bun:"fullname,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	IsAdmin      bool      `json:"is_admin" bun:"is_admin,notnull,default:false"`

	// One-way latch, set on first shipping address save and never reset.
	HasShippingAddress bool `json:"has_shipping_address" bun:"has_shipping_address,notnull,default:false"`

	LastLogin time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	UpdatedAt time.Time `json:"updated_at" bun:"updated_at,notnull,default:now()"`
}

// ShippingAddress is one-to-one with User. Fields are free-form; only
// presence is validated at the request layer.
type ShippingAddress struct {
	tableName  struct{}  `bun:"table:shipping_addresses,alias:sa"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId     uuid.UUID `bun:"user_id,type:uuid,notnull,unique" json:"user_id"`
	FirstName  string    `bun:"first_name,notnull" json:"first_name"`
	LastName   string    `bun:"last_name,notnull" json:"last_name"`
	Address    string    `bun:"address,notnull" json:"address"`
	City       string    `bun:"city,notnull" json:"city"`
	PostalCode string    `bun:"postal_code,notnull" json:"postal_code"`
	Province   string    `bun:"province" json:"province"`
	Country    string    `bun:"country,notnull" json:"country"`
	Phone      string    `bun:"phone" json:"phone"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
