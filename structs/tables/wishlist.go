package tables

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist associates a user with a product; the pair is unique and a
// duplicate add is a rejected write, not an upsert.
type Wishlist struct {
	tableName struct{}  `bun:"table:wishlists,alias:w"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID `bun:"user_id,type:uuid,notnull,unique:wishlists_user_product" json:"user_id"`
	ProductId uuid.UUID `bun:"product_id,type:uuid,notnull,unique:wishlists_user_product" json:"product_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
