package tables

import (
	"time"

	"github.com/google/uuid"
)

// Review is unique per (user, product); the constraint is enforced by the
// store so concurrent writers cannot slip a duplicate through.
type Review struct {
	tableName struct{}  `bun:"table:product_reviews,alias:r"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId uuid.UUID `bun:"product_id,type:uuid,notnull,unique:product_reviews_product_user" json:"product_id"`
	UserId    uuid.UUID `bun:"user_id,type:uuid,notnull,unique:product_reviews_product_user" json:"user_id"`
	Rating    int       `bun:"rating,notnull" json:"rating"` // 1..5
	Comment   string    `bun:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
