package lib

import (
	"stitchmart_server/structs"

	"github.com/google/uuid"
)

// Authorize grants access when the caller is an admin or when the
// resource belongs to them. ownerID is the owning user of the resource
// being accessed; pass the target user's id for self-scoped resources.
func Authorize(claims *structs.AuthClaims, ownerID uuid.UUID) error {
	if claims == nil {
		return ErrForbidden
	}
	if claims.IsAdmin {
		return nil
	}
	if claims.Sub == ownerID {
		return nil
	}
	return ErrForbidden
}
