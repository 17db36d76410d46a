package lib

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"stitchmart_server/structs"
)

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name    string
		claims  *structs.AuthClaims
		wantErr error
	}{
		{
			name:    "nil claims",
			claims:  nil,
			wantErr: ErrForbidden,
		},
		{
			name:    "admin accessing someone else's resource",
			claims:  &structs.AuthClaims{Sub: otherID, IsAdmin: true},
			wantErr: nil,
		},
		{
			name:    "owner accessing own resource",
			claims:  &structs.AuthClaims{Sub: ownerID},
			wantErr: nil,
		},
		{
			name:    "non-owner non-admin",
			claims:  &structs.AuthClaims{Sub: otherID},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.claims, ownerID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
