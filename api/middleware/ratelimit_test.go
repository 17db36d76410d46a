package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/products", want: "/products"},
		{path: "/products/", want: "/products"},
		{path: "/products/9e2f0b1a-0000-0000-0000-000000000000", want: "/products/:id"},
		{path: "/orders/9e2f0b1a-0000-0000-0000-000000000000/cancel", want: "/orders/:id"},
		{path: "/reviews/9e2f0b1a-0000-0000-0000-000000000000", want: "/reviews/:id"},
		{path: "/auth/login", want: "/auth/login"},
		{path: "/wishlist", want: "/wishlist"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeEndpoint(tt.path), "path=%s", tt.path)
	}
}
