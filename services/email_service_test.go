package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents uint64
		want  string
	}{
		{cents: 0, want: "0.00"},
		{cents: 5, want: "0.05"},
		{cents: 99, want: "0.99"},
		{cents: 100, want: "1.00"},
		{cents: 1250, want: "12.50"},
		{cents: 123456, want: "1234.56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCents(tt.cents), "cents=%d", tt.cents)
	}
}
