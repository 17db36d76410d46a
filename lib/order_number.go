package lib

import (
	"math/rand"
	"strings"
)

const (
	orderNumberAlphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberDigits   = "0123456789"
)

// GenerateOrderNumber returns a 12-character order number: 7 random
// uppercase alphanumerics followed by 5 random digits. Uniqueness is
// enforced by the database, not here; callers retry on collision.
func GenerateOrderNumber() string {
	var sb strings.Builder
	sb.Grow(12)
	for i := 0; i < 7; i++ {
		sb.WriteByte(orderNumberAlphanum[rand.Intn(len(orderNumberAlphanum))])
	}
	for i := 0; i < 5; i++ {
		sb.WriteByte(orderNumberDigits[rand.Intn(len(orderNumberDigits))])
	}
	return sb.String()
}
