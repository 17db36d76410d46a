package lib

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^[A-Z0-9]{7}[0-9]{5}$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.Len(t, number, 12)
		assert.Regexp(t, orderNumberPattern, number)
	}
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber()] = true
	}

	// Collisions are possible but 50 identical draws are not.
	assert.Greater(t, len(seen), 1)
}
