package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/structs"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	first, err := HashPassword("samepassword", nil)
	require.NoError(t, err)
	second, err := HashPassword("samepassword", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPasswordCustomParams(t *testing.T) {
	params := &structs.ArgonParams{
		Memory:  32 * 1024,
		Time:    2,
		Threads: 2,
		KeyLen:  32,
		SaltLen: 16,
	}

	hash, err := HashPassword("secret-password", params)
	require.NoError(t, err)
	assert.Contains(t, hash, "m=32768,t=2,p=2")

	ok, err := VerifyPassword("secret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "plain text", hash: "not-a-hash"},
		{name: "wrong variant", hash: "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "missing sections", hash: "$argon2id$v=19$m=65536,t=1,p=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("whatever", tt.hash)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestVerifyPasswordIncompatibleVersion(t *testing.T) {
	_, err := VerifyPassword("whatever", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}
