package lib

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/structs"
)

const testSecret = "test-secret-at-least-32-characters-long"

func testClaims(exp time.Time) *structs.AuthClaims {
	return &structs.AuthClaims{
		Sub:     uuid.New(),
		Email:   "user@example.com",
		IsAdmin: false,
		Iat:     time.Now(),
		Exp:     exp,
		Jti:     uuid.New(),
	}
}

func TestSignAndParseToken(t *testing.T) {
	claims := testClaims(time.Now().Add(15 * time.Minute))

	tokenStr, err := SignClaims(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	parsed, err := ParseToken(tokenStr, testSecret)
	require.NoError(t, err)

	assert.Equal(t, claims.Sub, parsed.Sub)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.IsAdmin, parsed.IsAdmin)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.Equal(t, claims.Exp.Unix(), parsed.Exp.Unix())
}

func TestParseTokenWrongSecret(t *testing.T) {
	claims := testClaims(time.Now().Add(15 * time.Minute))

	tokenStr, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(tokenStr, "a-completely-different-secret-value")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestExtractClaimsFromBearerHeader(t *testing.T) {
	claims := testClaims(time.Now().Add(15 * time.Minute))
	tokenStr, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)

	extracted, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims.Sub, extracted.Sub)
}

func TestExtractClaimsFromCookie(t *testing.T) {
	claims := testClaims(time.Now().Add(15 * time.Minute))
	tokenStr, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	SetCookie(AccessCookieName, tokenStr, claims.Exp, w)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	extracted, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims.Sub, extracted.Sub)
}

func TestExtractClaimsMissingToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/auth/me", nil)

	_, err := ExtractClaims(r, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractClaimsExpiredToken(t *testing.T) {
	claims := testClaims(time.Now().Add(-time.Hour))
	tokenStr, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)

	_, err = ExtractClaims(r, testSecret)
	assert.Error(t, err)
}
