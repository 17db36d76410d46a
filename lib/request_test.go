package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/structs"
)

func TestExtractAndValidateBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"email":"user@example.com","fullname":"Jane Doe","password":"supersecret","confirm_password":"supersecret"}`,
	))

	body, err := ExtractAndValidateBody[structs.RegisterRequest](r)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", body.Email)
	assert.Equal(t, "Jane Doe", body.Fullname)
}

func TestExtractAndValidateBodyInvalidEmail(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"email":"not-an-email","fullname":"Jane Doe","password":"supersecret","confirm_password":"supersecret"}`,
	))

	_, err := ExtractAndValidateBody[structs.RegisterRequest](r)
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "email", verr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", verr.Errors[0].Message)
}

func TestExtractAndValidateBodyPasswordMismatch(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"email":"user@example.com","fullname":"Jane Doe","password":"supersecret","confirm_password":"different"}`,
	))

	_, err := ExtractAndValidateBody[structs.RegisterRequest](r)
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "confirmpassword", verr.Errors[0].Field)
}

func TestExtractAndValidateBodyUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(
		`{"email":"user@example.com","password":"supersecret","extra":"nope"}`,
	))

	_, err := ExtractAndValidateBody[structs.AuthRequest](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":`))

	_, err := ExtractAndValidateBody[structs.AuthRequest](r)
	assert.Error(t, err)
}
