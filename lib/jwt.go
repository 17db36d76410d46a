package lib

import (
	"fmt"
	"net/http"
	"stitchmart_server/structs"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}

	sub, err := uuid.Parse(subStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in sub claim: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok {
		return nil, fmt.Errorf("invalid is_admin claim")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp claim")
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid jti claim")
	}

	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
	}

	return &structs.AuthClaims{
		Sub:     sub,
		Email:   email,
		IsAdmin: isAdmin,
		Iat:     time.Unix(int64(iat), 0),
		Exp:     time.Unix(int64(exp), 0),
		Jti:     jti,
	}, nil
}

// SignClaims issues an HS256 token for the given claims.
func SignClaims(claims *structs.AuthClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      claims.Sub.String(),
		"email":    claims.Email,
		"is_admin": claims.IsAdmin,
		"iat":      claims.Iat.Unix(),
		"exp":      claims.Exp.Unix(),
		"jti":      claims.Jti.String(),
	})
	return token.SignedString([]byte(secret))
}

// ExtractClaims pulls the access token from the Authorization bearer header
// or the access cookie and returns its validated claims.
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	tokenStr := ""

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	} else if cookieVal, err := GetCookieValue(AccessCookieName, r); err == nil {
		tokenStr = cookieVal
	}

	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims, err := ParseToken(tokenStr, secret)
	if err != nil {
		return nil, err
	}

	if time.Now().After(claims.Exp) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}
