// Package auth issues and verifies the bearer credentials used by the API.
//
// Tokens are stateless: a claim carries the caller's email and an expiry two
// days out, signed with the configured secret. Nothing is persisted server
// side, so verification is a pure function of (token, secret, clock).
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/bistro/config"
)

// TokenTTL is the validity window of an issued credential.
const TokenTTL = 48 * time.Hour

// Claims holds the typed JWT payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT for the given email, valid for TokenTTL.
func GenerateToken(email string) (string, error) {
	return generateToken(email, time.Now())
}

func generateToken(email string, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string, rejecting bad signatures
// and expired credentials.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
