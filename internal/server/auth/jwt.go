// Package auth implements the credential primitives of the webshop server:
// signing and verifying bearer tokens, and hashing passwords.
//
// Tokens come in two independent signing domains, access and refresh. The
// domains share the scheme (HS256) but use distinct secrets and lifetimes,
// so a compromise of one secret does not allow forging tokens of the other
// domain. Everything outside this package treats tokens as opaque strings.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wstore/webshop/internal/common"
)

// Claims carries the registered claim set plus the ID of the user the token
// was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs a token for userID that expires validityDuration from
// now. The caller chooses the signing domain by passing the corresponding
// secret.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the token's signature and expiry against the
// given secret and returns the embedded user ID. Malformed, tampered, and
// expired tokens all collapse to common.ErrorInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.UserID, nil
}
