package utils

import (
	"errors"
	"time"

	"cuebook-api/packages/auth/models"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenExpiry = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs an HS256 access token for userID.
func GenerateToken(secret, userID string, roles models.Roles, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = AccessTokenExpiry
	}
	now := time.Now()
	claims := models.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Tokens without a subject are rejected.
func ParseToken(secret, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if len(claims.Roles) == 0 {
		claims.Roles = models.GetDefaultRoles()
	}
	return claims, nil
}
