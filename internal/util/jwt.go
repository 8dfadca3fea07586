package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("signing secret is empty")

// Claims is the token payload: {"user": "<email>"} plus optional registered claims.
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the given email. With ttl <= 0 no
// exp claim is set and the token does not expire.
func GenerateToken(secret, email, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	claims := &Claims{User: email}
	if issuer != "" {
		claims.Issuer = issuer
	}
	if ttl > 0 {
		now := time.Now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature (and exp, when present) and returns the claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
