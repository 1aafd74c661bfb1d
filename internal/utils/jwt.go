package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried by access tokens. Role travels in the
// token so the middleware can gate routes without a database round trip.
type AccessClaims struct {
	StaffID uint64 `json:"sub,string"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs a short-lived HS256 access token for a staff member.
func NewAccessToken(secret string, staffID uint64, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates signature and expiry and returns the claims.
func ParseAccessToken(secret, tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// NewRefreshToken returns a random opaque refresh token. Only its SHA-256
// hash is stored server-side.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshRaw maps a raw refresh token to its stored hash form.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
