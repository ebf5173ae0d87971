package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random source for refresh tokens
	"crypto/sha256" // refresh tokens are stored hashed
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry. Access tokens
// are short-lived and travel in the Authorization header.
type AccessToken struct {
	Token string
	Exp   time.Time // UTC
}

// RefreshToken is the long-lived counterpart. Raw goes back to the
// client; the database only ever sees the SHA-256 hash of Raw.
type RefreshToken struct {
	Raw string
	Exp time.Time // UTC
}

// NewAccessToken signs an HS256 JWT carrying the user id (sub) and
// role claims with the given TTL in minutes.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a fresh random refresh token valid for
// ttlDays days.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashRefreshRaw hashes a raw refresh token for storage. A stolen
// token table cannot be replayed against the refresh endpoint.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
