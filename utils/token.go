package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewRefreshToken returns an opaque refresh token value. Only its digest is
// ever persisted.
func NewRefreshToken() string {
	return uuid.NewString()
}

// HashToken returns the hex SHA-256 digest under which a refresh token is
// stored and looked up.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
