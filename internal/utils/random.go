package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomToken returns n random bytes as unpadded base64url, safe to put in
// a query string or cookie without escaping.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random token length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
