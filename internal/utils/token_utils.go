package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// LoginStateClaims binds an OAuth state value to the path the user asked for.
type LoginStateClaims struct {
	State string `json:"state"`
	Next  string `json:"next"`
	jwt.RegisteredClaims
}

// SignClaims signs any claims set with HS256.
func SignClaims(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string into claims, validating its
// signature and the standard time based claims.
func ParseAndValidateJWT(tokenString string, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}
	return nil
}
