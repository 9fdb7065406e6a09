package api

import (
	"fmt"
	"os"
)

const (
	// EnvToken is the environment variable holding the API token
	EnvToken = "STEADYSUN_API_TOKEN"
	// EnvBaseURL is the optional environment variable overriding the base URL
	EnvBaseURL = "STEADYSUN_API_URL"
	// TokenLength is the exact length of a valid token
	TokenLength = 40
)

// ValidateToken checks that token is non-empty and exactly TokenLength characters.
func ValidateToken(token string) error {
	if token == "" {
		return ErrTokenEmpty
	}
	if len(token) != TokenLength {
		return fmt.Errorf("%w (expected %d characters, but got %d)", ErrTokenInvalid, TokenLength, len(token))
	}
	return nil
}

// TokenFromEnv reads and validates the token from EnvToken.
func TokenFromEnv() (string, error) {
	token, ok := os.LookupEnv(EnvToken)
	if !ok {
		return "", ErrTokenMissing
	}
	if err := ValidateToken(token); err != nil {
		return "", err
	}
	return token, nil
}

// SetToken validates token and stores it in EnvToken for later NewClientFromEnv calls.
// The environment is left untouched when validation fails.
func SetToken(token string) error {
	if err := ValidateToken(token); err != nil {
		return fmt.Errorf("the given token is rejected: %w", err)
	}
	return os.Setenv(EnvToken, token)
}
