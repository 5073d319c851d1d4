package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SigningSecretBytes is the entropy of a generated HS256 signing secret
const SigningSecretBytes = 32

var randomRead = rand.Read

// GenerateRandomToken generates a hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive")
	}
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateSigningSecret returns a value suitable for JWT_SECRET
func GenerateSigningSecret() (string, error) {
	return GenerateRandomToken(SigningSecretBytes)
}
