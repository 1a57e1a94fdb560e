// Package utils provides small stateless helpers shared across layers.
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateURLSafeToken returns a URL-safe base64 token built from numBytes
// of cryptographically secure randomness (no padding).
func GenerateURLSafeToken(numBytes int) (string, error) {
	if numBytes <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", numBytes)
	}

	raw := make([]byte, numBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// GenerateReference returns a transaction reference of the form
// <prefix>_<12 uppercase hex chars>, e.g. DEP_1A2B3C4D5E6F.
func GenerateReference(prefix string) string {
	hexPart := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%s", prefix, strings.ToUpper(hexPart))
}

// GenerateWalletNumber returns a random 13-digit wallet number.
func GenerateWalletNumber() (string, error) {
	const digits = 13

	raw := make([]byte, digits)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	var b strings.Builder
	b.Grow(digits)
	for _, v := range raw {
		b.WriteByte('0' + v%10)
	}
	return b.String(), nil
}
