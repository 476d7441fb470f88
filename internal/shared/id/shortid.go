package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 16
)

// Prefixes for externally visible identifiers.
const (
	PrefixCheckout = "chk"
)

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates an ID of the form "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + id, nil
}

// ParsePrefixedID splits "prefix_rest" at the first underscore.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %q", prefixedID)
	}
	return parts[0], parts[1], nil
}

// NewCheckoutID generates the reference attached to a checkout session.
func NewCheckoutID() (string, error) {
	return GenerateWithPrefix(PrefixCheckout, DefaultLength)
}

// IsCheckoutID reports whether s looks like an ID from NewCheckoutID.
func IsCheckoutID(s string) bool {
	prefix, rest, err := ParsePrefixedID(s)
	if err != nil || prefix != PrefixCheckout || len(rest) != DefaultLength {
		return false
	}
	return strings.Trim(rest, alphabet) == ""
}
