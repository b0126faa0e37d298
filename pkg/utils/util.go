package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomDigits returns a string of length digits drawn uniformly from 0-9
// using crypto/rand. Leading zeros are kept.
func RandomDigits(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to draw random digit: %w", err)
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}
