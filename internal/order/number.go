package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numberLength   = 8
)

// GenerateOrderNumber returns a short public order identifier. Uniqueness
// is enforced by the orders.order_number index; callers retry on conflict.
func GenerateOrderNumber() (string, error) {
	max := big.NewInt(int64(len(numberAlphabet)))
	buf := make([]byte, numberLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		buf[i] = numberAlphabet[n.Int64()]
	}
	return string(buf), nil
}
