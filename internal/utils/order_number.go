package utils

import (
	"crypto/rand"
	"math/big"
)

// OrderNumberSpace is the exclusive upper bound of generated order numbers.
const OrderNumberSpace = 1_000_000

// GenerateOrderNumber draws a random order number in [0, OrderNumberSpace).
func GenerateOrderNumber() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OrderNumberSpace))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
