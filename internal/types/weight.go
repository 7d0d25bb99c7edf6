// Package types defines the account-management value types carried by
// key manager commands.
package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrWeightOutOfRange is returned when a value does not fit a signature weight.
var ErrWeightOutOfRange = errors.New("types: weight out of range")

// Weight is the authorization weight of an associated key, or a threshold
// that summed key weights must reach.
type Weight struct {
	v uint8
}

// NewWeight validates n and wraps it as a Weight.
func NewWeight(n int) (Weight, error) {
	if n < 0 || n > math.MaxUint8 {
		return Weight{}, fmt.Errorf("%w: %d", ErrWeightOutOfRange, n)
	}
	return Weight{v: uint8(n)}, nil
}

// WeightOf wraps a byte that is already known to be in range.
func WeightOf(b uint8) Weight {
	return Weight{v: b}
}

// Uint8 returns the raw weight.
func (w Weight) Uint8() uint8 {
	return w.v
}

// Equal reports whether both weights are the same.
func (w Weight) Equal(other Weight) bool {
	return w.v == other.v
}

func (w Weight) String() string {
	return strconv.Itoa(int(w.v))
}
