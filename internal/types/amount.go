package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned for negative, malformed or oversized amounts.
var ErrInvalidAmount = errors.New("types: invalid amount")

// U512Bits is the width of the host's amount type.
const U512Bits = 512

var maxU512 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), U512Bits), big.NewInt(1))

// U512 is an unsigned token amount of up to 512 bits.
// The zero value is a valid zero amount.
type U512 struct {
	v *big.Int
}

// NewU512FromBig validates b and returns a copy of it as a U512.
func NewU512FromBig(b *big.Int) (U512, error) {
	if b == nil {
		return U512{}, fmt.Errorf("%w: nil", ErrInvalidAmount)
	}
	if b.Sign() < 0 {
		return U512{}, fmt.Errorf("%w: negative value %s", ErrInvalidAmount, b)
	}
	if b.Cmp(maxU512) > 0 {
		return U512{}, fmt.Errorf("%w: exceeds %d bits", ErrInvalidAmount, U512Bits)
	}
	return U512{v: new(big.Int).Set(b)}, nil
}

// NewU512FromString parses a base-10 amount.
func NewU512FromString(s string) (U512, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return U512{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U512{}, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidAmount, s)
	}
	return NewU512FromBig(b)
}

// U512FromUint64 converts n to an amount.
func U512FromUint64(n uint64) U512 {
	return U512{v: new(big.Int).SetUint64(n)}
}

// Big returns a copy of the amount as a big.Int.
func (a U512) Big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.v)
}

// Equal reports whether both amounts hold the same value.
func (a U512) Equal(other U512) bool {
	return a.Big().Cmp(other.Big()) == 0
}

func (a U512) String() string {
	return a.Big().String()
}
