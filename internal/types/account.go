package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// AccountHashLength is the size of an account identifier in bytes.
const AccountHashLength = 32

const accountHashPrefix = "account-hash-"

// ErrInvalidAccountHash is returned when an account identifier cannot be decoded.
var ErrInvalidAccountHash = errors.New("types: invalid account hash")

// AccountHash identifies an account by the hash of its main public key.
type AccountHash [AccountHashLength]byte

// NewAccountHash copies b into an AccountHash. b must be exactly 32 bytes.
func NewAccountHash(b []byte) (AccountHash, error) {
	var h AccountHash
	if len(b) != AccountHashLength {
		return h, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidAccountHash, AccountHashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// ParseAccountHash decodes a hex account hash. The "account-hash-" and "0x"
// prefixes are accepted.
func ParseAccountHash(s string) (AccountHash, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, accountHashPrefix)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return AccountHash{}, fmt.Errorf("%w: %v", ErrInvalidAccountHash, err)
	}
	return NewAccountHash(raw)
}

// AccountHashFromPublicKey derives the account hash the host assigns to pk:
// blake2b-256 over the lowercase algorithm name, a zero separator and the
// raw key bytes.
func AccountHashFromPublicKey(pk PublicKey) AccountHash {
	name := pk.Algorithm().String()
	preimage := make([]byte, 0, len(name)+1+len(pk.Bytes()))
	preimage = append(preimage, name...)
	preimage = append(preimage, 0)
	preimage = append(preimage, pk.Bytes()...)
	return AccountHash(blake2b.Sum256(preimage))
}

// Hex returns the lowercase hex form without prefix.
func (h AccountHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String returns the formatted "account-hash-<hex>" form.
func (h AccountHash) String() string {
	return accountHashPrefix + h.Hex()
}
