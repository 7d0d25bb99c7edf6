package types

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Algorithm tags the signature scheme of a PublicKey.
type Algorithm uint8

// Supported key algorithms. The numeric values are the host's wire tags.
const (
	Ed25519   Algorithm = 1
	Secp256k1 Algorithm = 2
)

// Secp256k1KeyLength is the size of a compressed secp256k1 point.
const Secp256k1KeyLength = secp256k1.PubKeyBytesLenCompressed

// ErrInvalidPublicKey is returned when key bytes do not match their algorithm.
var ErrInvalidPublicKey = errors.New("types: invalid public key")

func (a Algorithm) String() string {
	switch a {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// PublicKey is an algorithm-tagged public key. The zero value is not a valid key.
type PublicKey struct {
	alg Algorithm
	raw []byte
}

// NewPublicKey validates raw against alg and returns the key.
func NewPublicKey(alg Algorithm, raw []byte) (PublicKey, error) {
	switch alg {
	case Ed25519:
		if len(raw) != ed25519.PublicKeySize {
			return PublicKey{}, fmt.Errorf("%w: ed25519 key must be %d bytes, got %d", ErrInvalidPublicKey, ed25519.PublicKeySize, len(raw))
		}
	case Secp256k1:
		if len(raw) != Secp256k1KeyLength {
			return PublicKey{}, fmt.Errorf("%w: secp256k1 key must be %d bytes, got %d", ErrInvalidPublicKey, Secp256k1KeyLength, len(raw))
		}
		if _, err := secp256k1.ParsePubKey(raw); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
	default:
		return PublicKey{}, fmt.Errorf("%w: unknown algorithm tag %d", ErrInvalidPublicKey, uint8(alg))
	}
	return PublicKey{alg: alg, raw: bytes.Clone(raw)}, nil
}

// ParsePublicKey decodes the tagged hex form: one tag byte ("01" ed25519,
// "02" secp256k1) followed by the key bytes.
func ParsePublicKey(s string) (PublicKey, error) {
	s = strings.TrimSpace(s)
	raw, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(raw) < 2 {
		return PublicKey{}, fmt.Errorf("%w: too short", ErrInvalidPublicKey)
	}
	return NewPublicKey(Algorithm(raw[0]), raw[1:])
}

// Algorithm returns the key's signature scheme.
func (pk PublicKey) Algorithm() Algorithm {
	return pk.alg
}

// Bytes returns a copy of the raw key bytes, without the tag.
func (pk PublicKey) Bytes() []byte {
	return bytes.Clone(pk.raw)
}

// IsZero reports whether pk is the zero value.
func (pk PublicKey) IsZero() bool {
	return pk.alg == 0 && len(pk.raw) == 0
}

// Equal reports whether both keys have the same algorithm and bytes.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.alg == other.alg && bytes.Equal(pk.raw, other.raw)
}

// Hex returns the tagged hex form accepted by ParsePublicKey.
func (pk PublicKey) Hex() string {
	return fmt.Sprintf("%02x%s", uint8(pk.alg), hex.EncodeToString(pk.raw))
}

func (pk PublicKey) String() string {
	return pk.Hex()
}
