// Package hashing provides a small HashPolicy abstraction so that callers can
// plug BLAKE2s (plain or keyed) into code that only needs "bytes in, digest
// out".
package hashing

import (
	"math/big"
)

type HashPolicy interface {
	HashBytes(b []byte) []byte
}

// Hash replaces s with the hash of its big-endian bytes and returns s.
func Hash(hp HashPolicy, s *big.Int) *big.Int {
	return s.SetBytes(hp.HashBytes(s.Bytes()))
}
