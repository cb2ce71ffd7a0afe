package hashing

import (
	"github.com/gtank/blake2s"
)

// Blake2s hashes with unkeyed 32-byte BLAKE2s.
type Blake2s struct{}

// KeyedBlake2s hashes with keyed BLAKE2s, making HashBytes a MAC.
type KeyedBlake2s struct {
	key  []byte
	size int
}

var (
	_ HashPolicy = (*Blake2s)(nil)
	_ HashPolicy = (*KeyedBlake2s)(nil)
)

func NewBlake2s() *Blake2s {
	return &Blake2s{}
}

func (p *Blake2s) HashBytes(bytes []byte) []byte {
	result := blake2s.Sum256(bytes)
	return result[:]
}

// NewKeyedBlake2s returns a policy producing size-byte MACs under key. The
// parameters are checked here so HashBytes cannot fail later.
func NewKeyedBlake2s(key []byte, size int) (*KeyedBlake2s, error) {
	if _, err := blake2s.NewWithKey(size, key); err != nil {
		return nil, err
	}
	return &KeyedBlake2s{
		key:  append([]byte(nil), key...),
		size: size,
	}, nil
}

func (p *KeyedBlake2s) HashBytes(bytes []byte) []byte {
	result, err := blake2s.MAC(p.key, bytes, p.size)
	if err != nil {
		panic(err)
	}
	return result
}
