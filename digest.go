package blake2s

import (
	"hash"
)

var _ hash.Hash = (*Digest)(nil)

// Digest adapts an Engine to the hash.Hash interface. Unlike the Engine, a
// Digest can be summed repeatedly and reset, because it keeps the key it was
// built with.
type Digest struct {
	e    *Engine
	key  []byte
	size int
}

// NewDigest constructs a new instance of a BLAKE2s hash producing outputBytes
// of output. A nil or empty key gives an unkeyed hash.
func NewDigest(key []byte, outputBytes int) (*Digest, error) {
	d := &Digest{size: outputBytes}
	if len(key) > 0 {
		d.key = append([]byte(nil), key...)
	}
	e, err := d.newEngine()
	if err != nil {
		return nil, err
	}
	d.e = e
	return d, nil
}

func (d *Digest) newEngine() (*Engine, error) {
	if d.key == nil {
		return New(d.size)
	}
	return NewWithKey(d.size, d.key)
}

// Write adds more data to the running hash. It never returns an error.
func (d *Digest) Write(input []byte) (n int, err error) {
	d.e.Update(input)
	return len(input), nil
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state.
func (d *Digest) Sum(b []byte) []byte {
	var sum [Size]byte
	d.e.Clone().Finalize(sum[:d.size])
	return append(b, sum[:d.size]...)
}

// Reset resets the Hash to its initial state, including the key.
func (d *Digest) Reset() {
	e, err := d.newEngine()
	if err != nil {
		// size and key were accepted by NewDigest
		panic(err)
	}
	d.e = e
}

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the hash's underlying block size. The Write method must be
// able to accept any amount of data, but it may operate more efficiently if
// all writes are a multiple of the block size.
func (d *Digest) BlockSize() int { return BlockSize }

// Sum256 returns the unkeyed 32-byte BLAKE2s checksum of data.
func Sum256(data []byte) [Size]byte {
	var sum [Size]byte
	e, _ := New(Size)
	e.Update(data)
	e.Finalize(sum[:])
	return sum
}

// Sum returns the unkeyed BLAKE2s checksum of data truncated to size bytes.
func Sum(data []byte, size int) ([]byte, error) {
	e, err := New(size)
	if err != nil {
		return nil, err
	}
	e.Update(data)
	out := make([]byte, size)
	e.Finalize(out)
	return out, nil
}

// MAC returns the keyed BLAKE2s checksum of data truncated to size bytes.
func MAC(key, data []byte, size int) ([]byte, error) {
	e, err := NewWithKey(size, key)
	if err != nil {
		return nil, err
	}
	e.Update(data)
	out := make([]byte, size)
	e.Finalize(out)
	return out, nil
}
