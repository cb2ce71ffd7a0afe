package blake2s

import (
	"github.com/pkg/errors"
)

// The constant values will be different for other BLAKE2 variants. These are
// appropriate for BLAKE2s.
const (
	// The maximum length of the key, in bytes.
	KeySize = 32
	// The maximum number of bytes to produce.
	Size = 32
	// Number of G function rounds for BLAKE2s.
	RoundCount = 10
	// Size of a message block in bytes.
	BlockSize = 64

	// Initialization vector for BLAKE2s
	IV0 uint32 = 0x6a09e667
	IV1 uint32 = 0xbb67ae85
	IV2 uint32 = 0x3c6ef372
	IV3 uint32 = 0xa54ff53a
	IV4 uint32 = 0x510e527f
	IV5 uint32 = 0x9b05688c
	IV6 uint32 = 0x1f83d9ab
	IV7 uint32 = 0x5be0cd19
)

var (
	// ErrDigestSize is returned when the requested output is empty or longer
	// than Size.
	ErrDigestSize = errors.New("blake2s: digest size out of range")
	// ErrKeySize is returned when a key is empty or longer than KeySize.
	ErrKeySize = errors.New("blake2s: key size out of range")
)

// Engine holds the state of one BLAKE2s computation. The zero value is not
// usable; construct one with New or NewWithKey.
//
// An Engine is a plain value: copying it (or calling Clone) forks the
// computation, and the two copies continue independently.
type Engine struct {
	h [8]uint32 // chain value
	t [2]uint32 // byte counter, low word first
	f [2]uint32 // finalization flags

	// Two blocks so that a full block is only compressed once at least one
	// more byte is known to follow it. The last block must carry f[0].
	buf    [2 * BlockSize]byte
	bufLen int

	size      int
	finalized bool
}

// New returns an unkeyed engine producing size bytes of output.
func New(size int) (*Engine, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return initFromParams(&parameterBlock{
		DigestSize: byte(size),
		fanout:     1, // sequential mode
		depth:      1, // sequential mode
	}), nil
}

// NewWithKey returns a keyed engine (a MAC) producing size bytes of output.
// The key must be between 1 and KeySize bytes long.
func NewWithKey(size int, key []byte) (*Engine, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if len(key) == 0 || len(key) > KeySize {
		return nil, errors.Wrapf(ErrKeySize, "got %d bytes", len(key))
	}
	e := initFromParams(&parameterBlock{
		DigestSize: byte(size),
		KeyLength:  byte(len(key)),
		fanout:     1,
		depth:      1,
	})

	// The key is padded to a full block and processed as the first block of
	// the message. Going through Update leaves it buffered until we know
	// whether it is also the last block.
	var block [BlockSize]byte
	copy(block[:], key)
	e.Update(block[:])
	return e, nil
}

func checkSize(size int) error {
	if size <= 0 || size > Size {
		return errors.Wrapf(ErrDigestSize, "got %d bytes", size)
	}
	return nil
}

// Size returns the digest size fixed at construction.
func (e *Engine) Size() int { return e.size }

// Clone returns an independent copy of the engine's current state.
func (e *Engine) Clone() *Engine {
	c := *e
	return &c
}

// Update adds more data to the running hash. It accepts input of any length,
// including none.
func (e *Engine) Update(input []byte) {
	if e.finalized {
		panic("blake2s: Update called after Finalize")
	}

	for len(input) > 0 {
		fill := 2*BlockSize - e.bufLen

		if len(input) <= fill {
			e.bufLen += copy(e.buf[e.bufLen:], input)
			return
		}

		copy(e.buf[e.bufLen:], input[:fill])
		input = input[fill:]

		// Input remains, so the first buffered block is not the last one.
		e.incrementCounter(BlockSize)
		e.compress()
		copy(e.buf[:BlockSize], e.buf[BlockSize:])
		e.bufLen = BlockSize
	}
}

// Finalize completes the hash and writes min(len(out), Size) bytes of the
// digest to out. Callers that asked for a shorter digest at construction
// pass an out of that length. The engine cannot be used afterwards.
func (e *Engine) Finalize(out []byte) {
	if e.finalized {
		panic("blake2s: Finalize called twice")
	}
	e.finalized = true

	if e.bufLen > BlockSize {
		e.incrementCounter(BlockSize)
		e.compress()
		copy(e.buf[:BlockSize], e.buf[BlockSize:])
		e.bufLen -= BlockSize
	}

	// the counter covers the real tail bytes, never the zero padding
	e.incrementCounter(uint32(e.bufLen))
	// only this compression carries the last-block flag
	e.f[0] = 0xFFFFFFFF

	// Zero the unused portion of the block.
	memclrBuf := e.buf[e.bufLen:BlockSize]
	for i := range memclrBuf {
		memclrBuf[i] = 0
	}

	e.compress()

	var digest [Size]byte
	for i, w := range e.h {
		putU32LE(digest[i*4:], w)
	}
	copy(out, digest[:])
}

// incrementCounter adds n to the 64-bit byte count held in t, carrying into
// the high word.
func (e *Engine) incrementCounter(n uint32) {
	e.t[0] += n
	if e.t[0] < n {
		e.t[1]++
	}
}

// compress mixes the first BlockSize bytes of the buffer into the chain value.
func (e *Engine) compress() {
	// Working vector: chain value in v0..v7, IV in v8..v15 with the counter
	// folded into v12/v13 and the flags into v14/v15. Sixteen locals keep it
	// in registers.
	v0, v1, v2, v3 := e.h[0], e.h[1], e.h[2], e.h[3]
	v4, v5, v6, v7 := e.h[4], e.h[5], e.h[6], e.h[7]
	v8, v9, v10, v11 := IV0, IV1, IV2, IV3
	v12 := IV4 ^ e.t[0]
	v13 := IV5 ^ e.t[1]
	v14 := IV6 ^ e.f[0]
	v15 := IV7 ^ e.f[1]

	b := e.buf[:BlockSize]
	m0, m1, m2, m3 := u32LE(b[0:]), u32LE(b[4:]), u32LE(b[8:]), u32LE(b[12:])
	m4, m5, m6, m7 := u32LE(b[16:]), u32LE(b[20:]), u32LE(b[24:]), u32LE(b[28:])
	m8, m9, m10, m11 := u32LE(b[32:]), u32LE(b[36:]), u32LE(b[40:]), u32LE(b[44:])
	m12, m13, m14, m15 := u32LE(b[48:]), u32LE(b[52:]), u32LE(b[56:]), u32LE(b[60:])

	// The rounds are unrolled with the message schedule (sigma) applied by
	// hand: each line names the message words its G call consumes. The first
	// four calls of a round work on the columns, the last four on the
	// diagonals.

	// Round 0
	v0, v4, v8, v12 = g(v0+v4+m0, v4, v8, v12, m1)
	v1, v5, v9, v13 = g(v1+v5+m2, v5, v9, v13, m3)
	v2, v6, v10, v14 = g(v2+v6+m4, v6, v10, v14, m5)
	v3, v7, v11, v15 = g(v3+v7+m6, v7, v11, v15, m7)

	v0, v5, v10, v15 = g(v0+v5+m8, v5, v10, v15, m9)
	v1, v6, v11, v12 = g(v1+v6+m10, v6, v11, v12, m11)
	v2, v7, v8, v13 = g(v2+v7+m12, v7, v8, v13, m13)
	v3, v4, v9, v14 = g(v3+v4+m14, v4, v9, v14, m15)

	// Round 1
	v0, v4, v8, v12 = g(v0+v4+m14, v4, v8, v12, m10)
	v1, v5, v9, v13 = g(v1+v5+m4, v5, v9, v13, m8)
	v2, v6, v10, v14 = g(v2+v6+m9, v6, v10, v14, m15)
	v3, v7, v11, v15 = g(v3+v7+m13, v7, v11, v15, m6)

	v0, v5, v10, v15 = g(v0+v5+m1, v5, v10, v15, m12)
	v1, v6, v11, v12 = g(v1+v6+m0, v6, v11, v12, m2)
	v2, v7, v8, v13 = g(v2+v7+m11, v7, v8, v13, m7)
	v3, v4, v9, v14 = g(v3+v4+m5, v4, v9, v14, m3)

	// Round 2
	v0, v4, v8, v12 = g(v0+v4+m11, v4, v8, v12, m8)
	v1, v5, v9, v13 = g(v1+v5+m12, v5, v9, v13, m0)
	v2, v6, v10, v14 = g(v2+v6+m5, v6, v10, v14, m2)
	v3, v7, v11, v15 = g(v3+v7+m15, v7, v11, v15, m13)

	v0, v5, v10, v15 = g(v0+v5+m10, v5, v10, v15, m14)
	v1, v6, v11, v12 = g(v1+v6+m3, v6, v11, v12, m6)
	v2, v7, v8, v13 = g(v2+v7+m7, v7, v8, v13, m1)
	v3, v4, v9, v14 = g(v3+v4+m9, v4, v9, v14, m4)

	// Round 3
	v0, v4, v8, v12 = g(v0+v4+m7, v4, v8, v12, m9)
	v1, v5, v9, v13 = g(v1+v5+m3, v5, v9, v13, m1)
	v2, v6, v10, v14 = g(v2+v6+m13, v6, v10, v14, m12)
	v3, v7, v11, v15 = g(v3+v7+m11, v7, v11, v15, m14)

	v0, v5, v10, v15 = g(v0+v5+m2, v5, v10, v15, m6)
	v1, v6, v11, v12 = g(v1+v6+m5, v6, v11, v12, m10)
	v2, v7, v8, v13 = g(v2+v7+m4, v7, v8, v13, m0)
	v3, v4, v9, v14 = g(v3+v4+m15, v4, v9, v14, m8)

	// Round 4
	v0, v4, v8, v12 = g(v0+v4+m9, v4, v8, v12, m0)
	v1, v5, v9, v13 = g(v1+v5+m5, v5, v9, v13, m7)
	v2, v6, v10, v14 = g(v2+v6+m2, v6, v10, v14, m4)
	v3, v7, v11, v15 = g(v3+v7+m10, v7, v11, v15, m15)

	v0, v5, v10, v15 = g(v0+v5+m14, v5, v10, v15, m1)
	v1, v6, v11, v12 = g(v1+v6+m11, v6, v11, v12, m12)
	v2, v7, v8, v13 = g(v2+v7+m6, v7, v8, v13, m8)
	v3, v4, v9, v14 = g(v3+v4+m3, v4, v9, v14, m13)

	// Round 5
	v0, v4, v8, v12 = g(v0+v4+m2, v4, v8, v12, m12)
	v1, v5, v9, v13 = g(v1+v5+m6, v5, v9, v13, m10)
	v2, v6, v10, v14 = g(v2+v6+m0, v6, v10, v14, m11)
	v3, v7, v11, v15 = g(v3+v7+m8, v7, v11, v15, m3)

	v0, v5, v10, v15 = g(v0+v5+m4, v5, v10, v15, m13)
	v1, v6, v11, v12 = g(v1+v6+m7, v6, v11, v12, m5)
	v2, v7, v8, v13 = g(v2+v7+m15, v7, v8, v13, m14)
	v3, v4, v9, v14 = g(v3+v4+m1, v4, v9, v14, m9)

	// Round 6
	v0, v4, v8, v12 = g(v0+v4+m12, v4, v8, v12, m5)
	v1, v5, v9, v13 = g(v1+v5+m1, v5, v9, v13, m15)
	v2, v6, v10, v14 = g(v2+v6+m14, v6, v10, v14, m13)
	v3, v7, v11, v15 = g(v3+v7+m4, v7, v11, v15, m10)

	v0, v5, v10, v15 = g(v0+v5+m0, v5, v10, v15, m7)
	v1, v6, v11, v12 = g(v1+v6+m6, v6, v11, v12, m3)
	v2, v7, v8, v13 = g(v2+v7+m9, v7, v8, v13, m2)
	v3, v4, v9, v14 = g(v3+v4+m8, v4, v9, v14, m11)

	// Round 7
	v0, v4, v8, v12 = g(v0+v4+m13, v4, v8, v12, m11)
	v1, v5, v9, v13 = g(v1+v5+m7, v5, v9, v13, m14)
	v2, v6, v10, v14 = g(v2+v6+m12, v6, v10, v14, m1)
	v3, v7, v11, v15 = g(v3+v7+m3, v7, v11, v15, m9)

	v0, v5, v10, v15 = g(v0+v5+m5, v5, v10, v15, m0)
	v1, v6, v11, v12 = g(v1+v6+m15, v6, v11, v12, m4)
	v2, v7, v8, v13 = g(v2+v7+m8, v7, v8, v13, m6)
	v3, v4, v9, v14 = g(v3+v4+m2, v4, v9, v14, m10)

	// Round 8
	v0, v4, v8, v12 = g(v0+v4+m6, v4, v8, v12, m15)
	v1, v5, v9, v13 = g(v1+v5+m14, v5, v9, v13, m9)
	v2, v6, v10, v14 = g(v2+v6+m11, v6, v10, v14, m3)
	v3, v7, v11, v15 = g(v3+v7+m0, v7, v11, v15, m8)

	v0, v5, v10, v15 = g(v0+v5+m12, v5, v10, v15, m2)
	v1, v6, v11, v12 = g(v1+v6+m13, v6, v11, v12, m7)
	v2, v7, v8, v13 = g(v2+v7+m1, v7, v8, v13, m4)
	v3, v4, v9, v14 = g(v3+v4+m10, v4, v9, v14, m5)

	// Round 9
	v0, v4, v8, v12 = g(v0+v4+m10, v4, v8, v12, m2)
	v1, v5, v9, v13 = g(v1+v5+m8, v5, v9, v13, m4)
	v2, v6, v10, v14 = g(v2+v6+m7, v6, v10, v14, m6)
	v3, v7, v11, v15 = g(v3+v7+m1, v7, v11, v15, m5)

	v0, v5, v10, v15 = g(v0+v5+m15, v5, v10, v15, m11)
	v1, v6, v11, v12 = g(v1+v6+m9, v6, v11, v12, m14)
	v2, v7, v8, v13 = g(v2+v7+m3, v7, v8, v13, m12)
	v3, v4, v9, v14 = g(v3+v4+m13, v4, v9, v14, m0)

	e.h[0] = e.h[0] ^ v0 ^ v8
	e.h[1] = e.h[1] ^ v1 ^ v9
	e.h[2] = e.h[2] ^ v2 ^ v10
	e.h[3] = e.h[3] ^ v3 ^ v11
	e.h[4] = e.h[4] ^ v4 ^ v12
	e.h[5] = e.h[5] ^ v5 ^ v13
	e.h[6] = e.h[6] ^ v6 ^ v14
	e.h[7] = e.h[7] ^ v7 ^ v15
}

// The internal BLAKE2s round function. The caller performs the first
// a = a + b + m0 so the table lookups stay out of this function and it
// inlines.
func g(a, b, c, d, m1 uint32) (uint32, uint32, uint32, uint32) {
	d = ((d ^ a) >> 16) | ((d ^ a) << (32 - 16))
	c = c + d
	b = ((b ^ c) >> 12) | ((b ^ c) << (32 - 12))
	a = a + b + m1
	d = ((d ^ a) >> 8) | ((d ^ a) << (32 - 8))
	c = c + d
	b = ((b ^ c) >> 7) | ((b ^ c) << (32 - 7))

	return a, b, c, d
}
