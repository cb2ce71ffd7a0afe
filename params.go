package blake2s

// These are the user-visible parameters of a BLAKE2s hash instance. The
// parameter block is XOR'd with the IV at the beginning of the hash. Only
// sequential mode is supported, so the tree fields are fixed and salt and
// personalization are always zero.
type parameterBlock struct {
	DigestSize byte   // 0
	KeyLength  byte   // 1
	fanout     byte   // 2
	depth      byte   // 3
	leafLength uint32 // 4-7
	// 8-63 implicitly zero: node offset, node depth, inner length, salt,
	// personalization and padding.
}

// Packs a BLAKE2s parameter block. BLAKE2s only reads the first 32 bytes;
// the rest is padding.
func (p *parameterBlock) Marshal() []byte {
	buf := make([]byte, 64)
	buf[0] = p.DigestSize
	buf[1] = p.KeyLength
	buf[2] = p.fanout
	buf[3] = p.depth
	putU32LE(buf[4:], p.leafLength)
	return buf
}

// After this function is called, the parameterBlock can be discarded.
func initFromParams(p *parameterBlock) *Engine {
	paramBytes := p.Marshal()

	return &Engine{
		h: [8]uint32{
			IV0 ^ u32LE(paramBytes[0:4]),
			IV1 ^ u32LE(paramBytes[4:8]),
			IV2 ^ u32LE(paramBytes[8:12]),
			IV3 ^ u32LE(paramBytes[12:16]),
			IV4 ^ u32LE(paramBytes[16:20]),
			IV5 ^ u32LE(paramBytes[20:24]),
			IV6 ^ u32LE(paramBytes[24:28]),
			IV7 ^ u32LE(paramBytes[28:32]),
		},
		size: int(p.DigestSize),
	}
}

func u32LE(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putU32LE(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
