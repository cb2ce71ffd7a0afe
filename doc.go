// Package blake2s implements the BLAKE2s secure hashing algorithm with
// optional keying. BLAKE2s is optimized for 8- to 32-bit platforms and
// produces digests of any size between 1 and 32 bytes.
//
// The Engine type exposes the raw construct, update and finalize lifecycle.
// Digest wraps it as a hash.Hash.
package blake2s

//go:generate python3 gen_vectors.py testdata/blake2s-kat.json testdata/blake2s-extras.json
