// Package hashing computes the content digests the storage pipeline
// addresses chunks and manifests by.
package hashing

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Algorithm identifies a multihash-compatible hash function by its
// multicodec hash code.
type Algorithm uint64

// Recognized hash algorithm codes (multicodec table).
const (
	Blake2b256 Algorithm = 0xb220
	Sha2_256   Algorithm = 0x12
	Keccak256  Algorithm = 0x1b
)

// ErrUnsupportedAlgorithm is returned for a hash algorithm this package
// cannot compute. Keccak256 is recognized as a multihash code but is
// never computed here, so that callers see UnsupportedHash at CID
// calculation time rather than during submission.
var ErrUnsupportedAlgorithm = fmt.Errorf("hashing: unsupported algorithm")

// Sum returns the digest of data under alg. It is pure and deterministic.
func Sum(data []byte, alg Algorithm) ([]byte, error) {
	switch alg {
	case Blake2b256:
		sum := blake2b.Sum256(data)
		return sum[:], nil
	case Sha2_256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("hashing: algorithm 0x%x: %w", uint64(alg), ErrUnsupportedAlgorithm)
	}
}

// Size returns the digest length in bytes produced by alg, without
// hashing anything. Returns 0 for an algorithm this package can't compute.
func Size(alg Algorithm) int {
	switch alg {
	case Blake2b256, Sha2_256:
		return 32
	default:
		return 0
	}
}
