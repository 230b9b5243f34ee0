// Package cidcodec builds and manipulates IPFS-compatible Content
// Identifiers (CIDv1) the way validators derive them, by composing the
// upstream go-cid and go-multihash libraries rather than reimplementing
// varint/multibase framing.
package cidcodec

import (
	"fmt"

	"github.com/ipfs/go-cid"
	mbase "github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"

	"github.com/bulletinchain/go-sdk/internal/hashing"
)

// Codec identifies the interpretation of the bytes a CID addresses.
type Codec uint64

// Recognized codec tags (multicodec table). The core only ever produces
// these three; unknown numeric tags are accepted at the boundary.
const (
	Raw     Codec = 0x55
	DagPb   Codec = 0x70
	DagCbor Codec = 0x71
)

// Calculate builds a CIDv1 over data: multihash(alg, hash(data, alg))
// wrapped with codec. Empty data is not rejected here — hashing is
// defined over the empty byte string; callers that must reject empty
// payloads do so before reaching this layer.
func Calculate(data []byte, codec Codec, alg hashing.Algorithm) (cid.Cid, error) {
	digest, err := hashing.Sum(data, alg)
	if err != nil {
		return cid.Undef, err
	}
	mhash, err := mh.Encode(digest, uint64(alg))
	if err != nil {
		return cid.Undef, fmt.Errorf("cidcodec: encode multihash: %w", err)
	}
	return cid.NewCidV1(uint64(codec), mhash), nil
}

// ConvertCodec returns a CID with the same multihash and a different
// codec tag. Used to address manifest bytes as Raw while the chain
// stored them under DagPb, and vice versa.
func ConvertCodec(c cid.Cid, codec Codec) cid.Cid {
	return cid.NewCidV1(uint64(codec), c.Hash())
}

// EncodeBytes returns the canonical byte serialization of c:
// varint(version) ‖ varint(codec) ‖ multihash.
func EncodeBytes(c cid.Cid) []byte {
	return c.Bytes()
}

// DecodeBytes parses the canonical byte serialization produced by
// EncodeBytes. Unknown codec tags are accepted; their semantics are not
// interpreted here.
func DecodeBytes(b []byte) (cid.Cid, error) {
	c, err := cid.Cast(b)
	if err != nil {
		return cid.Undef, fmt.Errorf("cidcodec: decode bytes: %w", err)
	}
	return c, nil
}

// ParseString parses a CID from its base-encoded string form. String
// form is never canonical; it is accepted here purely for display
// round-tripping (e.g. a user-pasted CID).
func ParseString(s string) (cid.Cid, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("cidcodec: parse string: %w", err)
	}
	return c, nil
}

// FormatString renders c using the standard CID string encoding: base32
// lowercase for CIDv1. Equality between CIDs must use bytes, never this
// string form.
func FormatString(c cid.Cid) (string, error) {
	s, err := c.StringOfBase(mbase.Base32)
	if err != nil {
		return "", fmt.Errorf("cidcodec: format string: %w", err)
	}
	return s, nil
}
