// Package authz predicts the authorization cost of a store operation and
// guards the pipeline against submitting when the chain's recorded
// allowance cannot cover it.
package authz

import "github.com/bulletinchain/go-sdk/internal/chunker"

// Overhead constants approximating DAG-PB encoding cost. These are
// implementation-tunable: validate against real manifest sizes and
// retune rather than treat them as exact.
const (
	LinkOverheadBytes    = 40 // ~34-byte multihash + protobuf framing per link
	ManifestOverheadBytes = 16 // PBNode framing plus the UnixFS Data header
)

// Estimate is the predicted authorization cost of a store operation.
type Estimate struct {
	Transactions uint64
	Bytes        uint64
}

// LessOrEqual reports whether e is componentwise no greater than other,
// the property §8 invariant 7 requires of Estimate across payload sizes.
func (e Estimate) LessOrEqual(other Estimate) bool {
	return e.Transactions <= other.Transactions && e.Bytes <= other.Bytes
}

// Predict computes the (transactions, bytes) a store of payloadSize bytes
// needs under cfg. Monotone in payloadSize and in the resulting chunk
// count.
func Predict(payloadSize int64, cfg chunker.Config) Estimate {
	chunkSize := int64(cfg.ChunkSize)
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	numChunks := payloadSize / chunkSize
	if payloadSize%chunkSize != 0 {
		numChunks++
	}
	if numChunks == 0 {
		numChunks = 1
	}

	txs := uint64(numChunks)
	bytesNeeded := uint64(payloadSize)
	if cfg.CreateManifest {
		txs++
		bytesNeeded += uint64(numChunks)*LinkOverheadBytes + ManifestOverheadBytes
	}
	return Estimate{Transactions: txs, Bytes: bytesNeeded}
}
