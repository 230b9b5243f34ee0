package bulletin

import (
	"time"

	"github.com/ipfs/go-cid"

	"github.com/bulletinchain/go-sdk/internal/authz"
	"github.com/bulletinchain/go-sdk/internal/chunker"
	"github.com/bulletinchain/go-sdk/internal/cidcodec"
	"github.com/bulletinchain/go-sdk/internal/hashing"
)

// Codec names the interpretation of the bytes a CID addresses.
type Codec = cidcodec.Codec

// Recognized codec tags. The pipeline only ever produces these three.
const (
	CodecRaw     = cidcodec.Raw
	CodecDagPb   = cidcodec.DagPb
	CodecDagCbor = cidcodec.DagCbor
)

// HashAlgorithm identifies a multihash-compatible hash function.
type HashAlgorithm = hashing.Algorithm

// Recognized hash algorithms. Keccak256 is accepted as a tag but rejected
// with ErrUnsupportedHash when a digest is actually requested.
const (
	Blake2b256 = hashing.Blake2b256
	Sha2_256   = hashing.Sha2_256
	Keccak256  = hashing.Keccak256
)

// ChunkerConfig configures how a payload is split into extrinsic-sized
// pieces.
type ChunkerConfig struct {
	ChunkSize      int
	MaxParallel    int
	CreateManifest bool
	MaxChunkSize   int
	MaxFileSize    int64
}

// DefaultChunkerConfig returns the default chunking configuration: 1 MiB
// chunks, up to 8-way parallelism (reserved; the orchestrator submits
// sequentially today), manifest creation on.
func DefaultChunkerConfig() ChunkerConfig {
	d := chunker.DefaultConfig()
	return ChunkerConfig{
		ChunkSize:      d.ChunkSize,
		MaxParallel:    d.MaxParallel,
		CreateManifest: d.CreateManifest,
		MaxChunkSize:   d.MaxChunkSize,
		MaxFileSize:    d.MaxFileSize,
	}
}

func (c ChunkerConfig) toInternal() chunker.Config {
	return chunker.Config{
		ChunkSize:      c.ChunkSize,
		MaxParallel:    c.MaxParallel,
		CreateManifest: c.CreateManifest,
		MaxChunkSize:   c.MaxChunkSize,
		MaxFileSize:    c.MaxFileSize,
	}
}

// DefaultChunkingThreshold is the payload size above which Store takes
// the chunked path instead of a single extrinsic.
const DefaultChunkingThreshold = 2 << 20 // 2 MiB

// DefaultSubmissionTimeout is the wall-clock budget a single SubmitStore
// call gets to reach its requested milestone before the pipeline gives up
// and classifies the failure as Timeout rather than TransactionFailed.
const DefaultSubmissionTimeout = 120 * time.Second

// StoreOptions configures one Store call. Use DefaultStoreOptions and the
// With* builder methods on a *StoreRequest rather than constructing this
// directly.
type StoreOptions struct {
	Codec                          Codec
	HashAlgorithm                  HashAlgorithm
	WaitFor                        Milestone
	Chunker                        ChunkerConfig
	ChunkingThreshold              int64
	SubmissionTimeout              time.Duration
	CheckAuthorizationBeforeUpload bool
	Account                        string
}

// DefaultStoreOptions returns (codec=Raw, hash=Blake2b256, wait_for=Finalized,
// submission_timeout=120s).
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Codec:                          CodecRaw,
		HashAlgorithm:                  Blake2b256,
		WaitFor:                        MilestoneFinalized,
		Chunker:                        DefaultChunkerConfig(),
		ChunkingThreshold:              DefaultChunkingThreshold,
		SubmissionTimeout:              DefaultSubmissionTimeout,
		CheckAuthorizationBeforeUpload: true,
	}
}

// ChunkSet is the chunked-path detail of a StoreResult.
type ChunkSet struct {
	ChunkCIDs []cid.Cid
	NumChunks int
}

// StoreResult is the unified outcome of a Store call.
type StoreResult struct {
	CID           cid.Cid
	Size          int64
	BlockNumber   *uint64
	TxIndex       *uint32
	Chunks        *ChunkSet
}

// Estimate is the predicted (transactions, bytes) cost of a store
// operation, from the authorization predictor.
type Estimate = authz.Estimate
