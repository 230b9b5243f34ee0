// Package chunker splits a payload into the ordered, bounded-size pieces
// the chain's storage extrinsic can carry one at a time.
package chunker

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"

	"github.com/bulletinchain/go-sdk/internal/validation"
)

// Bounds a Config must respect, and the package-level defaults used when
// a caller leaves a field at its zero value.
const (
	DefaultChunkSize   = 1 << 20       // 1 MiB
	DefaultMaxParallel = 8
	DefaultMaxChunkSize = 2 << 20      // 2 MiB — typical chain extrinsic cap
	DefaultMaxFileSize  = 64 << 20     // 64 MiB
)

// Sentinel errors the root package translates into structured StoreError
// kinds.
var (
	ErrInvalidConfig  = errors.New("chunker: invalid configuration")
	ErrChunkTooLarge  = errors.New("chunker: chunk size exceeds max chunk size")
	ErrEmptyData      = errors.New("chunker: payload is empty")
	ErrFileTooLarge   = errors.New("chunker: payload exceeds max file size")
	ErrChunkingFailed = errors.New("chunker: chunk sequence is malformed")
)

// Config configures chunking behavior. MaxChunkSize and MaxFileSize default
// to the chain's typical bounds but are configurable per deployment.
type Config struct {
	ChunkSize      int
	MaxParallel    int
	CreateManifest bool
	MaxChunkSize   int
	MaxFileSize    int64
}

// DefaultConfig returns the default chunker configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      DefaultChunkSize,
		MaxParallel:    DefaultMaxParallel,
		CreateManifest: true,
		MaxChunkSize:   DefaultMaxChunkSize,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// Chunk is an ordered fragment of a payload.
type Chunk struct {
	Index int
	Total int
	Bytes []byte
	CID   *cid.Cid
}

// Chunker splits payloads according to a fixed Config.
type Chunker struct {
	cfg Config
}

// New validates cfg and returns a Chunker. A non-positive ChunkSize is
// ErrInvalidConfig; a ChunkSize above MaxChunkSize is the distinct
// ErrChunkTooLarge.
func New(cfg Config) (*Chunker, error) {
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = DefaultMaxChunkSize
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = DefaultMaxParallel
	}
	if err := validation.ValidateChunkSize(cfg.ChunkSize, cfg.MaxChunkSize); err != nil {
		if errors.Is(err, validation.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrChunkTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Chunker{cfg: cfg}, nil
}

// Chunk splits payload into an ordered sequence of Chunks. The last chunk
// may be shorter than ChunkSize; all others are exactly ChunkSize long.
func (c *Chunker) Chunk(payload []byte) ([]Chunk, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyData
	}
	if err := validation.ValidateFileSize(int64(len(payload)), c.cfg.MaxFileSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
	}

	size := c.cfg.ChunkSize
	total := len(payload) / size
	if len(payload)%size != 0 {
		total++
	}

	chunks := make([]Chunk, 0, total)
	for i := 0; i < total; i++ {
		start := i * size
		end := start + size
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, Chunk{
			Index: i,
			Total: total,
			Bytes: payload[start:end],
		})
	}
	return chunks, nil
}

// Reassemble verifies that chunks form a contiguous, in-order permutation
// of 0..total and concatenates their bytes back into the original
// payload. Any gap or reordering is ErrChunkingFailed.
func Reassemble(chunks []Chunk) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks", ErrChunkingFailed)
	}
	total := chunks[0].Total
	size := 0
	for i, c := range chunks {
		if c.Total != total {
			return nil, fmt.Errorf("%w: chunk %d reports total %d, want %d", ErrChunkingFailed, i, c.Total, total)
		}
		if c.Index != i {
			return nil, fmt.Errorf("%w: chunk at position %d has index %d, want %d", ErrChunkingFailed, i, c.Index, i)
		}
		size += len(c.Bytes)
	}
	if len(chunks) != total {
		return nil, fmt.Errorf("%w: got %d chunks, manifest total is %d", ErrChunkingFailed, len(chunks), total)
	}

	out := make([]byte, 0, size)
	for _, c := range chunks {
		out = append(out, c.Bytes...)
	}
	return out, nil
}
