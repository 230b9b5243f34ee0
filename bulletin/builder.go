package bulletin

import (
	"context"
	"time"
)

// StoreRequest is a builder-style, value-owning configuration for one
// Store call. Each With* method returns a fresh StoreRequest rather than
// mutating in place; Send consumes it and drives the pipeline. There is
// no reflection or dynamic dispatch here, just a chain of struct copies.
type StoreRequest struct {
	client  *Client
	payload []byte
	options StoreOptions
	progress ProgressFunc
}

// NewStore begins building a Store call for payload, starting from
// DefaultStoreOptions.
func (c *Client) NewStore(payload []byte) *StoreRequest {
	return &StoreRequest{client: c, payload: payload, options: DefaultStoreOptions()}
}

func (r StoreRequest) clone() *StoreRequest {
	return &r
}

// WithCodec sets the codec tag chunks and the manifest are addressed
// under.
func (r *StoreRequest) WithCodec(codec Codec) *StoreRequest {
	n := r.clone()
	n.options.Codec = codec
	return n
}

// WithHashAlgorithm sets the hash algorithm CIDs are computed with.
func (r *StoreRequest) WithHashAlgorithm(alg HashAlgorithm) *StoreRequest {
	n := r.clone()
	n.options.HashAlgorithm = alg
	return n
}

// WithWaitFor sets the lifecycle milestone each extrinsic waits for.
func (r *StoreRequest) WithWaitFor(m Milestone) *StoreRequest {
	n := r.clone()
	n.options.WaitFor = m
	return n
}

// WithChunkerConfig sets the full chunking configuration.
func (r *StoreRequest) WithChunkerConfig(cfg ChunkerConfig) *StoreRequest {
	n := r.clone()
	n.options.Chunker = cfg
	return n
}

// WithChunkingThreshold sets the payload size above which Store takes the
// chunked path.
func (r *StoreRequest) WithChunkingThreshold(bytes int64) *StoreRequest {
	n := r.clone()
	n.options.ChunkingThreshold = bytes
	return n
}

// WithSubmissionTimeout sets the wall-clock budget each extrinsic gets to
// reach its requested milestone before the call fails as Timeout.
func (r *StoreRequest) WithSubmissionTimeout(d time.Duration) *StoreRequest {
	n := r.clone()
	n.options.SubmissionTimeout = d
	return n
}

// WithAuthorizationCheck toggles the pre-flight guard.
func (r *StoreRequest) WithAuthorizationCheck(enabled bool) *StoreRequest {
	n := r.clone()
	n.options.CheckAuthorizationBeforeUpload = enabled
	return n
}

// WithAccount sets the account identifier the pre-flight guard queries
// authorization for. Leaving it empty skips the guard regardless of
// WithAuthorizationCheck, per the guard's own preconditions.
func (r *StoreRequest) WithAccount(account string) *StoreRequest {
	n := r.clone()
	n.options.Account = account
	return n
}

// WithProgress attaches a callback invoked in-order as the pipeline
// proceeds. It is one callback, not a subscriber registry.
func (r *StoreRequest) WithProgress(fn ProgressFunc) *StoreRequest {
	n := r.clone()
	n.progress = fn
	return n
}

// Send consumes the request and drives the pipeline.
func (r *StoreRequest) Send(ctx context.Context) (StoreResult, error) {
	return r.client.store(ctx, r.payload, r.options, r.progress)
}
