package bulletin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bulletinchain/go-sdk/internal/authz"
	"github.com/bulletinchain/go-sdk/internal/observability"
	"github.com/bulletinchain/go-sdk/internal/validation"
)

// Client drives the storage pipeline against a Submitter. The core never
// owns the chain connection — ownership stays with whoever constructed
// the Submitter; Client only holds a reference to it.
type Client struct {
	submitter Submitter
	logger    *observability.Logger
	metrics   *observability.Metrics
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithLogger attaches structured logging to every Store call. Omitting
// it is valid; logging is skipped entirely when Logger is nil.
func WithLogger(logger *observability.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches Prometheus counters to every Store call. Omitting
// it is valid; metrics are skipped entirely when Metrics is nil.
func WithMetrics(metrics *observability.Metrics) ClientOption {
	return func(c *Client) { c.metrics = metrics }
}

// NewClient builds a Client around submitter. submitter must not be nil.
func NewClient(submitter Submitter, opts ...ClientOption) (*Client, error) {
	if submitter == nil {
		return nil, newStoreError(ErrInvalidConfig, fmt.Errorf("bulletin: submitter must not be nil"))
	}
	c := &Client{submitter: submitter}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Store runs the full storage pipeline for payload under opts. It is a
// convenience over NewStore(payload).Send(ctx) for callers who don't need
// the builder.
func (c *Client) Store(ctx context.Context, payload []byte, opts StoreOptions, progress ProgressFunc) (StoreResult, error) {
	return c.store(ctx, payload, opts, progress)
}

// EstimateOnly exposes the authorization predictor directly: a pure
// planning call that touches no network and runs no guard, useful for
// showing a cost estimate before calling Store.
func EstimateOnly(payloadSize int64, cfg ChunkerConfig) Estimate {
	return authz.Predict(payloadSize, cfg.toInternal())
}

// Renew extends the retention window of a previously stored blob,
// referenced by the (block, extrinsic index) it was stored at.
func (c *Client) Renew(ctx context.Context, blockNumber, extrinsicIndex uint32) (Receipt, error) {
	receipt, err := c.submitter.SubmitRenew(ctx, blockNumber, extrinsicIndex)
	if err != nil {
		return Receipt{}, newStoreError(ErrTransactionFailed, err)
	}
	return receipt, nil
}

// AuthorizeAccount submits storage.authorize_account(who, transactions, bytes).
func (c *Client) AuthorizeAccount(ctx context.Context, who string, transactions, bytes uint64) (Receipt, error) {
	if err := validation.ValidateStringNonEmpty(who); err != nil {
		return Receipt{}, newStoreError(ErrInvalidConfig, err)
	}
	receipt, err := c.submitter.SubmitAuthorizeAccount(ctx, who, transactions, bytes)
	if err != nil {
		return Receipt{}, newStoreError(ErrAuthorizationFailed, err)
	}
	return receipt, nil
}

// AuthorizePreimage submits storage.authorize_preimage(content_hash, max_size).
func (c *Client) AuthorizePreimage(ctx context.Context, contentHash []byte, maxSize uint64) (Receipt, error) {
	receipt, err := c.submitter.SubmitAuthorizePreimage(ctx, contentHash, maxSize)
	if err != nil {
		return Receipt{}, newStoreError(ErrAuthorizationFailed, err)
	}
	return receipt, nil
}

// HealthCheck runs a self-check against the configured Submitter, when it
// implements AuthorizationQuerier. Hosts that want an HTTP health
// endpoint wrap this themselves; the SDK exposes no server of its own.
func (c *Client) HealthCheck(ctx context.Context) observability.HealthCheckResponse {
	hc := observability.NewHealthChecker("bulletin-go-sdk")
	if querier, ok := c.submitter.(AuthorizationQuerier); ok {
		hc.RegisterCheck("submitter", observability.SubmitterBlockCheck(querier.QueryCurrentBlock))
	}
	return hc.Check(ctx)
}

func newOperationID() string {
	return uuid.NewString()
}
