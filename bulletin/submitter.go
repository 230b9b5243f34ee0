package bulletin

import "context"

// LifecycleEventKind discriminates LifecycleEvent.
type LifecycleEventKind int

const (
	LifecycleSigned LifecycleEventKind = iota + 1
	LifecycleBroadcasted
	LifecycleBestBlock
	LifecycleFinalized
)

// LifecycleEvent is a status update a Submitter may stream while
// resolving a submission: Signed → Broadcasted → BestBlock →
// Finalized, with Invalid/Dropped reported as a terminal error instead.
type LifecycleEvent struct {
	Kind        LifecycleEventKind
	TxHash      string
	BlockHash   string
	BlockNumber uint64
	TxIndex     *uint32
}

// Milestone is the lifecycle point submit_store should wait on before
// returning. The exact milestone to wait for differs by deployment; there
// is no single correct default across all chains, so it is a
// configuration parameter rather than a constant.
type Milestone int

const (
	MilestoneBestBlock Milestone = iota + 1
	MilestoneFinalized
)

// Receipt is what a successful submission resolves to.
type Receipt struct {
	BlockHash     string
	TxHash        string
	BlockNumber   *uint64
	TxIndex       *uint32
}

// AuthorizationScope mirrors internal/authz.Scope at the public boundary,
// so Submitter implementations outside this module don't need to import
// an internal package.
type AuthorizationScope int

const (
	ScopeAccount AuthorizationScope = iota + 1
	ScopePreimage
)

// AuthorizationSnapshot is the authorization allowance observed on chain,
// as reported by a Submitter's optional query methods.
type AuthorizationSnapshot struct {
	Scope                 AuthorizationScope
	TransactionsRemaining uint64
	BytesRemaining        uint64
	ExpiresAtBlock        *uint64
}

// Submitter is the thin capability interface the orchestrator drives: it
// submits one opaque extrinsic at a time and optionally reports chain
// state back. There is no inheritance hierarchy here, only composition —
// a real chain-backed implementation and the mock both satisfy this same
// interface.
type Submitter interface {
	// SubmitStore submits payload as a single storage extrinsic and waits
	// for milestone. If progress is non-nil, lifecycle events are
	// streamed to it as they occur.
	SubmitStore(ctx context.Context, payload []byte, milestone Milestone, progress func(LifecycleEvent)) (Receipt, error)

	SubmitAuthorizeAccount(ctx context.Context, who string, transactions, bytes uint64) (Receipt, error)
	SubmitAuthorizePreimage(ctx context.Context, contentHash []byte, maxSize uint64) (Receipt, error)
	SubmitRenew(ctx context.Context, blockNumber, extrinsicIndex uint32) (Receipt, error)
}

// AuthorizationQuerier is an optional Submitter capability: a submitter
// that can report authorization snapshots and current chain height
// implements this too, enabling the pre-flight guard. Submitters that
// can't answer these queries simply don't implement it — the guard skips
// itself rather than failing.
type AuthorizationQuerier interface {
	QueryAccountAuthorization(ctx context.Context, who string) (*AuthorizationSnapshot, error)
	QueryPreimageAuthorization(ctx context.Context, contentHash []byte) (*AuthorizationSnapshot, error)
	QueryCurrentBlock(ctx context.Context) (uint64, error)
}
