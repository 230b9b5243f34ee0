// Package mock provides an in-memory Submitter double for testing code
// built on the bulletin package, without contacting any chain. It
// implements the full bulletin.Submitter and bulletin.AuthorizationQuerier
// capability surface and records every call it receives so tests can
// assert on exactly what the pipeline submitted.
package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bulletinchain/go-sdk/bulletin"
	"github.com/bulletinchain/go-sdk/internal/cidcodec"
	"github.com/bulletinchain/go-sdk/internal/hashing"
)

// OperationKind names the extrinsic call an Operation recorded.
type OperationKind string

const (
	OpStore             OperationKind = "store"
	OpAuthorizeAccount  OperationKind = "authorize_account"
	OpAuthorizePreimage OperationKind = "authorize_preimage"
	OpRenew             OperationKind = "renew"
)

// Operation is one call recorded in the Submitter's in-memory log.
type Operation struct {
	Kind    OperationKind
	Payload []byte // OpStore only
	CID     string // OpStore only: the CID the mock computed for Payload
	Who     string // OpAuthorizeAccount only
}

// ErrInjectedTransactionFailed and ErrInjectedInsufficientAuthorization
// are the two synthetic failures a test can arm with FailNextStore.
var (
	ErrInjectedTransactionFailed          = errors.New("mock: injected transaction failure")
	ErrInjectedInsufficientAuthorization = errors.New("mock: injected insufficient authorization")
)

// Submitter is the in-memory bulletin.Submitter / bulletin.AuthorizationQuerier
// double described by spec.md's C9: it never touches a network, always
// reports block_number=1 and no tx_index, and computes the real CID of
// every payload it's handed so tests can assert against it.
type Submitter struct {
	mu sync.Mutex

	operations []Operation

	nextStoreErr error
	storeDelay   time.Duration

	accountSnapshot  *bulletin.AuthorizationSnapshot
	preimageSnapshot *bulletin.AuthorizationSnapshot
	currentBlock     uint64
}

// New returns an empty Submitter with no injected failures and no
// authorization snapshots configured (so the pre-flight guard skips
// itself by default, just as it would against a real chain reporting no
// snapshot).
func New() *Submitter {
	return &Submitter{currentBlock: 1}
}

// Operations returns a copy of every call recorded so far, in call order.
func (s *Submitter) Operations() []Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Operation, len(s.operations))
	copy(out, s.operations)
	return out
}

// FailNextStore arms the next SubmitStore call to return err instead of
// succeeding. The armed failure is consumed on first use.
func (s *Submitter) FailNextStore(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStoreErr = err
}

// SetStoreDelay makes every subsequent SubmitStore call wait d before
// resolving, so tests can exercise a caller's submission deadline. The
// wait honors ctx cancellation, the way a real chain call would.
func (s *Submitter) SetStoreDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeDelay = d
}

// SetAccountAuthorization configures the snapshot QueryAccountAuthorization
// reports, whichever account is queried. Pass nil to simulate "no
// authorization on record".
func (s *Submitter) SetAccountAuthorization(snap *bulletin.AuthorizationSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountSnapshot = snap
}

// SetPreimageAuthorization configures the snapshot
// QueryPreimageAuthorization reports.
func (s *Submitter) SetPreimageAuthorization(snap *bulletin.AuthorizationSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preimageSnapshot = snap
}

// SetCurrentBlock configures the height QueryCurrentBlock reports.
func (s *Submitter) SetCurrentBlock(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentBlock = n
}

// SubmitStore records payload, computes its real Raw/Blake2b256 CID for
// the operations log, and resolves at block 1 with no tx_index, after
// any delay set via SetStoreDelay — unless a failure has been armed via
// FailNextStore.
func (s *Submitter) SubmitStore(ctx context.Context, payload []byte, milestone bulletin.Milestone, progress func(bulletin.LifecycleEvent)) (bulletin.Receipt, error) {
	s.mu.Lock()
	err := s.nextStoreErr
	s.nextStoreErr = nil
	delay := s.storeDelay
	s.mu.Unlock()
	if err != nil {
		return bulletin.Receipt{}, err
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return bulletin.Receipt{}, ctx.Err()
		}
	}

	c, calcErr := cidcodec.Calculate(payload, cidcodec.Raw, hashing.Blake2b256)
	if calcErr != nil {
		return bulletin.Receipt{}, fmt.Errorf("mock: compute cid: %w", calcErr)
	}
	cidStr, _ := cidcodec.FormatString(c)

	if progress != nil {
		progress(bulletin.LifecycleEvent{Kind: bulletin.LifecycleSigned, TxHash: cidStr})
		progress(bulletin.LifecycleEvent{Kind: bulletin.LifecycleBroadcasted})
		progress(bulletin.LifecycleEvent{Kind: bulletin.LifecycleBestBlock, BlockNumber: 1})
		if milestone == bulletin.MilestoneFinalized {
			progress(bulletin.LifecycleEvent{Kind: bulletin.LifecycleFinalized, BlockNumber: 1})
		}
	}

	s.mu.Lock()
	s.operations = append(s.operations, Operation{Kind: OpStore, Payload: payload, CID: cidStr})
	s.mu.Unlock()

	blockNumber := uint64(1)
	return bulletin.Receipt{
		BlockHash:   "0xmockblock",
		TxHash:      cidStr,
		BlockNumber: &blockNumber,
		TxIndex:     nil,
	}, nil
}

// SubmitAuthorizeAccount records the call and reports success.
func (s *Submitter) SubmitAuthorizeAccount(ctx context.Context, who string, transactions, bytes uint64) (bulletin.Receipt, error) {
	s.mu.Lock()
	s.operations = append(s.operations, Operation{Kind: OpAuthorizeAccount, Who: who})
	s.mu.Unlock()
	blockNumber := uint64(1)
	return bulletin.Receipt{BlockHash: "0xmockblock", BlockNumber: &blockNumber}, nil
}

// SubmitAuthorizePreimage records the call and reports success.
func (s *Submitter) SubmitAuthorizePreimage(ctx context.Context, contentHash []byte, maxSize uint64) (bulletin.Receipt, error) {
	s.mu.Lock()
	s.operations = append(s.operations, Operation{Kind: OpAuthorizePreimage, Payload: contentHash})
	s.mu.Unlock()
	blockNumber := uint64(1)
	return bulletin.Receipt{BlockHash: "0xmockblock", BlockNumber: &blockNumber}, nil
}

// SubmitRenew records the call and reports success.
func (s *Submitter) SubmitRenew(ctx context.Context, blockNumber, extrinsicIndex uint32) (bulletin.Receipt, error) {
	s.mu.Lock()
	s.operations = append(s.operations, Operation{Kind: OpRenew})
	s.mu.Unlock()
	bn := uint64(1)
	return bulletin.Receipt{BlockHash: "0xmockblock", BlockNumber: &bn}, nil
}

// QueryAccountAuthorization returns the snapshot configured via
// SetAccountAuthorization (nil if none).
func (s *Submitter) QueryAccountAuthorization(ctx context.Context, who string) (*bulletin.AuthorizationSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountSnapshot, nil
}

// QueryPreimageAuthorization returns the snapshot configured via
// SetPreimageAuthorization (nil if none).
func (s *Submitter) QueryPreimageAuthorization(ctx context.Context, contentHash []byte) (*bulletin.AuthorizationSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preimageSnapshot, nil
}

// QueryCurrentBlock returns the height configured via SetCurrentBlock.
func (s *Submitter) QueryCurrentBlock(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentBlock, nil
}
