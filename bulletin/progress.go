package bulletin

import "github.com/ipfs/go-cid"

// ProgressEventKind discriminates the ProgressEvent sum type.
type ProgressEventKind int

const (
	ChunkStarted ProgressEventKind = iota + 1
	ChunkCompleted
	ChunkFailed
	ManifestStarted
	ManifestCreated
	Completed

	// Lifecycle passthroughs, forwarded verbatim from the submitter when
	// it reports them.
	Signed
	Broadcasted
	BestBlock
	Finalized
)

// ProgressEvent is emitted by Store as it drives a pipeline. Only the
// fields relevant to Kind are populated; the comment above each field
// group names the kinds that set it.
type ProgressEvent struct {
	Kind ProgressEventKind

	// ChunkStarted, ChunkCompleted, ChunkFailed
	Index int
	Total int
	CID   cid.Cid
	Err   error

	// ManifestCreated, Completed
	ManifestCID    cid.Cid
	HasManifestCID bool

	// Signed
	TxHash string

	// BestBlock, Finalized
	BlockHash   string
	BlockNumber uint64
	TxIndex     *uint32
}

// ProgressFunc receives ProgressEvent values in order as a Store call
// proceeds. It is one callback, called in-order — not a subscriber
// registry.
type ProgressFunc func(ProgressEvent)

func emit(cb ProgressFunc, ev ProgressEvent) {
	if cb != nil {
		cb(ev)
	}
}

func forwardLifecycle(cb ProgressFunc, ev LifecycleEvent) {
	if cb == nil {
		return
	}
	switch ev.Kind {
	case LifecycleSigned:
		cb(ProgressEvent{Kind: Signed, TxHash: ev.TxHash})
	case LifecycleBroadcasted:
		cb(ProgressEvent{Kind: Broadcasted})
	case LifecycleBestBlock:
		cb(ProgressEvent{Kind: BestBlock, BlockHash: ev.BlockHash, BlockNumber: ev.BlockNumber, TxIndex: ev.TxIndex})
	case LifecycleFinalized:
		cb(ProgressEvent{Kind: Finalized, BlockHash: ev.BlockHash, BlockNumber: ev.BlockNumber, TxIndex: ev.TxIndex})
	}
}
