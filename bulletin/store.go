package bulletin

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocid "github.com/ipfs/go-cid"

	"github.com/bulletinchain/go-sdk/internal/authz"
	"github.com/bulletinchain/go-sdk/internal/chunker"
	"github.com/bulletinchain/go-sdk/internal/cidcodec"
	"github.com/bulletinchain/go-sdk/internal/hashing"
	"github.com/bulletinchain/go-sdk/internal/manifest"
	"github.com/bulletinchain/go-sdk/internal/observability"
	"github.com/bulletinchain/go-sdk/internal/validation"
)

func (c *Client) store(ctx context.Context, payload []byte, opts StoreOptions, progress ProgressFunc) (StoreResult, error) {
	opID := newOperationID()
	start := time.Now()
	log := c.logger
	if log != nil {
		log = log.WithOperation(opID)
	}

	if err := validation.ValidateAlgorithm(opts.HashAlgorithm); err != nil {
		return c.fail(log, start, newStoreError(ErrUnsupportedHash, err))
	}
	threshold := opts.ChunkingThreshold
	if threshold <= 0 {
		threshold = DefaultChunkingThreshold
	}

	var result StoreResult
	var err error
	if int64(len(payload)) <= threshold {
		result, err = c.storeSingle(ctx, opID, log, payload, opts, progress)
	} else {
		result, err = c.storeChunked(ctx, opID, log, payload, opts, progress)
	}
	if err != nil {
		return c.fail(log, start, err)
	}

	if log != nil {
		cidStr, _ := cidcodec.FormatString(result.CID)
		numChunks := 0
		if result.Chunks != nil {
			numChunks = result.Chunks.NumChunks
		}
		log.StoreCompleted(opID, cidStr, numChunks, time.Since(start))
	}
	c.metrics.RecordStore(true, time.Since(start).Seconds())
	return result, nil
}

func (c *Client) fail(log *observability.Logger, start time.Time, err error) (StoreResult, error) {
	c.metrics.RecordStore(false, time.Since(start).Seconds())
	if log != nil {
		log.Error(err, "store operation failed")
	}
	return StoreResult{}, err
}

// storeSingle implements spec.md §4.8's single path: one extrinsic
// carrying the whole payload, no manifest.
func (c *Client) storeSingle(ctx context.Context, opID string, log *observability.Logger, payload []byte, opts StoreOptions, progress ProgressFunc) (StoreResult, error) {
	if len(payload) == 0 {
		return StoreResult{}, newStoreError(ErrEmptyData, fmt.Errorf("bulletin: payload is empty"))
	}

	cid, err := cidcodec.Calculate(payload, opts.Codec, opts.HashAlgorithm)
	if err != nil {
		return StoreResult{}, classifyCidError(err)
	}
	c.metrics.RecordCIDCalculation()

	receipt, err := c.submitStore(ctx, opts, payload, progress)
	if err != nil {
		return StoreResult{}, classifySubmitError(err)
	}

	return StoreResult{
		CID:         cid,
		Size:        int64(len(payload)),
		BlockNumber: receipt.BlockNumber,
		TxIndex:     receipt.TxIndex,
	}, nil
}

// storeChunked implements spec.md §4.8's chunked path: chunk, pre-flight
// guard, per-chunk submission in index order, optional manifest build and
// submission.
func (c *Client) storeChunked(ctx context.Context, opID string, log *observability.Logger, payload []byte, opts StoreOptions, progress ProgressFunc) (StoreResult, error) {
	internalCfg := opts.Chunker.toInternal()
	ck, err := chunker.New(internalCfg)
	if err != nil {
		return StoreResult{}, classifyChunkError(err)
	}
	chunks, err := ck.Chunk(payload)
	if err != nil {
		return StoreResult{}, classifyChunkError(err)
	}

	if opts.CheckAuthorizationBeforeUpload && opts.Account != "" {
		if err := c.preflightGuard(ctx, opts, int64(len(payload))); err != nil {
			reason := reasonFor(err)
			c.metrics.RecordPreflightRejection(reason)
			if log != nil {
				log.PreflightRejected(opID, reason, err)
			}
			return StoreResult{}, err
		}
	}

	chunkCIDs := make([]gocid.Cid, len(chunks))
	var lastReceipt Receipt
	for i := range chunks {
		total := chunks[i].Total
		emit(progress, ProgressEvent{Kind: ChunkStarted, Index: i, Total: total})
		if log != nil {
			log.ChunkStarted(opID, i, total, len(chunks[i].Bytes))
		}

		chunkStart := time.Now()
		cid, err := cidcodec.Calculate(chunks[i].Bytes, opts.Codec, opts.HashAlgorithm)
		if err != nil {
			wrapped := classifyCidError(err)
			emit(progress, ProgressEvent{Kind: ChunkFailed, Index: i, Total: total, Err: wrapped})
			if log != nil {
				log.ChunkFailed(opID, i, wrapped)
			}
			return StoreResult{}, wrapped
		}
		c.metrics.RecordCIDCalculation()
		chunks[i].CID = &cid

		receipt, err := c.submitStore(ctx, opts, chunks[i].Bytes, progress)
		if err != nil {
			wrapped := classifySubmitError(err)
			emit(progress, ProgressEvent{Kind: ChunkFailed, Index: i, Total: total, Err: wrapped})
			if log != nil {
				log.ChunkFailed(opID, i, wrapped)
			}
			return StoreResult{}, wrapped
		}
		c.metrics.RecordChunkSubmitted(len(chunks[i].Bytes), time.Since(chunkStart).Seconds())
		lastReceipt = receipt
		chunkCIDs[i] = cid

		emit(progress, ProgressEvent{Kind: ChunkCompleted, Index: i, Total: total, CID: cid})
		if log != nil {
			blockNum := uint64(0)
			if receipt.BlockNumber != nil {
				blockNum = *receipt.BlockNumber
			}
			cidStr, _ := cidcodec.FormatString(cid)
			log.ChunkCompleted(opID, i, cidStr, blockNum)
		}
	}

	var rootCID gocid.Cid
	hasManifest := false
	if opts.Chunker.CreateManifest {
		emit(progress, ProgressEvent{Kind: ManifestStarted})
		root, manifestBytes, err := manifest.Build(chunks, opts.HashAlgorithm)
		if err != nil {
			return StoreResult{}, newStoreError(ErrDagEncodingFailed, err)
		}
		receipt, err := c.submitStore(ctx, opts, manifestBytes, progress)
		if err != nil {
			return StoreResult{}, classifySubmitError(err)
		}
		c.metrics.RecordManifestBuilt(len(manifestBytes))
		lastReceipt = receipt
		rootCID = root
		hasManifest = true

		emit(progress, ProgressEvent{Kind: ManifestCreated, ManifestCID: root, HasManifestCID: true})
		if log != nil {
			log.ManifestCreated(opID, root.String(), len(chunks), len(manifestBytes))
		}
	}

	completedEv := ProgressEvent{Kind: Completed}
	if hasManifest {
		completedEv.ManifestCID = rootCID
		completedEv.HasManifestCID = true
	}
	emit(progress, completedEv)

	primary := chunkCIDs[0]
	if hasManifest {
		primary = rootCID
	}

	return StoreResult{
		CID:         primary,
		Size:        int64(len(payload)),
		BlockNumber: lastReceipt.BlockNumber,
		TxIndex:     lastReceipt.TxIndex,
		Chunks: &ChunkSet{
			ChunkCIDs: chunkCIDs,
			NumChunks: len(chunks),
		},
	}, nil
}

// StoreUnsigned stores payload as a single extrinsic for the case where
// the chain has pre-authorized the exact content hash. It submits through
// the same Submitter.SubmitStore call as Store: the Submitter interface
// has no separate unsigned submission, so whether the extrinsic is signed
// is up to the Submitter implementation. Payloads above the chunking
// threshold are rejected with ErrUnsupportedOperation; no progress
// callback is taken and nothing is logged.
func (c *Client) StoreUnsigned(ctx context.Context, payload []byte, opts StoreOptions) (StoreResult, error) {
	threshold := opts.ChunkingThreshold
	if threshold <= 0 {
		threshold = DefaultChunkingThreshold
	}
	if int64(len(payload)) > threshold {
		return StoreResult{}, newStoreError(ErrUnsupportedOperation,
			fmt.Errorf("bulletin: unsigned store does not support chunked payloads (%d bytes > threshold %d)", len(payload), threshold))
	}
	return c.storeSingle(ctx, newOperationID(), nil, payload, opts, nil)
}

func (c *Client) preflightGuard(ctx context.Context, opts StoreOptions, payloadSize int64) error {
	querier, ok := c.submitter.(AuthorizationQuerier)
	if !ok {
		return nil
	}
	snap, err := querier.QueryAccountAuthorization(ctx, opts.Account)
	if err != nil {
		return newStoreError(ErrAuthorizationFailed, err)
	}
	if snap == nil {
		return nil
	}
	var currentBlock *uint64
	if height, err := querier.QueryCurrentBlock(ctx); err == nil {
		currentBlock = &height
	}

	need := authz.Predict(payloadSize, opts.Chunker.toInternal())
	internalSnap := &authz.Snapshot{
		Scope:                 authz.Scope(snap.Scope),
		TransactionsRemaining: snap.TransactionsRemaining,
		BytesRemaining:        snap.BytesRemaining,
		ExpiresAtBlock:        snap.ExpiresAtBlock,
	}
	if err := authz.Guard(internalSnap, currentBlock, need); err != nil {
		return wrapGuardError(err)
	}
	return nil
}

func reasonFor(err error) string {
	if kind, ok := Kind(err); ok {
		return kind.String()
	}
	return "unknown"
}

func classifyCidError(err error) *StoreError {
	if errors.Is(err, hashing.ErrUnsupportedAlgorithm) {
		return newStoreError(ErrUnsupportedHash, err)
	}
	return newStoreError(ErrCidCalculationFailed, err)
}

func classifyChunkError(err error) *StoreError {
	switch {
	case errors.Is(err, chunker.ErrEmptyData):
		return newStoreError(ErrEmptyData, err)
	case errors.Is(err, chunker.ErrFileTooLarge):
		return newStoreError(ErrFileTooLarge, err)
	case errors.Is(err, chunker.ErrChunkTooLarge):
		return newStoreError(ErrChunkTooLarge, err)
	case errors.Is(err, chunker.ErrInvalidConfig):
		return newStoreError(ErrInvalidConfig, err)
	case errors.Is(err, chunker.ErrChunkingFailed):
		return newStoreError(ErrDagEncodingFailed, err)
	default:
		return newStoreError(ErrInvalidConfig, err)
	}
}

func classifySubmitError(err error) *StoreError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newStoreError(ErrTimeout, err)
	}
	return newStoreError(ErrTransactionFailed, err)
}

// submitStore wraps one SubmitStore call with the per-extrinsic
// submission deadline, so a chain that never reaches the requested
// milestone fails as Timeout rather than hanging the pipeline.
func (c *Client) submitStore(ctx context.Context, opts StoreOptions, payload []byte, progress ProgressFunc) (Receipt, error) {
	timeout := opts.SubmissionTimeout
	if timeout <= 0 {
		timeout = DefaultSubmissionTimeout
	}
	submitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.submitter.SubmitStore(submitCtx, payload, opts.WaitFor, func(ev LifecycleEvent) {
		forwardLifecycle(progress, ev)
	})
}
