package bulletin_test

import (
	"context"
	"testing"
	"time"

	"github.com/bulletinchain/go-sdk/bulletin"
	"github.com/bulletinchain/go-sdk/internal/cidcodec"
	"github.com/bulletinchain/go-sdk/internal/hashing"
	"github.com/bulletinchain/go-sdk/mock"
)

func newClient(t *testing.T) (*bulletin.Client, *mock.Submitter) {
	t.Helper()
	sub := mock.New()
	client, err := bulletin.NewClient(sub)
	if err != nil {
		t.Fatal(err)
	}
	return client, sub
}

// S1: a small payload takes the single path.
func TestStoreSinglePathSmallPayload(t *testing.T) {
	client, sub := newClient(t)
	payload := []byte("Hello, Bulletin!")

	result, err := client.NewStore(payload).Send(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks != nil {
		t.Errorf("expected Chunks to be nil on the single path, got %+v", result.Chunks)
	}
	want, err := cidcodec.Calculate(payload, cidcodec.Raw, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	if !result.CID.Equals(want) {
		t.Errorf("CID = %s, want %s", result.CID, want)
	}
	if len(sub.Operations()) != 1 {
		t.Errorf("observed %d submissions, want 1", len(sub.Operations()))
	}
}

// S2: a payload exactly one chunk_size long still takes the single path
// when it's within the chunking threshold.
func TestStoreSinglePathExactChunkSize(t *testing.T) {
	client, sub := newClient(t)
	payload := make([]byte, 1<<20)
	for i := range payload {
		payload[i] = 0x41
	}

	result, err := client.NewStore(payload).Send(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks != nil {
		t.Errorf("expected single path, got Chunks=%+v", result.Chunks)
	}
	if len(sub.Operations()) != 1 {
		t.Errorf("observed %d submissions, want 1", len(sub.Operations()))
	}
}

// S3: a payload over the chunking threshold takes the chunked path and
// builds a manifest.
func TestStoreChunkedPathWithManifest(t *testing.T) {
	client, sub := newClient(t)
	payload := make([]byte, 3*(1<<20)+7)
	for i := range payload {
		payload[i] = 0x42
	}

	var completedChunks []int
	result, err := client.NewStore(payload).
		WithProgress(func(ev bulletin.ProgressEvent) {
			if ev.Kind == bulletin.ChunkCompleted {
				completedChunks = append(completedChunks, ev.Index)
			}
		}).
		Send(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks == nil || result.Chunks.NumChunks != 4 {
		t.Fatalf("Chunks = %+v, want NumChunks 4", result.Chunks)
	}
	if result.CID.Prefix().Codec != uint64(cidcodec.DagPb) {
		t.Errorf("result CID codec = 0x%x, want DagPb", result.CID.Prefix().Codec)
	}
	if len(sub.Operations()) != 5 {
		t.Errorf("observed %d submissions, want 5 (4 chunks + manifest)", len(sub.Operations()))
	}
	if len(completedChunks) != 4 {
		t.Fatalf("completed %d chunks, want 4", len(completedChunks))
	}
	for i, idx := range completedChunks {
		if idx != i {
			t.Errorf("ChunkCompleted out of order: got index %d at position %d", idx, i)
		}
	}
}

// S4: same payload as S3 but manifest creation is off.
func TestStoreChunkedPathWithoutManifest(t *testing.T) {
	client, sub := newClient(t)
	payload := make([]byte, 3*(1<<20)+7)

	opts := bulletin.DefaultStoreOptions()
	opts.Chunker.CreateManifest = false

	result, err := client.NewStore(payload).
		WithChunkerConfig(opts.Chunker).
		Send(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks == nil || result.Chunks.NumChunks != 4 {
		t.Fatalf("Chunks = %+v, want NumChunks 4", result.Chunks)
	}
	if !result.CID.Equals(result.Chunks.ChunkCIDs[0]) {
		t.Errorf("result.CID = %s, want chunk_cids[0] = %s", result.CID, result.Chunks.ChunkCIDs[0])
	}
	if len(sub.Operations()) != 4 {
		t.Errorf("observed %d submissions, want 4 (no manifest)", len(sub.Operations()))
	}
}

// S5: a payload over MAX_FILE_SIZE is rejected before any submission.
func TestStoreRejectsFileTooLarge(t *testing.T) {
	client, sub := newClient(t)
	opts := bulletin.DefaultStoreOptions()
	opts.ChunkingThreshold = 5 // force the chunked path so the chunker's bound applies
	opts.Chunker.MaxFileSize = 10
	payload := make([]byte, 11)

	_, err := client.Store(context.Background(), payload, opts, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	kind, ok := bulletin.Kind(err)
	if !ok || kind != bulletin.ErrFileTooLarge {
		t.Errorf("Kind = %v, ok=%v, want ErrFileTooLarge", kind, ok)
	}
	if len(sub.Operations()) != 0 {
		t.Errorf("observed %d submissions, want 0", len(sub.Operations()))
	}
}

// S6: a pre-flight snapshot with insufficient bytes fails fast, with zero
// submissions observed.
func TestStorePreflightInsufficientAuthorization(t *testing.T) {
	client, sub := newClient(t)
	sub.SetAccountAuthorization(&bulletin.AuthorizationSnapshot{
		Scope:                 bulletin.ScopeAccount,
		TransactionsRemaining: 100,
		BytesRemaining:        2 << 20,
	})
	payload := make([]byte, 3*(1<<20)+7)

	opts := bulletin.DefaultStoreOptions()
	opts.Account = "alice"

	_, err := client.Store(context.Background(), payload, opts, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	need, available, ok := bulletin.AsInsufficientAuthorization(err)
	if !ok {
		t.Fatalf("expected InsufficientAuthorization error, got %v", err)
	}
	if need.Bytes < uint64(3*(1<<20)+7) {
		t.Errorf("need.Bytes = %d, want at least payload size", need.Bytes)
	}
	if available.BytesRemaining != 2<<20 {
		t.Errorf("available.BytesRemaining = %d, want %d", available.BytesRemaining, 2<<20)
	}
	if len(sub.Operations()) != 0 {
		t.Errorf("observed %d submissions, want 0", len(sub.Operations()))
	}
}

func TestStoreUnsignedRejectsChunkedPayload(t *testing.T) {
	client, _ := newClient(t)
	payload := make([]byte, 3*(1<<20)+7)

	_, err := client.StoreUnsigned(context.Background(), payload, bulletin.DefaultStoreOptions())
	kind, ok := bulletin.Kind(err)
	if !ok || kind != bulletin.ErrUnsupportedOperation {
		t.Errorf("Kind = %v, ok=%v, want ErrUnsupportedOperation", kind, ok)
	}
}

func TestStoreUnsignedSucceedsUnderThreshold(t *testing.T) {
	client, sub := newClient(t)
	payload := []byte("small preimage-authorized blob")

	result, err := client.StoreUnsigned(context.Background(), payload, bulletin.DefaultStoreOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Operations()) != 1 {
		t.Errorf("observed %d submissions, want 1", len(sub.Operations()))
	}
	if result.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", result.Size, len(payload))
	}
}

// A chunk size above MaxChunkSize is ChunkTooLarge, distinct from the
// non-positive-chunk-size InvalidConfig case.
func TestStoreChunkedPathRejectsChunkTooLarge(t *testing.T) {
	client, sub := newClient(t)
	payload := make([]byte, 3*(1<<20)+7)

	opts := bulletin.DefaultStoreOptions()
	opts.Chunker.ChunkSize = opts.Chunker.MaxChunkSize + 1

	_, err := client.Store(context.Background(), payload, opts, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	kind, ok := bulletin.Kind(err)
	if !ok || kind != bulletin.ErrChunkTooLarge {
		t.Errorf("Kind = %v, ok=%v, want ErrChunkTooLarge", kind, ok)
	}
	if len(sub.Operations()) != 0 {
		t.Errorf("observed %d submissions, want 0", len(sub.Operations()))
	}
}

// A SubmitStore call that outlives SubmissionTimeout is classified as
// Timeout, not TransactionFailed.
func TestStoreSubmissionTimeout(t *testing.T) {
	client, sub := newClient(t)
	sub.SetStoreDelay(50 * time.Millisecond)
	payload := []byte("small payload")

	opts := bulletin.DefaultStoreOptions()
	opts.SubmissionTimeout = 5 * time.Millisecond

	_, err := client.Store(context.Background(), payload, opts, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	kind, ok := bulletin.Kind(err)
	if !ok || kind != bulletin.ErrTimeout {
		t.Errorf("Kind = %v, ok=%v, want ErrTimeout", kind, ok)
	}
}

func TestEstimateOnlyTouchesNothing(t *testing.T) {
	_, sub := newClient(t)
	est := bulletin.EstimateOnly(3*(1<<20)+7, bulletin.DefaultChunkerConfig())
	if est.Transactions != 5 {
		t.Errorf("Transactions = %d, want 5", est.Transactions)
	}
	if len(sub.Operations()) != 0 {
		t.Errorf("EstimateOnly should not touch the submitter, observed %d ops", len(sub.Operations()))
	}
}
