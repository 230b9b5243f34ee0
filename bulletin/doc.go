// Package bulletin is the client-side storage pipeline for a
// content-addressed, blockchain-backed blob store: it turns an
// arbitrary-size payload into a correct sequence of bounded-size storage
// extrinsics, computes the IPFS-compatible Content Identifiers validators
// derive for them, and reports progress as it goes.
//
// A Client is built around a Submitter — an opaque capability that knows
// how to sign and submit one extrinsic at a time — and drives the rest
// of the pipeline itself: size-triage between a single-extrinsic path and
// a chunked path, per-chunk CID computation, an optional UnixFS/DAG-PB
// manifest over the chunk CIDs, and a pre-flight authorization guard that
// fails fast before submitting anything it already knows won't fit the
// account's remaining allowance.
//
//	client, err := bulletin.NewClient(submitter)
//	result, err := client.NewStore(payload).
//		WithProgress(onProgress).
//		Send(ctx)
//
// The package never owns a network connection, a signer, or any
// persisted state; all three are supplied by the caller through the
// Submitter interface.
package bulletin
