// Command store-demo drives the bulletin storage pipeline against the
// in-memory mock submitter so the pipeline's behavior can be inspected
// without a live chain.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/bulletinchain/go-sdk/bulletin"
	"github.com/bulletinchain/go-sdk/internal/observability"
	"github.com/bulletinchain/go-sdk/mock"
)

func main() {
	chunkSize := flag.Int("chunk-size", 1<<20, "Chunk size in bytes (default: 1 MiB)")
	createManifest := flag.Bool("manifest", true, "Build a DAG-PB manifest for chunked payloads")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: store-demo [options] <file_path>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	shutdown, err := observability.InitTracing(ctx, "store-demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing tracing: %v\n", err)
		os.Exit(6)
	}
	defer shutdown(ctx)

	tracer := otel.Tracer("store-demo")
	ctx, span := tracer.Start(ctx, "store-demo.run")
	defer span.End()

	payload, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(2)
	}

	submitter := mock.New()
	client, err := bulletin.NewClient(submitter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error constructing client: %v\n", err)
		os.Exit(3)
	}

	opts := bulletin.DefaultStoreOptions()
	opts.Chunker.ChunkSize = *chunkSize
	opts.Chunker.CreateManifest = *createManifest

	result, err := client.NewStore(payload).
		WithChunkerConfig(opts.Chunker).
		WithProgress(func(ev bulletin.ProgressEvent) {
			switch ev.Kind {
			case bulletin.ChunkStarted:
				fmt.Fprintf(os.Stderr, "chunk %d/%d: submitting\n", ev.Index+1, ev.Total)
			case bulletin.ChunkCompleted:
				fmt.Fprintf(os.Stderr, "chunk %d/%d: confirmed %s\n", ev.Index+1, ev.Total, ev.CID)
			case bulletin.ManifestCreated:
				fmt.Fprintf(os.Stderr, "manifest: %s\n", ev.ManifestCID)
			}
		}).
		Send(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing payload: %v\n", err)
		os.Exit(4)
	}

	summary := map[string]any{
		"cid":          result.CID.String(),
		"size":         result.Size,
		"block_number": result.BlockNumber,
		"operations":   len(submitter.Operations()),
	}
	if result.Chunks != nil {
		summary["num_chunks"] = result.Chunks.NumChunks
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing summary: %v\n", err)
		os.Exit(5)
	}
	fmt.Println(string(out))
}
