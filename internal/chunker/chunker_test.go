package chunker

import (
	"bytes"
	"errors"
	"testing"
)

func TestChunkExactMultiple(t *testing.T) {
	c, err := New(Config{ChunkSize: 1 << 20, MaxChunkSize: 2 << 20, MaxFileSize: 64 << 20})
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte{0x41}, 1<<20)
	chunks, err := c.Chunk(payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Bytes) != 1<<20 {
		t.Errorf("unexpected chunk length %d", len(chunks[0].Bytes))
	}
}

func TestChunkWithTail(t *testing.T) {
	c, err := New(Config{ChunkSize: 1 << 20, MaxChunkSize: 2 << 20, MaxFileSize: 64 << 20})
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte{0x42}, 3*(1<<20)+7)
	chunks, err := c.Chunk(payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	sizes := []int{1 << 20, 1 << 20, 1 << 20, 7}
	for i, want := range sizes {
		if len(chunks[i].Bytes) != want {
			t.Errorf("chunk %d size = %d, want %d", i, len(chunks[i].Bytes), want)
		}
		if chunks[i].Total != 4 || chunks[i].Index != i {
			t.Errorf("chunk %d has index=%d total=%d, want index=%d total=4", i, chunks[i].Index, chunks[i].Total, i)
		}
	}
}

func TestChunkRejectsEmpty(t *testing.T) {
	c, _ := New(Config{ChunkSize: 1024, MaxChunkSize: 2048, MaxFileSize: 4096})
	if _, err := c.Chunk(nil); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("expected ErrEmptyData, got %v", err)
	}
}

func TestChunkRejectsFileTooLarge(t *testing.T) {
	c, _ := New(Config{ChunkSize: 1024, MaxChunkSize: 2048, MaxFileSize: 2048})
	if _, err := c.Chunk(make([]byte, 2049)); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestNewRejectsChunkTooLarge(t *testing.T) {
	if _, err := New(Config{ChunkSize: 4096, MaxChunkSize: 2048}); !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}
}

func TestNewRejectsNonPositiveChunkSize(t *testing.T) {
	if _, err := New(Config{ChunkSize: 0}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestReassembleRoundTrip(t *testing.T) {
	c, _ := New(Config{ChunkSize: 16, MaxChunkSize: 1024, MaxFileSize: 4096})
	payload := []byte("the quick brown fox jumps over the lazy dog")
	chunks, err := c.Chunk(payload)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Reassemble(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Reassemble mismatch: got %q, want %q", got, payload)
	}
}

func TestReassembleDetectsGap(t *testing.T) {
	c, _ := New(Config{ChunkSize: 4, MaxChunkSize: 1024, MaxFileSize: 4096})
	chunks, err := c.Chunk([]byte("abcdefgh"))
	if err != nil {
		t.Fatal(err)
	}
	broken := []Chunk{chunks[0]}
	if _, err := Reassemble(broken); !errors.Is(err, ErrChunkingFailed) {
		t.Fatalf("expected ErrChunkingFailed, got %v", err)
	}
}

func TestReassembleDetectsReorder(t *testing.T) {
	c, _ := New(Config{ChunkSize: 4, MaxChunkSize: 1024, MaxFileSize: 4096})
	chunks, err := c.Chunk([]byte("abcdefgh"))
	if err != nil {
		t.Fatal(err)
	}
	swapped := []Chunk{chunks[1], chunks[0]}
	if _, err := Reassemble(swapped); !errors.Is(err, ErrChunkingFailed) {
		t.Fatalf("expected ErrChunkingFailed, got %v", err)
	}
}

func TestChunkCountMatchesCeilDivision(t *testing.T) {
	for _, tc := range []struct {
		payloadLen, chunkSize, wantChunks int
	}{
		{100, 10, 10},
		{101, 10, 11},
		{1, 10, 1},
		{10, 10, 1},
	} {
		c, err := New(Config{ChunkSize: tc.chunkSize, MaxChunkSize: 1 << 20, MaxFileSize: 1 << 20})
		if err != nil {
			t.Fatal(err)
		}
		chunks, err := c.Chunk(make([]byte, tc.payloadLen))
		if err != nil {
			t.Fatal(err)
		}
		if len(chunks) != tc.wantChunks {
			t.Errorf("payloadLen=%d chunkSize=%d: got %d chunks, want %d", tc.payloadLen, tc.chunkSize, len(chunks), tc.wantChunks)
		}
	}
}
