package hashing

import (
	"encoding/hex"
	"testing"
)

func TestSumBlake2b256Empty(t *testing.T) {
	got, err := Sum(nil, Blake2b256)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}
	// Known BLAKE2b-256 digest of the empty string.
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if hex.EncodeToString(got) != want {
		t.Errorf("blake2b-256(\"\") = %x, want %s", got, want)
	}
}

func TestSumSha2_256Empty(t *testing.T) {
	got, err := Sum(nil, Sha2_256)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"[:64]
	if hex.EncodeToString(got) != want {
		t.Errorf("sha2-256(\"\") = %x, want %s", got, want)
	}
}

func TestSumUnsupported(t *testing.T) {
	if _, err := Sum([]byte("x"), Keccak256); err == nil {
		t.Fatal("expected error for keccak256")
	}
}

func TestSumDeterministic(t *testing.T) {
	data := []byte("Hello, Bulletin!")
	a, err := Sum(data, Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sum(data, Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("Sum is not deterministic")
	}
}
