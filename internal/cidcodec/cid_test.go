package cidcodec

import (
	"bytes"
	"testing"

	"github.com/bulletinchain/go-sdk/internal/hashing"
)

func TestCalculateDeterministic(t *testing.T) {
	data := []byte("Hello, Bulletin!")
	a, err := Calculate(data, Raw, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(data, Raw, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equals(b) {
		t.Error("Calculate is not deterministic")
	}
}

func TestConvertCodecPreservesMultihash(t *testing.T) {
	data := []byte("chunk bytes")
	raw, err := Calculate(data, Raw, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	dagpb, err := Calculate(data, DagPb, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	converted := ConvertCodec(raw, DagPb)
	if !bytes.Equal(converted.Hash(), dagpb.Hash()) {
		t.Error("ConvertCodec should preserve the multihash")
	}
	if converted.Type() != uint64(DagPb) {
		t.Errorf("converted codec = 0x%x, want 0x%x", converted.Type(), DagPb)
	}
}

func TestEncodeDecodeBytesRoundTrip(t *testing.T) {
	c, err := Calculate([]byte("payload"), Raw, hashing.Sha2_256)
	if err != nil {
		t.Fatal(err)
	}
	b := EncodeBytes(c)
	decoded, err := DecodeBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equals(decoded) {
		t.Error("decode(encode(cid)) != cid")
	}
}

func TestFormatParseStringRoundTrip(t *testing.T) {
	c, err := Calculate([]byte("payload"), Raw, hashing.Blake2b256)
	if err != nil {
		t.Fatal(err)
	}
	s, err := FormatString(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) == 0 || s[0] != 'b' {
		t.Errorf("expected lowercase base32 (prefix 'b'), got %q", s)
	}
	parsed, err := ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equals(parsed) {
		t.Error("parse(format(cid)) != cid")
	}
}

func TestUnsupportedHashSurfacesAtCidCalculation(t *testing.T) {
	_, err := Calculate([]byte("x"), Raw, hashing.Keccak256)
	if err == nil {
		t.Fatal("expected error for keccak256")
	}
}
