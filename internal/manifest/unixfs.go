package manifest

import (
	"encoding/binary"
	"fmt"
)

// Minimal hand-rolled codec for the UnixFS v1 "Data" protobuf message
// (https://github.com/ipfs/specs/blob/main/UNIXFS.md). Only the File
// variant and the fields a manifest needs (Type, filesize, blocksizes)
// are implemented; no available DAG-PB library ships a ready encoder
// for this inner message, so it is written directly against the
// documented wire format — field tags 1 (Type, varint), 3 (filesize,
// varint) and 4 (blocksizes, repeated unpacked varint).
type unixfsDataType uint64

const (
	unixfsTypeRaw       unixfsDataType = 0
	unixfsTypeDirectory unixfsDataType = 1
	unixfsTypeFile      unixfsDataType = 2
)

func encodeUnixFSFile(blockSizes []uint64) []byte {
	var total uint64
	for _, s := range blockSizes {
		total += s
	}

	buf := make([]byte, 0, 16+len(blockSizes)*4)
	buf = appendTagVarint(buf, 1, uint64(unixfsTypeFile))
	buf = appendTagVarint(buf, 3, total)
	for _, s := range blockSizes {
		buf = appendTagVarint(buf, 4, s)
	}
	return buf
}

type decodedUnixFS struct {
	Type       unixfsDataType
	FileSize   uint64
	BlockSizes []uint64
}

func decodeUnixFSFile(data []byte) (decodedUnixFS, error) {
	var out decodedUnixFS
	i := 0
	for i < len(data) {
		tag, n := binary.Uvarint(data[i:])
		if n <= 0 {
			return out, fmt.Errorf("unixfs: malformed tag at offset %d", i)
		}
		i += n
		field := tag >> 3
		wireType := tag & 0x7

		if wireType != 0 {
			return out, fmt.Errorf("unixfs: unsupported wire type %d for field %d", wireType, field)
		}
		value, n := binary.Uvarint(data[i:])
		if n <= 0 {
			return out, fmt.Errorf("unixfs: malformed varint at offset %d", i)
		}
		i += n

		switch field {
		case 1:
			out.Type = unixfsDataType(value)
		case 3:
			out.FileSize = value
		case 4:
			out.BlockSizes = append(out.BlockSizes, value)
		}
	}
	if out.Type != unixfsTypeFile {
		return out, fmt.Errorf("unixfs: expected File type (2), got %d", out.Type)
	}
	return out, nil
}

func appendTagVarint(buf []byte, field int, value uint64) []byte {
	tag := uint64(field)<<3 | 0
	buf = appendVarint(buf, tag)
	buf = appendVarint(buf, value)
	return buf
}

func appendVarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}
