// Package manifest builds and decodes the UnixFS-File DAG-PB manifest
// that links a payload's chunk CIDs in index order so it is retrievable
// by any IPFS-compatible client, the way other_examples' go-w3up
// reference builds PBNode structures over go-codec-dagpb /
// go-ipld-prime rather than hand-rolling protobuf framing for the outer
// envelope.
package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	dagpb "github.com/ipld/go-codec-dagpb"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"

	"github.com/bulletinchain/go-sdk/internal/cidcodec"
	"github.com/bulletinchain/go-sdk/internal/chunker"
	"github.com/bulletinchain/go-sdk/internal/hashing"
)

// Sentinel errors the root package translates into structured StoreError
// kinds.
var (
	ErrDagEncodingFailed = errors.New("manifest: dag encoding failed")
	ErrDagDecodingFailed = errors.New("manifest: dag decoding failed")
)

// Link is one entry of a decoded manifest: a chunk's CID and the byte
// length it was recorded under (Tsize).
type Link struct {
	CID   cid.Cid
	Tsize uint64
}

// Build constructs a UnixFS-File DAG-PB manifest over chunks, in chunk
// index order, and returns its root CID (codec DagPb, hashed with alg)
// and its serialized bytes.
func Build(chunks []chunker.Chunk, alg hashing.Algorithm) (cid.Cid, []byte, error) {
	for _, c := range chunks {
		if c.CID == nil {
			return cid.Undef, nil, fmt.Errorf("%w: chunk %d has no CID", ErrDagEncodingFailed, c.Index)
		}
	}

	blockSizes := make([]uint64, len(chunks))
	for i, c := range chunks {
		blockSizes[i] = uint64(len(c.Bytes))
	}
	ufsData := encodeUnixFSFile(blockSizes)

	pbLinks := make([]dagpb.PBLink, len(chunks))
	for i, c := range chunks {
		link, err := buildPBLink("", *c.CID, uint64(len(c.Bytes)))
		if err != nil {
			return cid.Undef, nil, fmt.Errorf("%w: link %d: %v", ErrDagEncodingFailed, i, err)
		}
		pbLinks[i] = link
	}

	node, err := buildPBNode(ufsData, pbLinks)
	if err != nil {
		return cid.Undef, nil, fmt.Errorf("%w: %v", ErrDagEncodingFailed, err)
	}

	var buf bytes.Buffer
	if err := dagpb.Encode(node, &buf); err != nil {
		return cid.Undef, nil, fmt.Errorf("%w: encode: %v", ErrDagEncodingFailed, err)
	}
	manifestBytes := buf.Bytes()

	root, err := cidcodec.Calculate(manifestBytes, cidcodec.DagPb, alg)
	if err != nil {
		return cid.Undef, nil, fmt.Errorf("%w: root cid: %v", ErrDagEncodingFailed, err)
	}
	return root, manifestBytes, nil
}

// Decode parses manifestBytes, returning the chunk CIDs in link order and
// the UnixFS-reported total file size (sum of blockSizes). The Data
// field must unmarshal as a UnixFS File descriptor; any other type is
// ErrDagDecodingFailed.
func Decode(manifestBytes []byte) ([]cid.Cid, uint64, error) {
	nd, err := dagpb.Decode(bytes.NewReader(manifestBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDagDecodingFailed, err)
	}

	dataNode, err := nd.LookupByString("Data")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: missing Data field: %v", ErrDagDecodingFailed, err)
	}
	ufsBytes, err := dataNode.AsBytes()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Data is not bytes: %v", ErrDagDecodingFailed, err)
	}
	ufs, err := decodeUnixFSFile(ufsBytes)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDagDecodingFailed, err)
	}

	linksNode, err := nd.LookupByString("Links")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: missing Links field: %v", ErrDagDecodingFailed, err)
	}
	it := linksNode.ListIterator()
	if it == nil {
		return nil, 0, fmt.Errorf("%w: Links is not a list", ErrDagDecodingFailed)
	}
	var chunkCIDs []cid.Cid
	for !it.Done() {
		_, linkNode, err := it.Next()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDagDecodingFailed, err)
		}
		hashNode, err := linkNode.LookupByString("Hash")
		if err != nil {
			return nil, 0, fmt.Errorf("%w: link missing Hash: %v", ErrDagDecodingFailed, err)
		}
		lnk, err := hashNode.AsLink()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: Hash is not a link: %v", ErrDagDecodingFailed, err)
		}
		cl, ok := lnk.(cidlink.Link)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unsupported link kind", ErrDagDecodingFailed)
		}
		chunkCIDs = append(chunkCIDs, cl.Cid)
	}

	var totalSize uint64
	for _, s := range ufs.BlockSizes {
		totalSize += s
	}
	return chunkCIDs, totalSize, nil
}

func buildPBNode(data []byte, links []dagpb.PBLink) (datamodel.Node, error) {
	nb := dagpb.Type.PBNode.NewBuilder()
	ma, err := nb.BeginMap(2)
	if err != nil {
		return nil, err
	}
	la, err := ma.AssembleEntry("Links")
	if err != nil {
		return nil, err
	}
	list, err := la.BeginList(int64(len(links)))
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if err := list.AssembleValue().AssignNode(l); err != nil {
			return nil, err
		}
	}
	if err := list.Finish(); err != nil {
		return nil, err
	}
	if err := ma.AssembleKey().AssignString("Data"); err != nil {
		return nil, err
	}
	if err := ma.AssembleValue().AssignBytes(data); err != nil {
		return nil, err
	}
	if err := ma.Finish(); err != nil {
		return nil, err
	}
	return nb.Build(), nil
}

func buildPBLink(name string, c cid.Cid, tsize uint64) (dagpb.PBLink, error) {
	lb := dagpb.Type.PBLink.NewBuilder()
	ma, err := lb.BeginMap(3)
	if err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleKey().AssignString("Hash"); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleValue().AssignLink(cidlink.Link{Cid: c}); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleKey().AssignString("Name"); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleValue().AssignString(name); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleKey().AssignString("Tsize"); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.AssembleValue().AssignInt(int64(tsize)); err != nil {
		return dagpb.PBLink{}, err
	}
	if err := ma.Finish(); err != nil {
		return dagpb.PBLink{}, err
	}
	nd := lb.Build()
	link, ok := nd.(dagpb.PBLink)
	if !ok {
		return dagpb.PBLink{}, fmt.Errorf("manifest: built node is not a PBLink")
	}
	return link, nil
}
