// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package merkle verifies transaction inclusion proofs against source-chain
// block headers. Trees hash with sha512/256 under distinct leaf and node
// tags, so an interior node can never be replayed as a leaf.
package merkle

import (
	"crypto/sha512"
	"errors"
	"fmt"
)

const (
	// MaxProofLevels is the protocol bound on merkle proof depth.
	MaxProofLevels = 14

	// LeafTag and NodeTag separate the leaf and interior hash domains.
	LeafTag byte = 0x00
	NodeTag byte = 0x01
)

var (
	// ErrProofLength is returned when a proof's declared depth exceeds its
	// sibling list or the protocol bound.
	ErrProofLength = errors.New("invalid proof length")

	// ErrStructural is returned when a block header's fixed-width fields
	// are malformed.
	ErrStructural = errors.New("structurally invalid header")

	// ErrHeaderMismatch is returned when a header does not match the
	// trusted hash for its height, or a transaction is not bound to the
	// header's merkle root.
	ErrHeaderMismatch = errors.New("header mismatch")
)

// Proof is a merkle inclusion proof: the transaction's index among the
// block's leaves and the sibling hashes from leaf to root.
type Proof struct {
	TxIndex   uint32
	TreeDepth uint32
	Hashes    [][32]byte
}

// TaggedHash returns the sha512/256 digest of a one-byte domain tag followed
// by the concatenation of data.
func TaggedHash(tag byte, data ...[]byte) [32]byte {
	h := sha512.New512_256()
	h.Write([]byte{tag})
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// VerifyLeaf checks that leafData is a leaf of the tree rooted at merkleRoot.
// The path embeds the tree depth as a sentinel top bit above the index, so a
// proof for one depth cannot be reinterpreted at another.
func VerifyLeaf(leafData []byte, merkleRoot [32]byte, proof *Proof) (bool, error) {
	if proof.TreeDepth > MaxProofLevels {
		return false, fmt.Errorf("%w: depth %d exceeds maximum %d", ErrProofLength, proof.TreeDepth, MaxProofLevels)
	}
	if int(proof.TreeDepth) > len(proof.Hashes) {
		return false, fmt.Errorf("%w: depth %d exceeds %d siblings", ErrProofLength, proof.TreeDepth, len(proof.Hashes))
	}

	current := TaggedHash(LeafTag, leafData)
	path := uint64(1)<<proof.TreeDepth + uint64(proof.TxIndex)

	for i := uint32(0); i < proof.TreeDepth; i++ {
		sibling := proof.Hashes[i]
		if path>>i&1 == 1 {
			current = TaggedHash(NodeTag, sibling[:], current[:])
		} else {
			current = TaggedHash(NodeTag, current[:], sibling[:])
		}
	}
	return current == merkleRoot, nil
}
