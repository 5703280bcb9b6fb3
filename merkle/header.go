// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package merkle

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
)

// Block header field layout. All multi-byte integers are big-endian.
const (
	headerVersionLen        = 1
	headerChainLengthLen    = 8
	headerBurnSpentLen      = 8
	headerConsensusHashLen  = 20
	headerParentBlockIDLen  = 32
	headerTxMerkleRootLen   = 32
	headerStateIndexRootLen = 32
	headerTimestampLen      = 8
	headerMinerSigLen       = 65

	// headerFixedLen is the length of the fixed-width prefix; the signer
	// bitvec follows it.
	headerFixedLen = headerVersionLen + headerChainLengthLen + headerBurnSpentLen +
		headerConsensusHashLen + headerParentBlockIDLen + headerTxMerkleRootLen +
		headerStateIndexRootLen + headerTimestampLen + headerMinerSigLen

	// bitvecHeaderLen is the bitvec's own prefix: a 2-byte bit count and a
	// 4-byte byte count for the data that follows.
	bitvecHeaderLen = 6

	txMerkleRootOffset = headerVersionLen + headerChainLengthLen + headerBurnSpentLen +
		headerConsensusHashLen + headerParentBlockIDLen
)

// BlockHeader is the decoded fixed-width block header of the source chain.
type BlockHeader struct {
	Version        uint8
	ChainLength    uint64
	BurnSpent      uint64
	ConsensusHash  [20]byte
	ParentBlockID  [32]byte
	TxMerkleRoot   [32]byte
	StateIndexRoot [32]byte
	Timestamp      uint64
	MinerSignature [65]byte
	SignerBitvec   []byte
}

// ParseBlockHeader decodes and structurally validates a block header. The
// signer bitvec's self-declared byte count must account for exactly the
// bytes present after its own 6-byte prefix.
func ParseBlockHeader(b []byte) (*BlockHeader, error) {
	if len(b) < headerFixedLen+bitvecHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrStructural, len(b), headerFixedLen+bitvecHeaderLen)
	}

	header := &BlockHeader{}
	offset := 0

	header.Version = b[offset]
	offset += headerVersionLen

	header.ChainLength = binary.BigEndian.Uint64(b[offset:])
	offset += headerChainLengthLen

	header.BurnSpent = binary.BigEndian.Uint64(b[offset:])
	offset += headerBurnSpentLen

	copy(header.ConsensusHash[:], b[offset:])
	offset += headerConsensusHashLen

	copy(header.ParentBlockID[:], b[offset:])
	offset += headerParentBlockIDLen

	copy(header.TxMerkleRoot[:], b[offset:])
	offset += headerTxMerkleRootLen

	copy(header.StateIndexRoot[:], b[offset:])
	offset += headerStateIndexRootLen

	header.Timestamp = binary.BigEndian.Uint64(b[offset:])
	offset += headerTimestampLen

	copy(header.MinerSignature[:], b[offset:])
	offset += headerMinerSigLen

	bitvec := b[offset:]
	declared := binary.BigEndian.Uint32(bitvec[2:bitvecHeaderLen])
	if int(declared) != len(bitvec)-bitvecHeaderLen {
		return nil, fmt.Errorf("%w: signer bitvec declares %d bytes, carries %d",
			ErrStructural, declared, len(bitvec)-bitvecHeaderLen)
	}
	header.SignerBitvec = bitvec

	return header, nil
}

// HeaderHash returns the sha512/256 hash identifying a serialized header.
func HeaderHash(headerBytes []byte) [32]byte {
	return sha512.Sum512_256(headerBytes)
}

// HeaderOracle supplies the trusted header hash for a block height. The
// oracle is an external collaborator; its trust model is out of scope here.
type HeaderOracle interface {
	TrustedHeaderHash(height uint64) ([32]byte, error)
}

// VerifyTxMined checks that txid is included in the block at blockHeight:
// the serialized header must be structurally valid, its hash must equal the
// oracle's trusted hash for that height, and the proof must bind the
// transaction to the header's merkle root.
func VerifyTxMined(
	txid [32]byte,
	proof *Proof,
	blockHeight uint64,
	headerBytes []byte,
	oracle HeaderOracle,
) error {
	header, err := ParseBlockHeader(headerBytes)
	if err != nil {
		return err
	}

	trusted, err := oracle.TrustedHeaderHash(blockHeight)
	if err != nil {
		return fmt.Errorf("failed to fetch trusted header hash: %w", err)
	}
	if HeaderHash(headerBytes) != trusted {
		return fmt.Errorf("%w: header hash does not match trusted hash at height %d", ErrHeaderMismatch, blockHeight)
	}

	leaf := TaggedHash(LeafTag, txid[:])
	included, err := VerifyLeaf(leaf[:], header.TxMerkleRoot, proof)
	if err != nil {
		return err
	}
	if !included {
		return fmt.Errorf("%w: transaction not bound to the header merkle root", ErrHeaderMismatch)
	}
	return nil
}
