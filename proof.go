// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"bytes"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/rlp"
	"github.com/luxfi/ids"

	"github.com/luxfi/gateway/hashing"
)

const (
	// MaxSignatures is the protocol bound on signatures per proof.
	MaxSignatures = 100

	// SignatureLen is the length of a recoverable ECDSA signature (R, S,
	// recovery id).
	SignatureLen = 65
)

// Signature is a 65-byte recoverable secp256k1 ECDSA signature.
type Signature [SignatureLen]byte

// Proof authenticates a data hash: the signer set claimed to have signed it
// and their signatures, pre-sorted by signer public key.
type Proof struct {
	SignerSet  WeightedSignerSet
	Signatures []Signature
}

// Validate checks the structural bounds of the proof.
func (p *Proof) Validate() error {
	if len(p.Signatures) == 0 {
		return fmt.Errorf("%w: empty signature list", ErrStructural)
	}
	if len(p.Signatures) > MaxSignatures {
		return fmt.Errorf("%w: %d signatures exceeds maximum %d", ErrStructural, len(p.Signatures), MaxSignatures)
	}
	return nil
}

// Bytes returns the canonical encoding of the proof.
func (p *Proof) Bytes() []byte {
	b, _ := rlp.EncodeToBytes(p)
	return b
}

// ParseProof parses a proof from its canonical encoding.
func ParseProof(b []byte) (*Proof, error) {
	proof := &Proof{}
	if err := rlp.DecodeBytes(b, proof); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructural, err)
	}
	if err := proof.Validate(); err != nil {
		return nil, err
	}
	return proof, nil
}

// verifyProof authenticates dataHash against the proof and the current
// rotation state. It returns whether the proof's signer set is the latest
// epoch, so callers can distinguish fresh proofs from merely unexpired ones.
//
// The caller must hold the gateway mutex.
func (g *Gateway) verifyProof(dataHash ids.ID, proof *Proof) (bool, error) {
	if err := proof.Validate(); err != nil {
		return false, err
	}

	signersHash := proof.SignerSet.Hash()
	epoch, ok, err := g.db.EpochForSignersHash(signersHash)
	if err != nil {
		return false, err
	}
	currentEpoch, err := g.db.Epoch()
	if err != nil {
		return false, err
	}
	if !ok || epoch == 0 {
		return false, fmt.Errorf("%w: signer set %s not registered", ErrExpiredSignerSet, signersHash)
	}
	if currentEpoch-epoch > g.cfg.PreviousSignersRetention {
		return false, fmt.Errorf("%w: epoch %d is %d epochs behind current %d",
			ErrExpiredSignerSet, epoch, currentEpoch-epoch, currentEpoch)
	}

	// Registered sets were validated at rotation, so the cached index is
	// safe to reuse across verifications of the same set.
	index, err := g.signerIndexes.Get(signersHash, func(ids.ID) (map[[PublicKeyLen]byte]uint64, error) {
		return proof.SignerSet.weightIndex(), nil
	}, false)
	if err != nil {
		return false, err
	}

	messageHash := hashing.SignedMessageHash(g.cfg.DomainSeparator, signersHash, dataHash)

	var (
		totalWeight = new(uint256.Int)
		lastKey     [PublicKeyLen]byte
	)
	for i, sig := range proof.Signatures {
		pub, err := crypto.SigToPub(messageHash[:], sig[:])
		if err != nil {
			return false, fmt.Errorf("%w: signature at index %d: %v", ErrSignatureRecovery, i, err)
		}

		var key [PublicKeyLen]byte
		copy(key[:], crypto.CompressPubkey(pub))

		// Submitters must pre-sort signatures by recovered key. Strict
		// ascent also rejects the same signature counted twice.
		if i > 0 && bytes.Compare(lastKey[:], key[:]) >= 0 {
			return false, fmt.Errorf("%w: recovered key at index %d", ErrOrdering, i)
		}
		lastKey = key

		weight, isMember := index[key]
		if !isMember {
			return false, fmt.Errorf("%w: recovered key at index %d is not in the signer set", ErrUnknownSigner, i)
		}
		totalWeight.AddUint64(totalWeight, weight)
	}

	if totalWeight.Cmp(proof.SignerSet.Threshold) < 0 {
		return false, fmt.Errorf("%w: accumulated weight %s below threshold %s",
			ErrInsufficientWeight, totalWeight, proof.SignerSet.Threshold)
	}
	return epoch == currentEpoch, nil
}
