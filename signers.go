// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"bytes"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/rlp"
	"github.com/luxfi/ids"

	"github.com/luxfi/gateway/hashing"
)

const (
	// MaxSigners is the protocol bound on signers per set.
	MaxSigners = 100

	// PublicKeyLen is the length of a compressed secp256k1 public key.
	PublicKeyLen = 33
)

// WeightedSigner is one member of a weighted signer set.
type WeightedSigner struct {
	PublicKey [PublicKeyLen]byte
	Weight    uint64
}

// Less returns true if this signer sorts before the other by public key bytes.
func (s *WeightedSigner) Less(other *WeightedSigner) bool {
	return bytes.Compare(s.PublicKey[:], other.PublicKey[:]) < 0
}

// WeightedSignerSet is an ordered set of weighted signers plus the weight
// threshold a proof must accumulate. The nonce distinguishes otherwise
// identical sets so that a membership-and-threshold configuration can be
// re-registered under a fresh hash.
type WeightedSignerSet struct {
	Signers   []WeightedSigner
	Threshold *uint256.Int
	Nonce     [32]byte
}

// NewWeightedSignerSet creates a validated signer set.
func NewWeightedSignerSet(signers []WeightedSigner, threshold *uint256.Int, nonce [32]byte) (*WeightedSignerSet, error) {
	set := &WeightedSignerSet{
		Signers:   signers,
		Threshold: threshold,
		Nonce:     nonce,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate checks the structural, ordering, and weight invariants: a
// non-empty bounded signer list, strictly ascending public keys (which also
// forbids duplicates and makes the canonical hash deterministic), a positive
// threshold, positive weights, and a total weight that can reach the
// threshold.
func (s *WeightedSignerSet) Validate() error {
	if len(s.Signers) == 0 {
		return fmt.Errorf("%w: empty signer list", ErrStructural)
	}
	if len(s.Signers) > MaxSigners {
		return fmt.Errorf("%w: %d signers exceeds maximum %d", ErrStructural, len(s.Signers), MaxSigners)
	}
	if s.Threshold == nil || s.Threshold.IsZero() {
		return fmt.Errorf("%w: threshold must be positive", ErrWeight)
	}

	total := new(uint256.Int)
	for i := range s.Signers {
		signer := &s.Signers[i]
		if signer.Weight == 0 {
			return fmt.Errorf("%w: signer at index %d has zero weight", ErrWeight, i)
		}
		if i > 0 && !s.Signers[i-1].Less(signer) {
			return fmt.Errorf("%w: signer at index %d", ErrOrdering, i)
		}
		total.AddUint64(total, signer.Weight)
	}

	if total.Cmp(s.Threshold) < 0 {
		return fmt.Errorf("%w: total weight %s below threshold %s", ErrWeight, total, s.Threshold)
	}
	return nil
}

// TotalWeight returns the sum of all signer weights.
func (s *WeightedSignerSet) TotalWeight() *uint256.Int {
	total := new(uint256.Int)
	for i := range s.Signers {
		total.AddUint64(total, s.Signers[i].Weight)
	}
	return total
}

// Bytes returns the canonical encoding of the signer set.
func (s *WeightedSignerSet) Bytes() []byte {
	b, _ := rlp.EncodeToBytes(s)
	return b
}

// Hash returns the canonical hash identifying this signer set. Ascending
// signer order makes the hash independent of submission order.
func (s *WeightedSignerSet) Hash() ids.ID {
	return hashing.Hash256(s.Bytes())
}

// weightIndex maps each member public key to its weight for constant-time
// lookups during signature verification.
func (s *WeightedSignerSet) weightIndex() map[[PublicKeyLen]byte]uint64 {
	index := make(map[[PublicKeyLen]byte]uint64, len(s.Signers))
	for i := range s.Signers {
		index[s.Signers[i].PublicKey] = s.Signers[i].Weight
	}
	return index
}

// ParseWeightedSignerSet parses and validates a signer set from its
// canonical encoding.
func ParseWeightedSignerSet(b []byte) (*WeightedSignerSet, error) {
	set := &WeightedSignerSet{}
	if err := rlp.DecodeBytes(b, set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructural, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
