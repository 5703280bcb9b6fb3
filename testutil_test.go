// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"bytes"
	"crypto/ecdsa"
	"sort"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/gateway/hashing"
	"github.com/luxfi/gateway/store/memory"
)

var (
	testDeployer = common.Address{0x0d}
	testOperator = common.Address{0x0e}
	testRelayer  = common.Address{0x0f}
)

// testSigner couples a private key with its compressed public key.
type testSigner struct {
	key *ecdsa.PrivateKey
	pub [PublicKeyLen]byte
}

// genSigners generates n keys sorted by compressed public key, the order
// signer sets require.
func genSigners(t *testing.T, n int) []testSigner {
	t.Helper()
	signers := make([]testSigner, n)
	for i := range signers {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		signers[i].key = key
		copy(signers[i].pub[:], crypto.CompressPubkey(&key.PublicKey))
	}
	sort.Slice(signers, func(i, j int) bool {
		return bytes.Compare(signers[i].pub[:], signers[j].pub[:]) < 0
	})
	return signers
}

// signerSet builds a set where every signer holds weight 1. The nonce byte
// lets tests derive distinct hashes from the same membership.
func signerSet(t *testing.T, signers []testSigner, threshold uint64, nonce byte) *WeightedSignerSet {
	t.Helper()
	weighted := make([]WeightedSigner, len(signers))
	for i, s := range signers {
		weighted[i] = WeightedSigner{PublicKey: s.pub, Weight: 1}
	}
	set, err := NewWeightedSignerSet(weighted, uint256.NewInt(threshold), [32]byte{nonce})
	require.NoError(t, err)
	return set
}

// signProof signs dataHash with the given signers under set. Signatures come
// out in the callers' order, so pass signers sorted when a valid proof is
// wanted.
func signProof(t *testing.T, domain ids.ID, set *WeightedSignerSet, signers []testSigner, dataHash ids.ID) *Proof {
	t.Helper()
	messageHash := hashing.SignedMessageHash(domain, set.Hash(), dataHash)
	sigs := make([]Signature, len(signers))
	for i, s := range signers {
		raw, err := crypto.Sign(messageHash[:], s.key)
		require.NoError(t, err)
		copy(sigs[i][:], raw)
	}
	return &Proof{SignerSet: *set, Signatures: sigs}
}

// fakeClock is an injectable unix clock.
type fakeClock struct {
	now uint64
}

func (c *fakeClock) Now() uint64 { return c.now }

func testConfig(clk *fakeClock) Config {
	return Config{
		Deployer:                 testDeployer,
		Operator:                 testOperator,
		DomainSeparator:          hashing.Hash256([]byte("gateway-test-domain")),
		PreviousSignersRetention: 4,
		MinimumRotationDelay:     3600,
		Clock:                    clk.Now,
	}
}

func newTestGateway(t *testing.T, cfg Config) (*Gateway, *MemoryEmitter) {
	t.Helper()
	emitter := &MemoryEmitter{}
	return New(cfg, memory.New(), nil, emitter, nil), emitter
}

// bootstrappedGateway returns a gateway at epoch 1 with the given signer set.
func bootstrappedGateway(t *testing.T, cfg Config, set *WeightedSignerSet) (*Gateway, *MemoryEmitter) {
	t.Helper()
	g, emitter := newTestGateway(t, cfg)
	require.NoError(t, g.Bootstrap(testDeployer, set))
	return g, emitter
}
