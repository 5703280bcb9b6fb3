// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/gateway/hashing"
)

func TestProofValidate(t *testing.T) {
	proof := &Proof{}
	require.ErrorIs(t, proof.Validate(), ErrStructural)

	proof.Signatures = make([]Signature, MaxSignatures+1)
	require.ErrorIs(t, proof.Validate(), ErrStructural)

	proof.Signatures = make([]Signature, MaxSignatures)
	require.NoError(t, proof.Validate())
}

func TestVerifyProofThreshold(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 2)
	set := signerSet(t, signers, 2, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	// One of two weight-1 signatures cannot reach threshold 2.
	partial := signProof(t, cfg.DomainSeparator, set, signers[:1], dataHash)
	_, err := g.verifyProof(dataHash, partial)
	require.ErrorIs(t, err, ErrInsufficientWeight)

	// Both signatures in ascending key order verify against the latest epoch.
	full := signProof(t, cfg.DomainSeparator, set, signers, dataHash)
	isLatest, err := g.verifyProof(dataHash, full)
	require.NoError(t, err)
	require.True(t, isLatest)
}

func TestVerifyProofSignatureOrdering(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 2)
	set := signerSet(t, signers, 2, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	reversed := []testSigner{signers[1], signers[0]}
	proof := signProof(t, cfg.DomainSeparator, set, reversed, dataHash)
	_, err := g.verifyProof(dataHash, proof)
	require.ErrorIs(t, err, ErrOrdering)

	// The same signature twice violates strict ascent too.
	duplicated := []testSigner{signers[0], signers[0]}
	proof = signProof(t, cfg.DomainSeparator, set, duplicated, dataHash)
	_, err = g.verifyProof(dataHash, proof)
	require.ErrorIs(t, err, ErrOrdering)
}

func TestVerifyProofUnknownSigner(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 2)
	set := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	outsider := genSigners(t, 1)
	proof := signProof(t, cfg.DomainSeparator, set, outsider, dataHash)
	_, err := g.verifyProof(dataHash, proof)
	require.ErrorIs(t, err, ErrUnknownSigner)
}

func TestVerifyProofSignatureRecovery(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 1)
	set := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	proof := &Proof{
		SignerSet:  *set,
		Signatures: []Signature{{}},
	}
	_, err := g.verifyProof(dataHash, proof)
	require.ErrorIs(t, err, ErrSignatureRecovery)
}

func TestVerifyProofWrongDataHash(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 1)
	set := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	// Signatures over a different payload recover to keys outside the set.
	proof := signProof(t, cfg.DomainSeparator, set, signers, hashing.Hash256([]byte("signed")))
	_, err := g.verifyProof(hashing.Hash256([]byte("submitted")), proof)
	require.Error(t, err)
}

func TestVerifyProofUnregisteredSignerSet(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 1)
	set := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	stranger := signerSet(t, signers, 1, 99)
	proof := signProof(t, cfg.DomainSeparator, stranger, signers, dataHash)
	_, err := g.verifyProof(dataHash, proof)
	require.ErrorIs(t, err, ErrExpiredSignerSet)
}

func TestVerifyProofRetentionWindow(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	cfg.PreviousSignersRetention = 1
	signers := genSigners(t, 1)

	first := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, first)

	// Advance to epoch 2, then epoch 3, using operator rotations so no delay
	// ticks are needed.
	second := signerSet(t, signers, 1, 2)
	require.NoError(t, g.RotateSigners(testOperator, second,
		signProof(t, cfg.DomainSeparator, first, signers, second.Hash())))

	third := signerSet(t, signers, 1, 3)
	require.NoError(t, g.RotateSigners(testOperator, third,
		signProof(t, cfg.DomainSeparator, second, signers, third.Hash())))

	dataHash := hashing.Hash256([]byte("payload"))

	// Epoch 2 is exactly retention epochs behind epoch 3: still valid, but
	// not the latest.
	isLatest, err := g.verifyProof(dataHash,
		signProof(t, cfg.DomainSeparator, second, signers, dataHash))
	require.NoError(t, err)
	require.False(t, isLatest)

	// Epoch 1 is beyond the window.
	_, err = g.verifyProof(dataHash,
		signProof(t, cfg.DomainSeparator, first, signers, dataHash))
	require.ErrorIs(t, err, ErrExpiredSignerSet)
}

func TestVerifyProofDomainSeparation(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 1)
	set := signerSet(t, signers, 1, 1)
	g, _ := bootstrappedGateway(t, cfg, set)

	dataHash := hashing.Hash256([]byte("payload"))

	// A proof signed for another deployment's domain separator fails here.
	otherDomain := hashing.Hash256([]byte("other-deployment"))
	proof := signProof(t, otherDomain, set, signers, dataHash)
	_, err := g.verifyProof(dataHash, proof)
	require.Error(t, err)
}

func TestParseProof(t *testing.T) {
	clk := &fakeClock{now: 10_000}
	cfg := testConfig(clk)
	signers := genSigners(t, 2)
	set := signerSet(t, signers, 2, 1)

	dataHash := hashing.Hash256([]byte("payload"))
	proof := signProof(t, cfg.DomainSeparator, set, signers, dataHash)

	parsed, err := ParseProof(proof.Bytes())
	require.NoError(t, err)
	require.Equal(t, proof.Signatures, parsed.Signatures)
	require.Equal(t, proof.SignerSet.Hash(), parsed.SignerSet.Hash())

	_, err = ParseProof([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrStructural)
}
