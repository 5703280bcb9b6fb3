// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hashing implements the digest primitives shared by the gateway
// protocol: plain sha256 digests, one-byte domain-tagged hashing, the
// structured signed-message hash, and command id derivation.
package hashing

import (
	"crypto/sha256"

	"github.com/luxfi/ids"
)

// SignedMessagePrefix is the structured-signing prefix prepended to every
// message digest presented to signers. The leading byte is the length of the
// remaining prefix string, which keeps the prefix unambiguous when
// concatenated with arbitrary payloads.
const SignedMessagePrefix = "\x17Stacks Signed Message:\n"

// Domain tags. Each payload class hashed under a tag is unforgeable as a
// payload of any other class.
const (
	// TagApproveMessages prefixes the canonical bytes of a message batch.
	TagApproveMessages byte = 0x02
)

// commandIDSeparator joins the source chain and message id before hashing.
const commandIDSeparator = "_"

// Hash256 returns the sha256 digest of the concatenation of data.
func Hash256(data ...[]byte) ids.ID {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out ids.ID
	copy(out[:], h.Sum(nil))
	return out
}

// TaggedHash returns the sha256 digest of a one-byte domain tag followed by
// the concatenation of data.
func TaggedHash(tag byte, data ...[]byte) ids.ID {
	h := sha256.New()
	h.Write([]byte{tag})
	for _, d := range data {
		h.Write(d)
	}
	var out ids.ID
	copy(out[:], h.Sum(nil))
	return out
}

// SignedMessageHash returns the digest signers actually sign: the
// signed-message prefix, the protocol domain separator, the hash of the
// signer set expected to sign, and the hash of the data being authorized.
// Binding the signer-set hash into the digest prevents a signature produced
// for one signer set from being replayed against another.
func SignedMessageHash(domainSeparator, signersHash, dataHash ids.ID) ids.ID {
	return Hash256(
		[]byte(SignedMessagePrefix),
		domainSeparator[:],
		signersHash[:],
		dataHash[:],
	)
}

// CommandID derives the replay-protection key for a cross-chain message from
// its source chain and message id.
func CommandID(sourceChain, messageID string) ids.ID {
	return Hash256(
		[]byte(sourceChain),
		[]byte(commandIDSeparator),
		[]byte(messageID),
	)
}
