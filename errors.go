// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import "errors"

var (
	// ErrStructural is returned when an input violates a structural bound:
	// empty or oversized lists, malformed fixed-width fields.
	ErrStructural = errors.New("structurally invalid input")

	// ErrOrdering is returned when a signer or signature list is not
	// strictly ascending by public key bytes.
	ErrOrdering = errors.New("keys not strictly ascending")

	// ErrWeight is returned when a signer set carries a zero weight, a zero
	// threshold, or a threshold its total weight cannot reach.
	ErrWeight = errors.New("invalid signer weights")

	// ErrExpiredSignerSet is returned when a proof's signer set is unknown
	// or outside the retention window.
	ErrExpiredSignerSet = errors.New("expired signer set")

	// ErrSignatureRecovery is returned when a public key cannot be
	// recovered from a signature.
	ErrSignatureRecovery = errors.New("signature recovery failed")

	// ErrUnknownSigner is returned when a recovered public key is not a
	// member of the proof's signer set.
	ErrUnknownSigner = errors.New("unknown signer")

	// ErrInsufficientWeight is returned when the accumulated weight of
	// valid signatures is below the signer set threshold.
	ErrInsufficientWeight = errors.New("insufficient signature weight")

	// ErrDuplicateSignerSet is returned when rotating to a signer set whose
	// hash is already registered to an epoch.
	ErrDuplicateSignerSet = errors.New("duplicate signer set")

	// ErrInsufficientRotationDelay is returned when a rotation is attempted
	// before the minimum delay since the last rotation has elapsed.
	ErrInsufficientRotationDelay = errors.New("insufficient rotation delay")

	// ErrMessageNotFound is returned when validating a message that was
	// never approved, was already executed, or whose stored hash does not
	// match the submitted fields.
	ErrMessageNotFound = errors.New("message not found")

	// ErrNotBootstrapped is returned when an operation requires a
	// bootstrapped gateway.
	ErrNotBootstrapped = errors.New("gateway not bootstrapped")

	// ErrAlreadyBootstrapped is returned when bootstrap is attempted twice.
	ErrAlreadyBootstrapped = errors.New("gateway already bootstrapped")

	// ErrUnauthorized is returned when the caller is not permitted to
	// perform the requested operation.
	ErrUnauthorized = errors.New("caller not authorized")
)
