// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store defines the persistence interface for gateway state: the
// epoch/signer-set registry, rotation scalars, and the message approval
// records. Implementations must apply ApplyRotation atomically.
package store

import "github.com/luxfi/ids"

// MessageState is the lifecycle state of a cross-chain message. States only
// move forward: Absent -> Approved -> Executed.
type MessageState uint8

const (
	Absent MessageState = iota
	Approved
	Executed
)

// String implements fmt.Stringer.
func (s MessageState) String() string {
	switch s {
	case Absent:
		return "absent"
	case Approved:
		return "approved"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// MessageRecord is the stored state of a message keyed by command id. The
// hash binds the approval to the full message tuple; once executed the state
// alone marks consumption and no hash comparison can succeed again.
type MessageRecord struct {
	State       MessageState
	MessageHash ids.ID
}

// Rotation is the atomic unit of a signer rotation: the new epoch counter,
// the signer set hash registered to it, and the rotation timestamp.
type Rotation struct {
	Epoch       uint64
	SignersHash ids.ID
	Timestamp   uint64
}

// Store persists gateway state. Signer set registrations are append-only: an
// epoch, once assigned a hash, is never reassigned, and vice versa.
type Store interface {
	// Epoch returns the current epoch, 0 if never bootstrapped.
	Epoch() (uint64, error)

	// LastRotationTimestamp returns the unix time of the last rotation.
	LastRotationTimestamp() (uint64, error)

	// EpochForSignersHash looks up the epoch a signer set hash is
	// registered to.
	EpochForSignersHash(hash ids.ID) (uint64, bool, error)

	// SignersHashForEpoch looks up the signer set hash registered to an
	// epoch.
	SignersHashForEpoch(epoch uint64) (ids.ID, bool, error)

	// ApplyRotation atomically advances the epoch counter, registers both
	// directions of the epoch<->hash mapping, and records the timestamp.
	ApplyRotation(rotation Rotation) error

	// Message returns the record for a command id.
	Message(commandID ids.ID) (MessageRecord, bool, error)

	// PutMessage writes the record for a command id.
	PutMessage(commandID ids.ID, record MessageRecord) error

	// Close releases the underlying resources.
	Close() error
}
