// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Config carries the deployment parameters of a gateway instance. Caller
// identities and timestamps come from the external dispatch layer; the
// configuration pins who is privileged and how rotation is throttled.
type Config struct {
	// Deployer may call Bootstrap, exactly once.
	Deployer common.Address

	// Operator may rotate signers without the minimum delay and with any
	// unexpired (not necessarily latest) signer set, for emergency
	// recovery.
	Operator common.Address

	// DomainSeparator distinguishes this gateway deployment in signed
	// message hashes, preventing cross-deployment signature reuse.
	DomainSeparator ids.ID

	// PreviousSignersRetention is the number of trailing epochs whose
	// signer sets remain valid for new proof verification.
	PreviousSignersRetention uint64

	// MinimumRotationDelay is the minimum time in seconds between
	// non-operator rotations.
	MinimumRotationDelay uint64

	// Clock returns the current unix time in seconds. Defaults to the
	// system clock; injectable for tests and for hosts that supply their
	// own notion of time.
	Clock func() uint64
}

func (c *Config) clock() func() uint64 {
	if c.Clock != nil {
		return c.Clock
	}
	return func() uint64 {
		return uint64(time.Now().Unix())
	}
}
