// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/gateway/store"
)

// Bootstrap registers the first signer set, moving the gateway from epoch 0
// to epoch 1. Only the configured deployer may call it, exactly once, and no
// proof is required.
func (g *Gateway) Bootstrap(caller common.Address, signerSet *WeightedSignerSet) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if caller != g.cfg.Deployer {
		return fmt.Errorf("%w: only the deployer may bootstrap", ErrUnauthorized)
	}
	epoch, err := g.db.Epoch()
	if err != nil {
		return err
	}
	if epoch != 0 {
		return ErrAlreadyBootstrapped
	}
	if err := signerSet.Validate(); err != nil {
		return err
	}
	return g.rotate(signerSet, signerSet.Hash())
}

// RotateSigners advances the gateway to a new signer set, authenticated by a
// proof over the new set's canonical hash. The minimum rotation delay is
// enforced unless the caller is the operator; non-operator callers must also
// present a proof from the latest epoch, while the operator may use any
// unexpired signer set for emergency recovery. A set whose hash was ever
// registered can never be promoted again.
func (g *Gateway) RotateSigners(caller common.Address, newSignerSet *WeightedSignerSet, proof *Proof) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	epoch, err := g.db.Epoch()
	if err != nil {
		return err
	}
	if epoch == 0 {
		return ErrNotBootstrapped
	}

	newHash := newSignerSet.Hash()
	if _, registered, err := g.db.EpochForSignersHash(newHash); err != nil {
		return err
	} else if registered {
		return fmt.Errorf("%w: %s was already promoted", ErrDuplicateSignerSet, newHash)
	}
	if err := newSignerSet.Validate(); err != nil {
		return err
	}

	isLatest, err := g.verifyProof(newHash, proof)
	if err != nil {
		g.metrics.rejectedProofs.Inc()
		return err
	}

	enforceDelay := caller != g.cfg.Operator
	if enforceDelay {
		if !isLatest {
			return fmt.Errorf("%w: rotation proof must come from the latest signer set", ErrExpiredSignerSet)
		}
		lastRotation, err := g.db.LastRotationTimestamp()
		if err != nil {
			return err
		}
		if elapsed := g.now() - lastRotation; elapsed < g.cfg.MinimumRotationDelay {
			return fmt.Errorf("%w: %d of %d seconds elapsed",
				ErrInsufficientRotationDelay, elapsed, g.cfg.MinimumRotationDelay)
		}
	}

	return g.rotate(newSignerSet, newHash)
}

// rotate commits the epoch bump, both registry directions, and the rotation
// timestamp as one atomic store update, then emits signers-rotated. The
// timestamp resets on every rotation, including operator rotations that
// bypassed the delay check.
func (g *Gateway) rotate(signerSet *WeightedSignerSet, signersHash ids.ID) error {
	epoch, err := g.db.Epoch()
	if err != nil {
		return err
	}
	newEpoch := epoch + 1

	if err := g.db.ApplyRotation(store.Rotation{
		Epoch:       newEpoch,
		SignersHash: signersHash,
		Timestamp:   g.now(),
	}); err != nil {
		return err
	}

	g.metrics.signerRotations.Inc()
	g.log.Info("signers rotated",
		log.Uint64("epoch", newEpoch),
		log.Stringer("signersHash", signersHash),
		log.Uint64("signers", uint64(len(signerSet.Signers))),
	)
	g.emitter.SignersRotated(SignersRotatedEvent{
		Epoch:       newEpoch,
		SignersHash: signersHash,
		Signers:     *signerSet,
	})
	return nil
}
