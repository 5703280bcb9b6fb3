// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gateway implements cross-chain message authentication: weighted
// multisig proof verification against an epoch-based signer registry,
// replay-protected message approval and consumption, and the signer rotation
// state machine tying them together.
package gateway

import (
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/gateway/cache"
	"github.com/luxfi/gateway/store"
)

// signerIndexCacheSize bounds the number of signer-set weight indexes kept
// warm. Retention windows are small, so a handful of sets covers all live
// proofs.
const signerIndexCacheSize = 16

// Gateway is one bridge instance. All mutating operations are serialized
// behind a single mutex; validation always precedes mutation, so a failed
// operation leaves no observable state change.
type Gateway struct {
	cfg     Config
	log     log.Logger
	db      store.Store
	emitter Emitter
	metrics *gatewayMetrics
	now     func() uint64

	signerIndexes *cache.LRUCache[ids.ID, map[[PublicKeyLen]byte]uint64]

	mu sync.Mutex
}

// New creates a gateway over the given store. A nil logger, emitter, or
// registerer selects a no-op implementation.
func New(
	cfg Config,
	db store.Store,
	logger log.Logger,
	emitter Emitter,
	registerer prometheus.Registerer,
) *Gateway {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	return &Gateway{
		cfg:           cfg,
		log:           logger,
		db:            db,
		emitter:       emitter,
		metrics:       newGatewayMetrics(registerer),
		now:           cfg.clock(),
		signerIndexes: cache.NewLRUCache[ids.ID, map[[PublicKeyLen]byte]uint64](signerIndexCacheSize),
	}
}

// Epoch returns the current epoch, 0 before bootstrap.
func (g *Gateway) Epoch() (uint64, error) {
	return g.db.Epoch()
}

// SignersHashForEpoch returns the signer set hash registered to epoch.
func (g *Gateway) SignersHashForEpoch(epoch uint64) (ids.ID, bool, error) {
	return g.db.SignersHashForEpoch(epoch)
}

// EpochForSignersHash returns the epoch a signer set hash is registered to.
func (g *Gateway) EpochForSignersHash(hash ids.ID) (uint64, bool, error) {
	return g.db.EpochForSignersHash(hash)
}

// LastRotationTimestamp returns the unix time of the last rotation.
func (g *Gateway) LastRotationTimestamp() (uint64, error) {
	return g.db.LastRotationTimestamp()
}

// MinimumRotationDelay returns the configured rotation delay in seconds.
func (g *Gateway) MinimumRotationDelay() uint64 {
	return g.cfg.MinimumRotationDelay
}

// PreviousSignersRetention returns the configured retention window in epochs.
func (g *Gateway) PreviousSignersRetention() uint64 {
	return g.cfg.PreviousSignersRetention
}

// MessageStatus returns the lifecycle state of a command id.
func (g *Gateway) MessageStatus(commandID ids.ID) (store.MessageState, error) {
	record, ok, err := g.db.Message(commandID)
	if err != nil {
		return store.Absent, err
	}
	if !ok {
		return store.Absent, nil
	}
	return record.State, nil
}
