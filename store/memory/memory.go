// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memory implements an in-memory gateway store for embedding and
// tests.
package memory

import (
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/gateway/store"
)

var _ store.Store = (*Store)(nil)

// Store is an in-memory store.Store implementation.
type Store struct {
	mu            sync.RWMutex
	epoch         uint64
	lastRotation  uint64
	epochByHash   map[ids.ID]uint64
	hashByEpoch   map[uint64]ids.ID
	messages      map[ids.ID]store.MessageRecord
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		epochByHash: make(map[ids.ID]uint64),
		hashByEpoch: make(map[uint64]ids.ID),
		messages:    make(map[ids.ID]store.MessageRecord),
	}
}

// Epoch implements store.Store.
func (s *Store) Epoch() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch, nil
}

// LastRotationTimestamp implements store.Store.
func (s *Store) LastRotationTimestamp() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRotation, nil
}

// EpochForSignersHash implements store.Store.
func (s *Store) EpochForSignersHash(hash ids.ID) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	epoch, ok := s.epochByHash[hash]
	return epoch, ok, nil
}

// SignersHashForEpoch implements store.Store.
func (s *Store) SignersHashForEpoch(epoch uint64) (ids.ID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashByEpoch[epoch]
	return hash, ok, nil
}

// ApplyRotation implements store.Store.
func (s *Store) ApplyRotation(rotation store.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch = rotation.Epoch
	s.lastRotation = rotation.Timestamp
	s.epochByHash[rotation.SignersHash] = rotation.Epoch
	s.hashByEpoch[rotation.Epoch] = rotation.SignersHash
	return nil
}

// Message implements store.Store.
func (s *Store) Message(commandID ids.ID) (store.MessageRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.messages[commandID]
	return record, ok, nil
}

// PutMessage implements store.Store.
func (s *Store) PutMessage(commandID ids.ID, record store.MessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[commandID] = record
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return nil
}
