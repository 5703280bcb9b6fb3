// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pebbledb implements a durable gateway store backed by pebble.
// Rotation sub-updates share one write batch so the epoch counter, both
// registry directions, and the timestamp commit together.
package pebbledb

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/luxfi/ids"

	"github.com/luxfi/gateway/store"
)

var _ store.Store = (*Store)(nil)

var (
	keyEpoch        = []byte("meta:epoch")
	keyLastRotation = []byte("meta:rotation")
)

const (
	prefixEpochByHash = 'h'
	prefixHashByEpoch = 'e'
	prefixMessage     = 'm'
)

// Store is a pebble-backed store.Store implementation.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) a pebble store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble store: %w", err)
	}
	return &Store{db: db}, nil
}

// Epoch implements store.Store.
func (s *Store) Epoch() (uint64, error) {
	return s.getUint64(keyEpoch)
}

// LastRotationTimestamp implements store.Store.
func (s *Store) LastRotationTimestamp() (uint64, error) {
	return s.getUint64(keyLastRotation)
}

// EpochForSignersHash implements store.Store.
func (s *Store) EpochForSignersHash(hash ids.ID) (uint64, bool, error) {
	value, closer, err := s.db.Get(prefixedKey(prefixEpochByHash, hash[:]))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer closer.Close()
	if len(value) != 8 {
		return 0, false, fmt.Errorf("corrupt epoch entry for %s", hash)
	}
	return binary.BigEndian.Uint64(value), true, nil
}

// SignersHashForEpoch implements store.Store.
func (s *Store) SignersHashForEpoch(epoch uint64) (ids.ID, bool, error) {
	var epochKey [8]byte
	binary.BigEndian.PutUint64(epochKey[:], epoch)

	value, closer, err := s.db.Get(prefixedKey(prefixHashByEpoch, epochKey[:]))
	if errors.Is(err, pebble.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	defer closer.Close()
	if len(value) != ids.IDLen {
		return ids.Empty, false, fmt.Errorf("corrupt signer hash entry for epoch %d", epoch)
	}
	var hash ids.ID
	copy(hash[:], value)
	return hash, true, nil
}

// ApplyRotation implements store.Store.
func (s *Store) ApplyRotation(rotation store.Rotation) error {
	var epochValue, epochKey, timestamp [8]byte
	binary.BigEndian.PutUint64(epochValue[:], rotation.Epoch)
	binary.BigEndian.PutUint64(epochKey[:], rotation.Epoch)
	binary.BigEndian.PutUint64(timestamp[:], rotation.Timestamp)

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(keyEpoch, epochValue[:], nil); err != nil {
		return err
	}
	if err := batch.Set(keyLastRotation, timestamp[:], nil); err != nil {
		return err
	}
	if err := batch.Set(prefixedKey(prefixEpochByHash, rotation.SignersHash[:]), epochValue[:], nil); err != nil {
		return err
	}
	if err := batch.Set(prefixedKey(prefixHashByEpoch, epochKey[:]), rotation.SignersHash[:], nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Message implements store.Store.
func (s *Store) Message(commandID ids.ID) (store.MessageRecord, bool, error) {
	value, closer, err := s.db.Get(prefixedKey(prefixMessage, commandID[:]))
	if errors.Is(err, pebble.ErrNotFound) {
		return store.MessageRecord{}, false, nil
	}
	if err != nil {
		return store.MessageRecord{}, false, err
	}
	defer closer.Close()
	if len(value) != 1+ids.IDLen {
		return store.MessageRecord{}, false, fmt.Errorf("corrupt message entry for %s", commandID)
	}

	record := store.MessageRecord{State: store.MessageState(value[0])}
	copy(record.MessageHash[:], value[1:])
	return record, true, nil
}

// PutMessage implements store.Store.
func (s *Store) PutMessage(commandID ids.ID, record store.MessageRecord) error {
	value := make([]byte, 1+ids.IDLen)
	value[0] = byte(record.State)
	copy(value[1:], record.MessageHash[:])
	return s.db.Set(prefixedKey(prefixMessage, commandID[:]), value, pebble.Sync)
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getUint64(key []byte) (uint64, error) {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer closer.Close()
	if len(value) != 8 {
		return 0, fmt.Errorf("corrupt entry for key %q", key)
	}
	return binary.BigEndian.Uint64(value), nil
}

func prefixedKey(prefix byte, suffix []byte) []byte {
	key := make([]byte, 1+len(suffix))
	key[0] = prefix
	copy(key[1:], suffix)
	return key
}
