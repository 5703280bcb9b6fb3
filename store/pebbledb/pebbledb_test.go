// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebbledb

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/gateway/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestEmptyStore(t *testing.T) {
	s := openTestStore(t)

	epoch, err := s.Epoch()
	require.NoError(t, err)
	require.Zero(t, epoch)

	lastRotation, err := s.LastRotationTimestamp()
	require.NoError(t, err)
	require.Zero(t, lastRotation)

	_, ok, err := s.EpochForSignersHash(ids.ID{0x01})
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.SignersHashForEpoch(1)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.Message(ids.ID{0x02})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestApplyRotation(t *testing.T) {
	s := openTestStore(t)

	hash := ids.ID{0xaa}
	require.NoError(t, s.ApplyRotation(store.Rotation{
		Epoch:       1,
		SignersHash: hash,
		Timestamp:   5000,
	}))

	epoch, err := s.Epoch()
	require.NoError(t, err)
	require.Equal(t, uint64(1), epoch)

	lastRotation, err := s.LastRotationTimestamp()
	require.NoError(t, err)
	require.Equal(t, uint64(5000), lastRotation)

	gotEpoch, ok, err := s.EpochForSignersHash(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), gotEpoch)

	gotHash, ok, err := s.SignersHashForEpoch(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, hash, gotHash)
}

func TestMessages(t *testing.T) {
	s := openTestStore(t)

	commandID := ids.ID{0x01}
	record := store.MessageRecord{
		State:       store.Approved,
		MessageHash: ids.ID{0x02},
	}
	require.NoError(t, s.PutMessage(commandID, record))

	got, ok, err := s.Message(commandID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record, got)

	require.NoError(t, s.PutMessage(commandID, store.MessageRecord{State: store.Executed}))
	got, ok, err = s.Message(commandID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, store.Executed, got.State)
	require.Equal(t, ids.Empty, got.MessageHash)
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)

	hash := ids.ID{0xaa}
	require.NoError(t, s.ApplyRotation(store.Rotation{
		Epoch:       3,
		SignersHash: hash,
		Timestamp:   9000,
	}))
	commandID := ids.ID{0x01}
	require.NoError(t, s.PutMessage(commandID, store.MessageRecord{
		State:       store.Approved,
		MessageHash: ids.ID{0x02},
	}))
	require.NoError(t, s.Close())

	// State survives a restart.
	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	epoch, err := s.Epoch()
	require.NoError(t, err)
	require.Equal(t, uint64(3), epoch)

	gotHash, ok, err := s.SignersHashForEpoch(3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, hash, gotHash)

	got, ok, err := s.Message(commandID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, store.Approved, got.State)
}
