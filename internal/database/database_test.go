// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

func TestAccountState(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	account := protocol.NewAccount("test0")
	require.True(t, account.Credit(protocol.Mer(10)))

	require.NoError(t, db.Update(func(batch *database.Batch) error {
		return batch.Account("test0").PutState(account)
	}))

	require.NoError(t, db.View(func(batch *database.Batch) error {
		state, err := batch.Account("test0").GetState()
		require.NoError(t, err)
		require.Equal(t, account, state)

		_, err = batch.Account("test1").GetState()
		require.ErrorIs(t, err, errors.NotFound)
		return nil
	}))
}

func TestPutStateChecksID(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	batch := db.Begin(true)
	defer batch.Discard()

	err := batch.Account("test0").PutState(protocol.NewAccount("test1"))
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestNestedBatch(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	batch := db.Begin(true)
	defer batch.Discard()
	require.NoError(t, batch.Account("test0").PutState(protocol.NewAccount("test0")))

	t.Run("Discarded", func(t *testing.T) {
		sub := batch.Begin(true)
		state, err := sub.Account("test0").GetState()
		require.NoError(t, err)
		require.True(t, state.Credit(protocol.Mer(1)))
		require.NoError(t, sub.Account("test0").PutState(state))
		sub.Discard()

		// The parent must not see the discarded credit
		state, err = batch.Account("test0").GetState()
		require.NoError(t, err)
		require.Zero(t, state.Amount.Sign())
	})

	t.Run("Committed", func(t *testing.T) {
		sub := batch.Begin(true)
		state, err := sub.Account("test0").GetState()
		require.NoError(t, err)
		require.True(t, state.Credit(protocol.Mer(1)))
		require.NoError(t, sub.Account("test0").PutState(state))
		require.NoError(t, sub.Commit())

		state, err = batch.Account("test0").GetState()
		require.NoError(t, err)
		require.Equal(t, protocol.Mer(1), &state.Amount.Int)
	})
}

func TestCopyOnRead(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	batch := db.Begin(true)
	defer batch.Discard()
	require.NoError(t, batch.Account("test0").PutState(protocol.NewAccount("test0")))

	// Mutating a record loaded in a nested batch must not corrupt the parent
	sub := batch.Begin(true)
	state, err := sub.Account("test0").GetState()
	require.NoError(t, err)
	require.True(t, state.Credit(protocol.Mer(7)))
	sub.Discard()

	state, err = batch.Account("test0").GetState()
	require.NoError(t, err)
	require.Zero(t, state.Amount.Sign())
}

func TestDeleteAccount(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	require.NoError(t, db.Update(func(batch *database.Batch) error {
		return batch.Account("test0").PutState(protocol.NewAccount("test0"))
	}))

	require.NoError(t, db.Update(func(batch *database.Batch) error {
		record := batch.Account("test0")
		record.Delete()

		// The deletion is visible within the batch
		exists, err := record.Exists()
		require.NoError(t, err)
		require.False(t, exists)
		return nil
	}))

	// And after the batch commits
	require.NoError(t, db.View(func(batch *database.Batch) error {
		exists, err := batch.Account("test0").Exists()
		require.NoError(t, err)
		require.False(t, exists)
		return nil
	}))
}

func TestSystemLedger(t *testing.T) {
	db := database.OpenInMemory(nil)
	defer db.Close()

	require.NoError(t, db.Update(func(batch *database.Batch) error {
		_, err := batch.SystemLedger().GetState()
		require.ErrorIs(t, err, errors.NotFound)

		return batch.SystemLedger().PutState(&protocol.SystemLedger{
			Index:   1,
			Version: protocol.ProtocolLatest,
		})
	}))

	require.NoError(t, db.View(func(batch *database.Batch) error {
		ledger, err := batch.SystemLedger().GetState()
		require.NoError(t, err)
		require.Equal(t, uint64(1), ledger.Index)
		require.Equal(t, protocol.ProtocolLatest, ledger.Version)
		return nil
	}))
}
