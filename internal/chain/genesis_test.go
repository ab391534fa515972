// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/meridiannetwork/meridian/internal/chain"
	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	mertesting "gitlab.com/meridiannetwork/meridian/internal/testing"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

func newExec(t *testing.T) *Executor {
	t.Helper()

	logger := logging.NewTestLogger(t)
	db := database.OpenInMemory(logger)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	exec, err := NewExecutor(db, logger)
	require.NoError(t, err)
	return exec
}

func TestInitGenesis(t *testing.T) {
	exec := newExec(t)

	// Before genesis the executor reports not ready
	_, err := exec.QueryLedger()
	require.ErrorIs(t, err, errors.NotReady)

	err = exec.InitGenesis(&GenesisInit{
		Version: protocol.ProtocolLatest,
		Accounts: []*protocol.Account{
			mertesting.AccountWithBalance(senderID, senderKey, genesisBalance()),
			mertesting.AccountWithBalance(receiverID, receiverKey, genesisBalance()),
		},
	})
	require.NoError(t, err)

	// The ledger starts at height zero with nothing burned
	ledger, err := exec.QueryLedger()
	require.NoError(t, err)
	require.Equal(t, uint64(0), ledger.Index)
	require.Equal(t, protocol.ProtocolLatest, ledger.Version)
	require.Zero(t, ledger.Burned.Sign())

	// Accounts without explicit storage usage get the default
	account := requireBalance(t, exec, senderID, genesisBalance(), new(big.Int))
	require.Equal(t, uint64(protocol.StorageBytesAccount+protocol.StorageBytesAccessKey), account.StorageUsage)

	// Running genesis again changes nothing
	err = exec.InitGenesis(&GenesisInit{Version: protocol.ProtocolGenesis})
	require.NoError(t, err)
	ledger, err = exec.QueryLedger()
	require.NoError(t, err)
	require.Equal(t, protocol.ProtocolLatest, ledger.Version)
	requireBalance(t, exec, senderID, genesisBalance(), new(big.Int))
}

func TestInitGenesisRejects(t *testing.T) {
	overCap := new(big.Int).Add(protocol.Mer(protocol.MerSupplyLimit), big.NewInt(1))

	cases := []struct {
		Name string
		Init *GenesisInit
		Code errors.Status
	}{
		{"UnknownVersion", &GenesisInit{Version: 1}, errors.BadRequest},
		{"InvalidAccountID", &GenesisInit{
			Version: protocol.ProtocolLatest,
			Accounts: []*protocol.Account{
				mertesting.AccountWithBalance("Bad ID", senderKey, genesisBalance()),
			},
		}, errors.InvalidAccountID},
		{"DuplicateAccount", &GenesisInit{
			Version: protocol.ProtocolLatest,
			Accounts: []*protocol.Account{
				mertesting.AccountWithBalance(senderID, senderKey, genesisBalance()),
				mertesting.AccountWithBalance(senderID, receiverKey, genesisBalance()),
			},
		}, errors.Conflict},
		{"SupplyOverCap", &GenesisInit{
			Version: protocol.ProtocolLatest,
			Accounts: []*protocol.Account{
				mertesting.AccountWithBalance(senderID, senderKey, overCap),
			},
		}, errors.BadRequest},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			exec := newExec(t)
			require.ErrorIs(t, exec.InitGenesis(c.Init), c.Code)

			// A failed genesis leaves the database untouched
			_, err := exec.QueryLedger()
			require.ErrorIs(t, err, errors.NotReady)
		})
	}
}
