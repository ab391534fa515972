// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/meridiannetwork/meridian/protocol"
)

func TestFee(t *testing.T) {
	t.Run("Unknown", func(t *testing.T) {
		_, err := BaseActionFee(ActionTypeUnknown)
		require.Error(t, err)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := BaseActionFee(ActionType(math.MaxUint64))
		require.Error(t, err)
	})

	t.Run("Transfer", func(t *testing.T) {
		fee, err := ComputeActionFee(&Transfer{Deposit: *NewBigInt(1)})
		require.NoError(t, err)
		require.Equal(t, FeeTransfer, fee)
	})

	t.Run("Lots of code", func(t *testing.T) {
		fee, err := ComputeActionFee(&DeployContract{Code: make([]byte, 1024)})
		require.NoError(t, err)
		require.Equal(t, FeeDeployContractBase+FeeDeployContractChunk*4, fee)
	})

	t.Run("Oversized code", func(t *testing.T) {
		_, err := ComputeActionFee(&DeployContract{Code: make([]byte, ContractCodeSizeMax+1)})
		require.Error(t, err)
	})
}

func TestTransactionFee(t *testing.T) {
	txn := &Transaction{
		SignerID:   "test0",
		ReceiverID: "subaccount.test0",
		Actions: []Action{
			&CreateAccount{},
			&Transfer{Deposit: *NewBigInt(1)},
			&DeleteAccount{BeneficiaryID: "test1"},
		},
	}

	fee, err := ComputeTransactionFee(txn)
	require.NoError(t, err)
	require.Equal(t, FeeCreateAccount+FeeTransfer+FeeDeleteAccount, fee)
}
