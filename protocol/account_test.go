// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/meridiannetwork/meridian/protocol"
)

func TestAccountDebit(t *testing.T) {
	account := NewAccount("test0")
	require.True(t, account.Credit(Mer(5)))
	require.True(t, account.CreditNonrefundable(Mer(100)))

	// Only the refundable balance is spendable, no matter how large the
	// non-refundable balance is
	require.True(t, account.CanDebit(Mer(5)))
	require.False(t, account.CanDebit(Mer(6)))
	require.False(t, account.Debit(Mer(6)))
	require.Equal(t, Mer(5), &account.Amount.Int)

	require.True(t, account.Debit(Mer(2)))
	require.Equal(t, Mer(3), &account.Amount.Int)
	require.Equal(t, Mer(100), &account.Nonrefundable.Int)

	// A nil or negative amount is never debitable
	require.False(t, account.Debit(nil))
	require.False(t, account.Debit(big.NewInt(-1)))
}

func TestAccountCreditLimit(t *testing.T) {
	account := NewAccount("test0")
	require.True(t, account.Credit(MaxBalance()))
	require.False(t, account.Credit(big.NewInt(1)))
	require.Equal(t, MaxBalance(), &account.Amount.Int)

	// The limit applies to each balance separately
	require.True(t, account.CreditNonrefundable(MaxBalance()))
	require.False(t, account.CreditNonrefundable(big.NewInt(1)))
}

func TestAccountTotal(t *testing.T) {
	account := NewAccount("test0")
	require.True(t, account.Credit(Mer(3)))
	require.True(t, account.CreditNonrefundable(Mer(4)))
	require.Equal(t, Mer(7), account.Total())
}

func TestAccountKeys(t *testing.T) {
	key := make(PublicKey, 32)
	key[0] = 1

	account := NewAccount("test0")
	require.Nil(t, account.GetKey(key))
	require.True(t, account.AddKey(&AccessKey{PublicKey: key}))
	require.NotNil(t, account.GetKey(key))

	// Adding the same key twice fails
	require.False(t, account.AddKey(&AccessKey{PublicKey: key}))
	require.Len(t, account.Keys, 1)
}

func TestAccountCopy(t *testing.T) {
	account := NewAccount("test0")
	require.True(t, account.Credit(Mer(1)))
	require.True(t, account.AddKey(&AccessKey{PublicKey: make(PublicKey, 32)}))

	copied := account.Copy()
	require.True(t, copied.Credit(Mer(1)))
	copied.Keys[0].Nonce = 12

	require.Equal(t, Mer(1), &account.Amount.Int)
	require.Equal(t, uint64(0), account.Keys[0].Nonce)
}

func TestAccountRoundTrip(t *testing.T) {
	account := NewAccount("subaccount.test0")
	require.True(t, account.Credit(new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)))
	require.True(t, account.CreditNonrefundable(OneMer()))
	account.CodeHash = []byte{1, 2, 3}
	account.StorageUsage = 182

	data, err := account.MarshalBinary()
	require.NoError(t, err)

	loaded, err := UnmarshalAccount(data)
	require.NoError(t, err)
	require.Equal(t, account, loaded)
}
