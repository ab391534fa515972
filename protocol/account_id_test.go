// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	. "gitlab.com/meridiannetwork/meridian/protocol"
)

func TestIsValidAccountID(t *testing.T) {
	good := []string{
		"test0",
		"t0",
		"subaccount.test0",
		"ok_with-separators.test0",
		"10-4.8-2",
		strings.Repeat("a", 64),
		"0x1b48b83a308ea4beb845db088180dc3389f8aa11",
	}
	for _, id := range good {
		t.Run(id, func(t *testing.T) {
			require.NoError(t, IsValidAccountID(id))
		})
	}

	bad := []string{
		"",
		"a",
		strings.Repeat("a", 65),
		"Test0",
		"has spaces",
		"has@symbol",
		".leading",
		"trailing.",
		"adjacent..separators",
		"adjacent._separators",
	}
	for _, id := range bad {
		t.Run(id, func(t *testing.T) {
			err := IsValidAccountID(id)
			require.Error(t, err)
			require.ErrorIs(t, err, errors.InvalidAccountID)
		})
	}
}

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("subaccount.test0")
	require.NoError(t, err)
	require.Equal(t, AccountID("subaccount.test0"), id)

	_, err = ParseAccountID("Not Valid")
	require.ErrorIs(t, err, errors.InvalidAccountID)
}

func TestImplicitAccountID(t *testing.T) {
	key := make(PublicKey, 32)
	for i := range key {
		key[i] = byte(i)
	}

	id := ImplicitAccountID(key)
	require.Len(t, string(id), 64)
	require.True(t, id.IsImplicit())
	require.False(t, id.IsNamed())
	require.NoError(t, IsValidAccountID(string(id)))
}

func TestEthImplicitAccountID(t *testing.T) {
	key := make(PublicKey, 32)
	for i := range key {
		key[i] = byte(i)
	}

	id := EthImplicitAccountID(key)
	require.Len(t, string(id), 42)
	require.True(t, id.IsEthImplicit())
	require.False(t, id.IsNamed())
	require.NoError(t, IsValidAccountID(string(id)))
}

func TestAccountIDClass(t *testing.T) {
	cases := map[string]struct {
		ID       AccountID
		Implicit bool
		Eth      bool
	}{
		"Named":      {"subaccount.test0", false, false},
		"Implicit":   {AccountID(strings.Repeat("ab12", 16)), true, false},
		"NotHex":     {AccountID(strings.Repeat("zz12", 16)), false, false},
		"Eth":        {"0x1b48b83a308ea4beb845db088180dc3389f8aa11", false, true},
		"EthTooLong": {"0x1b48b83a308ea4beb845db088180dc3389f8aa1100", false, false},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, c.Implicit, c.ID.IsImplicit())
			require.Equal(t, c.Eth, c.ID.IsEthImplicit())
			require.Equal(t, !c.Implicit && !c.Eth, c.ID.IsNamed())
		})
	}
}
