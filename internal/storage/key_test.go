// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeKey(t *testing.T) {
	// Appending is equivalent to building in one call
	require.Equal(t, MakeKey("Account", "test0"), MakeKey("Account").Append("test0"))
	require.Equal(t, MakeKey("Account", "test0"), MakeKey(MakeKey("Account"), "test0"))

	// Distinct segments produce distinct keys
	require.NotEqual(t, MakeKey("Account", "test0"), MakeKey("Account", "test1"))
	require.NotEqual(t, MakeKey("Account"), MakeKey("Ledger"))
}
