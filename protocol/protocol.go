// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"math/big"
	"strings"
)

// Well known strings
const (
	// MER is the name of the MER token.
	MER = "MER"

	// Unknown is used to indicate that the principal of a transaction is unknown
	Unknown = "unknown"

	// Ledger is the path to the node's internal ledger.
	Ledger = "ledger"

	// GenesisBlock is the height of the first block.
	GenesisBlock = 1
)

// MerSupplyLimit set at 1,000,000,000 MER (external units)
const MerSupplyLimit = 1_000_000_000

// StorageBytesAccount is the state charged for a bare account record.
const StorageBytesAccount = 100

// StorageBytesAccessKey is the state charged per access key.
const StorageBytesAccessKey = 82

// MerPrecisionPower is the number of decimal places of one MER.
const MerPrecisionPower = 24

// BalanceBits is the width of a balance field. Credits past 2^128-1 fail
// rather than wrap.
const BalanceBits = 128

var oneMer = new(big.Int).Exp(big.NewInt(10), big.NewInt(MerPrecisionPower), nil)

var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), BalanceBits), big.NewInt(1))

// OneMer returns the value of 1 MER in base units.
func OneMer() *big.Int {
	return Mer(1)
}

// Mer returns the value of n MER in base units.
func Mer(n uint64) *big.Int {
	v := new(big.Int).SetUint64(n)
	return v.Mul(v, oneMer)
}

// MaxBalance returns the largest value a single balance field can hold.
func MaxBalance() *big.Int {
	return new(big.Int).Set(maxBalance)
}

// FormatAmount formats a base-unit amount as a decimal number of MER.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0 " + MER
	}

	s := amount.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= MerPrecisionPower {
		s = strings.Repeat("0", MerPrecisionPower-len(s)+1) + s
	}

	i := len(s) - MerPrecisionPower
	whole, frac := s[:i], s[i:]
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(whole)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteByte(' ')
	b.WriteString(MER)
	return b.String()
}
