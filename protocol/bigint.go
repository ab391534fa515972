// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// BigInt is a non-negative arbitrary precision integer that marshals to JSON
// as a decimal string. Balances and deposits use BigInt because they can
// exceed 64 bits and JSON numbers lose precision past 2^53.
type BigInt struct {
	big.Int
}

// NewBigInt returns a BigInt with the given value.
func NewBigInt(v uint64) *BigInt {
	b := new(BigInt)
	b.SetUint64(v)
	return b
}

// BigIntFromInt returns a BigInt with the value of v. BigIntFromInt panics if
// v is negative.
func BigIntFromInt(v *big.Int) *BigInt {
	if v.Sign() < 0 {
		panic("value is negative")
	}
	b := new(BigInt)
	b.Int.Set(v)
	return b
}

// Copy returns a distinct copy of the value.
func (b *BigInt) Copy() *BigInt {
	c := new(BigInt)
	c.Int.Set(&b.Int)
	return c
}

// Equal checks if the two values are equal.
func (b *BigInt) Equal(c *BigInt) bool {
	return b.Cmp(&c.Int) == 0
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Accept a bare number for compatibility
		s = string(data)
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("invalid amount: %q", s)
	}
	if b.Sign() < 0 {
		return fmt.Errorf("invalid amount: %q is negative", s)
	}
	return nil
}
