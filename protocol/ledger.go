// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import "encoding/json"

// SystemLedger tracks the chain's execution state.
type SystemLedger struct {
	// Index is the index of the last executed transaction.
	Index uint64 `json:"index"`

	// Version is the active protocol version. Admission and execution
	// consult the version's feature gates.
	Version ProtocolVersion `json:"version"`

	// Burned is the cumulative amount removed from circulation by fees,
	// deleted non-refundable balances, and unclaimed deletion payouts.
	Burned BigInt `json:"burned"`
}

// Copy returns a copy of the ledger.
func (l *SystemLedger) Copy() *SystemLedger {
	m := new(SystemLedger)
	m.Index = l.Index
	m.Version = l.Version
	m.Burned.Int.Set(&l.Burned.Int)
	return m
}

// CopyAsInterface returns a copy of the ledger as an interface value.
func (l *SystemLedger) CopyAsInterface() interface{} { return l.Copy() }

// MarshalBinary implements [encoding.BinaryMarshaler].
func (l *SystemLedger) MarshalBinary() ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (l *SystemLedger) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, l)
}

// UnmarshalSystemLedger parses a system ledger record.
func UnmarshalSystemLedger(data []byte) (*SystemLedger, error) {
	l := new(SystemLedger)
	err := l.UnmarshalBinary(data)
	if err != nil {
		return nil, err
	}
	return l, nil
}
