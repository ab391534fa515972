// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// ProtocolVersion is a protocol version number.
type ProtocolVersion uint32

const (
	// ProtocolGenesis is the version the network launched with.
	ProtocolGenesis ProtocolVersion = 61

	// ProtocolNonrefundableStorage is the version that activates
	// non-refundable storage transfers.
	ProtocolNonrefundableStorage ProtocolVersion = 63

	// ProtocolLatest is the latest version of the protocol.
	// ProtocolLatest is intended primarily for testing.
	ProtocolLatest = ProtocolNonrefundableStorage
)

// NonrefundableStorageEnabled checks if the version is at least the
// non-refundable storage activation version. Activation is permanent: once a
// version enables the feature, every later version does too.
func (v ProtocolVersion) NonrefundableStorageEnabled() bool {
	return v >= ProtocolNonrefundableStorage
}

// Known checks if the version is one this build understands.
func (v ProtocolVersion) Known() bool {
	return v >= ProtocolGenesis && v <= ProtocolLatest
}
