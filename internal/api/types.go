// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// AccountQuery requests the state of an account.
type AccountQuery struct {
	AccountID protocol.AccountID `json:"accountId" validate:"required,account-id"`
}

// SubmitRequest submits a transaction for execution.
type SubmitRequest struct {
	Transaction *protocol.Transaction `json:"transaction" validate:"required"`
}

// QueryResponse wraps a queried record with its type.
type QueryResponse struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type StatusResponse struct {
	Ok bool `json:"ok"`

	// Height is the index of the last executed transaction.
	Height  uint64                   `json:"height"`
	Version protocol.ProtocolVersion `json:"protocolVersion"`
	Burned  *protocol.BigInt         `json:"burned"`
	Storage config.StorageType       `json:"storage,omitempty"`
}

type VersionResponse struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	VersionIsKnown bool   `json:"versionIsKnown"`
}

// ProtocolVersionResponse reports the active protocol version and its
// feature gates.
type ProtocolVersionResponse struct {
	Version              protocol.ProtocolVersion `json:"version"`
	NonrefundableStorage bool                     `json:"nonrefundableStorage"`
}
