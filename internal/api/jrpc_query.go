// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"

	meridian "gitlab.com/meridiannetwork/meridian"
)

func (m *JrpcMethods) Status(_ context.Context, _ json.RawMessage) interface{} {
	ledger, err := m.Executor.QueryLedger()
	if err != nil {
		return protocolError(err)
	}

	res := new(StatusResponse)
	res.Ok = true
	res.Height = ledger.Index
	res.Version = ledger.Version
	res.Burned = ledger.Burned.Copy()
	if m.Config != nil {
		res.Storage = m.Config.Storage.Type
	}
	return res
}

func (m *JrpcMethods) Version(_ context.Context, _ json.RawMessage) interface{} {
	res := new(VersionResponse)
	res.Version = meridian.Version
	res.Commit = meridian.Commit
	res.VersionIsKnown = meridian.IsVersionKnown()
	return res
}

func (m *JrpcMethods) ProtocolVersion(_ context.Context, _ json.RawMessage) interface{} {
	ledger, err := m.Executor.QueryLedger()
	if err != nil {
		return protocolError(err)
	}

	res := new(ProtocolVersionResponse)
	res.Version = ledger.Version
	res.NonrefundableStorage = ledger.Version.NonrefundableStorageEnabled()
	return res
}

// QueryAccount returns the state of an account.
func (m *JrpcMethods) QueryAccount(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountQuery)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	account, err := m.Executor.QueryAccount(req.AccountID)
	if err != nil {
		return protocolError(err)
	}

	return &QueryResponse{Type: "account", Data: account}
}
