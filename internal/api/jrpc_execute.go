// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"
)

// Submit executes a transaction and returns its status. A failed
// transaction is reported through the status, not as an error.
func (m *JrpcMethods) Submit(_ context.Context, params json.RawMessage) interface{} {
	req := new(SubmitRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	status, err := m.Executor.Submit(req.Transaction)
	if err != nil {
		return internalError(err)
	}

	m.logger.Debug("Submitted", "txid", status.TxID, "code", status.Code)
	return status
}
