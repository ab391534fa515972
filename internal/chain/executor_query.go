// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// QueryAccount returns an account's current state.
func (x *Executor) QueryAccount(id protocol.AccountID) (*protocol.Account, error) {
	err := protocol.IsValidAccountID(string(id))
	if err != nil {
		return nil, err
	}

	batch := x.db.Begin(false)
	defer batch.Discard()

	account, err := batch.Account(id).GetState()
	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, errors.NotFound):
		return nil, &protocol.AccountDoesNotExist{AccountID: id}
	default:
		return nil, errors.UnknownError.WithFormat("load %v: %w", id, err)
	}
}

// QueryLedger returns the chain's execution state.
func (x *Executor) QueryLedger() (*protocol.SystemLedger, error) {
	batch := x.db.Begin(false)
	defer batch.Discard()

	ledger, err := batch.SystemLedger().GetState()
	switch {
	case err == nil:
		return ledger, nil
	case errors.Is(err, errors.NotFound):
		return nil, errors.NotReady.With("not initialized")
	default:
		return nil, errors.UnknownError.WithFormat("load ledger: %w", err)
	}
}
