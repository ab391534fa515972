// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// Account returns the record of the account with the given ID.
func (b *Batch) Account(id protocol.AccountID) *Account {
	return &Account{b, storage.MakeKey("Account", id), id}
}

// Account is the database record of an account.
type Account struct {
	batch *Batch
	key   storage.Key
	id    protocol.AccountID
}

// ID returns the account ID of the record.
func (a *Account) ID() protocol.AccountID { return a.id }

// GetState loads the account's state. GetState returns a not-found error if
// the account does not exist.
func (a *Account) GetState() (*protocol.Account, error) {
	v, err := a.batch.getValue(a.key, func(data []byte) (TypedValue, error) {
		return protocol.UnmarshalAccount(data)
	})
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	state, ok := v.(*protocol.Account)
	if !ok {
		return nil, errors.FatalError.WithFormat("record %v is a %T, want %T", a.id, v, state)
	}
	return state, nil
}

// PutState stores the account's state.
func (a *Account) PutState(state *protocol.Account) error {
	if state.ID == "" {
		return errors.BadRequest.With("missing account ID")
	}
	if state.ID != a.id {
		return errors.BadRequest.WithFormat("state ID %v does not match record %v", state.ID, a.id)
	}

	a.batch.putValue(a.key, state)
	return nil
}

// Exists checks if the account exists.
func (a *Account) Exists() (bool, error) {
	_, err := a.GetState()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, err
	}
}

// Delete removes the account's ledger entry. Subsequent existence queries
// report the account as missing.
func (a *Account) Delete() {
	a.batch.deleteValue(a.key)
}

// SystemLedger returns the record of the chain's execution state.
func (b *Batch) SystemLedger() *SystemLedger {
	return &SystemLedger{b, storage.MakeKey("Ledger")}
}

// SystemLedger is the database record of the chain's execution state.
type SystemLedger struct {
	batch *Batch
	key   storage.Key
}

// GetState loads the ledger. GetState returns a not-found error before
// genesis runs.
func (l *SystemLedger) GetState() (*protocol.SystemLedger, error) {
	v, err := l.batch.getValue(l.key, func(data []byte) (TypedValue, error) {
		return protocol.UnmarshalSystemLedger(data)
	})
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	state, ok := v.(*protocol.SystemLedger)
	if !ok {
		return nil, errors.FatalError.WithFormat("ledger record is a %T, want %T", v, state)
	}
	return state, nil
}

// PutState stores the ledger.
func (l *SystemLedger) PutState(state *protocol.SystemLedger) error {
	l.batch.putValue(l.key, state)
	return nil
}
