// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"math/big"

	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// StateManager carries the state of one receipt's execution. Action executors
// mutate the receiver through the state manager and the changes are written
// or discarded as a unit.
type StateManager struct {
	batch  *database.Batch
	logger logging.OptionalLogger

	// Receipt is the receipt being executed.
	Receipt *protocol.Receipt

	// Receiver is the receiver's current state, or nil if the receiver does
	// not exist.
	Receiver *protocol.Account

	created bool
	deleted bool
	burned  *big.Int
}

// NewStateManager begins a nested batch and loads the receiver's record. If
// the receiver does not exist, Receiver is nil. The caller must always call
// Discard - the nested batch is only written if Commit is called first.
func NewStateManager(batch *database.Batch, receipt *protocol.Receipt, logger logging.Logger) (*StateManager, error) {
	m := new(StateManager)
	m.batch = batch.Begin(true)
	m.Receipt = receipt
	m.burned = new(big.Int)
	if logger != nil {
		m.logger.L = logger
	}

	account, err := m.batch.Account(receipt.ReceiverID).GetState()
	switch {
	case err == nil:
		m.Receiver = account
	case errors.Is(err, errors.NotFound):
		// The receiver does not exist (yet)
	default:
		m.batch.Discard()
		return nil, errors.UnknownError.WithFormat("load receiver: %w", err)
	}
	return m, nil
}

// Exists checks if the receiver currently exists.
func (m *StateManager) Exists() bool { return m.Receiver != nil }

// Created checks if the receiver was created by this receipt.
func (m *StateManager) Created() bool { return m.created }

// ActorIsReceiver checks if the predecessor is the receiver itself or the
// receiver was created earlier in this receipt. Actions that modify the
// receiver's credentials, code, or existence are only allowed in those cases.
func (m *StateManager) ActorIsReceiver() bool {
	return m.Receipt.PredecessorID == m.Receipt.ReceiverID || m.created
}

// CreateReceiver materializes the receiver with zero balances.
func (m *StateManager) CreateReceiver() error {
	if m.Receiver != nil {
		return &protocol.AccountAlreadyExists{AccountID: m.Receipt.ReceiverID}
	}

	account := protocol.NewAccount(m.Receipt.ReceiverID)
	account.StorageUsage = protocol.StorageBytesAccount
	m.Receiver = account
	m.created = true
	return nil
}

// DeleteReceiver removes the receiver's ledger entry.
func (m *StateManager) DeleteReceiver() {
	m.Receiver = nil
	m.deleted = true
}

// Burn removes amount from circulation. The total is recorded on the system
// ledger when the receipt is committed.
func (m *StateManager) Burn(amount *big.Int) {
	m.burned.Add(m.burned, amount)
}

// Account returns an account record within the receipt's batch. Most actions
// only touch the receiver, but deletion pays out to a beneficiary.
func (m *StateManager) Account(id protocol.AccountID) *database.Account {
	return m.batch.Account(id)
}

// Commit writes the receiver's state and commits the nested batch.
func (m *StateManager) Commit() error {
	record := m.batch.Account(m.Receipt.ReceiverID)
	switch {
	case m.deleted:
		record.Delete()
	case m.Receiver != nil:
		err := record.PutState(m.Receiver)
		if err != nil {
			return errors.UnknownError.WithFormat("store receiver: %w", err)
		}
	}

	if m.burned.Sign() > 0 {
		ledger := m.batch.SystemLedger()
		state, err := ledger.GetState()
		if err != nil {
			return errors.UnknownError.WithFormat("load ledger: %w", err)
		}
		state.Burned.Add(&state.Burned.Int, m.burned)
		err = ledger.PutState(state)
		if err != nil {
			return errors.UnknownError.WithFormat("store ledger: %w", err)
		}
	}

	return m.batch.Commit()
}

// Discard discards the nested batch. Discard does nothing if Commit was
// called first.
func (m *StateManager) Discard() {
	m.batch.Discard()
}
