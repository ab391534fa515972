// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"math/big"
	"sync"

	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// Executor applies transactions to the ledger.
type Executor struct {
	logger    logging.OptionalLogger
	db        *database.Database
	executors map[protocol.ActionType]ActionExecutor

	// mu serializes execution. Transactions are applied strictly in the
	// order they are submitted.
	mu sync.Mutex
}

// NewExecutor creates an executor for the database.
func NewExecutor(db *database.Database, logger logging.Logger) (*Executor, error) {
	executors := []ActionExecutor{
		CreateAccount{},
		DeployContract{},
		Transfer{},
		NonrefundableStorageTransfer{},
		AddKey{},
		DeleteAccount{},
	}

	m := new(Executor)
	m.db = db
	m.executors = map[protocol.ActionType]ActionExecutor{}
	if logger != nil {
		m.logger.L = logger.With("module", "executor")
	}

	for _, x := range executors {
		if _, ok := m.executors[x.Type()]; ok {
			panic(errors.FatalError.WithFormat("duplicate executor for %v", x.Type()))
		}
		m.executors[x.Type()] = x
	}

	batch := db.Begin(false)
	defer batch.Discard()

	ledger, err := batch.SystemLedger().GetState()
	switch {
	case err == nil:
		m.logger.Debug("Loaded", "height", ledger.Index, "version", ledger.Version)
	case errors.Is(err, errors.NotFound):
		// The database has not been initialized
		m.logger.Debug("Loaded", "height", 0)
	default:
		return nil, errors.UnknownError.WithFormat("load ledger: %w", err)
	}

	return m, nil
}

// Submit checks and executes a transaction against the current state. The
// returned status records the transaction's outcome; the returned error is
// only set when the database itself fails.
func (x *Executor) Submit(txn *protocol.Transaction) (*protocol.TransactionStatus, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(true)
	defer batch.Discard()

	status, err := x.DeliverTransaction(batch, txn)
	if err != nil {
		return nil, err
	}

	err = batch.Commit()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("commit: %w", err)
	}
	return status, nil
}

// CheckTransaction verifies that a transaction can be accepted. It does not
// modify anything.
func (x *Executor) CheckTransaction(batch *database.Batch, txn *protocol.Transaction) error {
	ledger, err := batch.SystemLedger().GetState()
	if err != nil {
		return errors.NotReady.WithFormat("load ledger: %w", err)
	}
	return x.checkTransaction(batch, txn, ledger.Version)
}

func (x *Executor) checkTransaction(batch *database.Batch, txn *protocol.Transaction, version protocol.ProtocolVersion) error {
	err := protocol.IsValidAccountID(string(txn.SignerID))
	if err != nil {
		return err
	}
	err = protocol.IsValidAccountID(string(txn.ReceiverID))
	if err != nil {
		return err
	}

	// Reject unsupported actions before anything is charged
	err = CheckProtocolFeatures(txn.Actions, version)
	if err != nil {
		return err
	}

	err = ValidateActionList(txn.Actions)
	if err != nil {
		return err
	}

	for _, action := range txn.Actions {
		exec, ok := x.executors[action.Type()]
		if !ok {
			return errors.BadRequest.WithFormat("unsupported action type: %v", action.Type())
		}
		err = exec.Validate(action)
		if err != nil {
			return err
		}
	}

	// Load the signer
	signer, err := batch.Account(txn.SignerID).GetState()
	switch {
	case err == nil:
	case errors.Is(err, errors.NotFound):
		return &protocol.AccountDoesNotExist{AccountID: txn.SignerID}
	default:
		return errors.UnknownError.WithFormat("load signer: %w", err)
	}

	// Verify the key and nonce
	key := signer.GetKey(txn.PublicKey)
	if key == nil {
		return errors.Unauthorized.WithFormat("key is not registered to %v", txn.SignerID)
	}
	if txn.Nonce <= key.Nonce {
		return errors.BadNonce.WithFormat("nonce %d is not after %d", txn.Nonce, key.Nonce)
	}

	// Check the cost against the refundable balance. The non-refundable
	// balance never counts toward spendable funds.
	cost, err := transactionCost(txn)
	if err != nil {
		return errors.BadRequest.Wrap(err)
	}
	if !signer.CanDebit(cost) {
		return &protocol.NotEnoughBalance{
			SignerID: txn.SignerID,
			Balance:  signer.Amount.Copy(),
			Cost:     protocol.BigIntFromInt(cost),
		}
	}

	return nil
}

// transactionCost returns the transaction's deposits plus its fees.
func transactionCost(txn *protocol.Transaction) (*big.Int, error) {
	fee, err := protocol.ComputeTransactionFee(txn)
	if err != nil {
		return nil, err
	}

	cost := protocol.TotalDeposits(txn.Actions)
	cost.Add(cost, fee.AsBigInt())
	return cost, nil
}

// DeliverTransaction executes a transaction. The returned status records
// success or failure; DeliverTransaction only returns an error when the
// database itself fails.
//
// The signer is charged the deposits and fees up front. The transaction is
// then converted into a receipt and the receipt is applied to the receiver
// within a nested batch. If the receipt fails, its changes are discarded and
// the deposits are returned to the signer. Fees are burned either way.
func (x *Executor) DeliverTransaction(batch *database.Batch, txn *protocol.Transaction) (*protocol.TransactionStatus, error) {
	status := new(protocol.TransactionStatus)
	status.TxID = txn.ID()

	ledger, err := batch.SystemLedger().GetState()
	if err != nil {
		return nil, errors.NotReady.WithFormat("load ledger: %w", err)
	}

	// Admission checked the transaction, but the state may have changed
	// since then
	err = x.checkTransaction(batch, txn, ledger.Version)
	if err != nil {
		status.Set(err)
		return status, nil
	}

	// Charge the signer and advance the nonce
	cost, err := transactionCost(txn)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	record := batch.Account(txn.SignerID)
	signer, err := record.GetState()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load signer: %w", err)
	}
	if !signer.Debit(cost) {
		// checkTransaction verified the balance
		return nil, errors.FatalError.WithFormat("signer %v cannot pay %v", txn.SignerID, protocol.FormatAmount(cost))
	}
	signer.GetKey(txn.PublicKey).Nonce = txn.Nonce
	err = record.PutState(signer)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("store signer: %w", err)
	}

	// Apply the receipt
	deposits := protocol.TotalDeposits(txn.Actions)
	applyErr := x.ApplyReceipt(batch, txn.Receipt(), ledger.Version)
	if applyErr != nil {
		// The receipt's changes were discarded. Return the deposits to the
		// signer; the fees are charged regardless.
		status.Set(applyErr)

		signer, err = record.GetState()
		if err != nil {
			return nil, errors.UnknownError.WithFormat("load signer: %w", err)
		}
		if !signer.Credit(deposits) {
			return nil, errors.FatalError.WithFormat("cannot refund %v to %v", protocol.FormatAmount(deposits), txn.SignerID)
		}
		err = record.PutState(signer)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("store signer: %w", err)
		}
	} else {
		status.Code = errors.Delivered
	}

	// Record the transaction and burn the fees. Reload the ledger because
	// the receipt may have recorded burns of its own.
	ledger, err = batch.SystemLedger().GetState()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load ledger: %w", err)
	}
	fees := new(big.Int).Sub(cost, deposits)
	ledger.Index++
	ledger.Burned.Add(&ledger.Burned.Int, fees)
	err = batch.SystemLedger().PutState(ledger)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("store ledger: %w", err)
	}

	x.logger.Debug("Delivered", "txid", status.TxID, "signer", txn.SignerID, "receiver", txn.ReceiverID, "code", status.Code)
	return status, nil
}

// ApplyReceipt applies a receipt to the receiver within a nested batch. The
// receipt's effect on the ledger is all or nothing: if any action fails,
// every change the receipt made is rolled back.
func (x *Executor) ApplyReceipt(batch *database.Batch, receipt *protocol.Receipt, version protocol.ProtocolVersion) error {
	exists, err := batch.Account(receipt.ReceiverID).Exists()
	if err != nil {
		return errors.UnknownError.WithFormat("load receiver: %w", err)
	}

	err = ValidateReceipt(receipt, exists, version)
	if err != nil {
		return err
	}

	st, err := NewStateManager(batch, receipt, x.logger.L)
	if err != nil {
		return err
	}
	defer st.Discard()

	for _, action := range receipt.Actions {
		exec, ok := x.executors[action.Type()]
		if !ok {
			return errors.BadRequest.WithFormat("unsupported action type: %v", action.Type())
		}

		// Stop at the first failing action
		err = exec.Execute(st, action)
		if err != nil {
			return err
		}
	}

	err = st.Commit()
	if err != nil {
		return errors.UnknownError.WithFormat("commit receipt: %w", err)
	}
	return nil
}
