// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"crypto/ed25519"
	"encoding/hex"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// Transfer credits the receiver's refundable balance. The deposit was
// debited from the signer when the transaction was converted into a receipt.
type Transfer struct{}

func (Transfer) Type() protocol.ActionType { return protocol.ActionTypeTransfer }

func (Transfer) Validate(action protocol.Action) error {
	_, ok := action.(*protocol.Transfer)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.Transfer), action)
	}
	return nil
}

func (x Transfer) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}
	body := action.(*protocol.Transfer)

	err = ensureReceiver(st)
	if err != nil {
		return err
	}

	if !st.Receiver.Credit(&body.Deposit.Int) {
		return errors.BalanceOverflow.WithFormat("crediting %v to %v would exceed the balance limit", protocol.FormatAmount(&body.Deposit.Int), st.Receipt.ReceiverID)
	}
	return nil
}

// ensureReceiver materializes the receiver for a transfer. An implicit
// receiver is created on the spot; a named receiver must already exist or
// have been created earlier in the receipt.
func ensureReceiver(st *StateManager) error {
	if st.Exists() {
		return nil
	}

	id := st.Receipt.ReceiverID
	if id.IsNamed() {
		return &protocol.AccountDoesNotExist{AccountID: id}
	}

	err := st.CreateReceiver()
	if err != nil {
		return err
	}

	// A key-derived ID doubles as the account's first access key
	if id.IsImplicit() {
		key, err := hex.DecodeString(string(id))
		if err != nil || len(key) != ed25519.PublicKeySize {
			return errors.FatalError.WithFormat("account ID %v is not a valid key", id)
		}
		st.Receiver.AddKey(&protocol.AccessKey{PublicKey: key})
		st.Receiver.StorageUsage += protocol.StorageBytesAccessKey
	}
	return nil
}
