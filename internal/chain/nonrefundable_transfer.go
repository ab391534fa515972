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

// NonrefundableStorageTransfer credits the receiver's non-refundable
// balance. A non-refundable balance can only be granted while the receiver
// is being created.
type NonrefundableStorageTransfer struct{}

func (NonrefundableStorageTransfer) Type() protocol.ActionType {
	return protocol.ActionTypeNonrefundableStorageTransfer
}

func (NonrefundableStorageTransfer) Validate(action protocol.Action) error {
	_, ok := action.(*protocol.NonrefundableStorageTransfer)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.NonrefundableStorageTransfer), action)
	}
	return nil
}

func (x NonrefundableStorageTransfer) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}
	body := action.(*protocol.NonrefundableStorageTransfer)

	// The receipt validator rejects this case before execution starts, but
	// do not rely on it
	if st.Exists() && !st.Created() {
		return &protocol.NonRefundableBalanceToExistingAccount{AccountID: st.Receipt.ReceiverID}
	}

	err = ensureReceiver(st)
	if err != nil {
		return err
	}

	if !st.Receiver.CreditNonrefundable(&body.Deposit.Int) {
		return errors.BalanceOverflow.WithFormat("crediting %v to %v would exceed the balance limit", protocol.FormatAmount(&body.Deposit.Int), st.Receipt.ReceiverID)
	}
	return nil
}
