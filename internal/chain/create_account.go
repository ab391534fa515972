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

// CreateAccount materializes the receiver's ledger entry.
type CreateAccount struct{}

func (CreateAccount) Type() protocol.ActionType { return protocol.ActionTypeCreateAccount }

func (CreateAccount) Validate(action protocol.Action) error {
	_, ok := action.(*protocol.CreateAccount)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.CreateAccount), action)
	}
	return nil
}

func (x CreateAccount) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}

	// Implicit accounts are created by their first transfer, never
	// explicitly
	if !st.Receipt.ReceiverID.IsNamed() {
		return errors.NotAllowed.WithFormat("account %v can only be created implicitly", st.Receipt.ReceiverID)
	}

	return st.CreateReceiver()
}
