// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package chain executes transactions against the account ledger.
//
// A transaction is converted into a receipt for its receiver. The receipt's
// actions are applied in order by action executors, and the receipt's effect
// on the ledger is all or nothing: if any action fails, every change the
// receipt made is rolled back and the deposits are returned to the signer.
package chain

import (
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// ActionExecutor executes a specific type of action.
type ActionExecutor interface {
	// Type is the action type the executor can execute.
	Type() protocol.ActionType

	// Validate validates the action for acceptance. Validate must not depend
	// on or modify state.
	Validate(action protocol.Action) error

	// Execute applies the action to the receiver.
	Execute(st *StateManager, action protocol.Action) error
}
