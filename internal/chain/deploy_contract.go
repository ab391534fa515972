// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// DeployContract records the receiver's contract code. Contract execution
// happens outside the ledger; the ledger tracks the code's identity and its
// storage footprint.
type DeployContract struct{}

func (DeployContract) Type() protocol.ActionType { return protocol.ActionTypeDeployContract }

func (DeployContract) Validate(action protocol.Action) error {
	body, ok := action.(*protocol.DeployContract)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.DeployContract), action)
	}

	if len(body.Code) == 0 {
		return errors.BadRequest.With("contract code is empty")
	}
	if len(body.Code) > protocol.ContractCodeSizeMax {
		return errors.BadRequest.WithFormat("contract code exceeds %v byte limit", protocol.ContractCodeSizeMax)
	}
	return nil
}

func (x DeployContract) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}
	body := action.(*protocol.DeployContract)

	if !st.Exists() {
		return &protocol.AccountDoesNotExist{AccountID: st.Receipt.ReceiverID}
	}
	if !st.ActorIsReceiver() {
		return errors.Unauthorized.WithFormat("%v cannot deploy a contract to %v", st.Receipt.PredecessorID, st.Receipt.ReceiverID)
	}

	// Replace the previous contract's storage footprint with the new one
	st.Receiver.CodeHash = body.CodeHash()
	st.Receiver.StorageUsage -= st.Receiver.CodeSize
	st.Receiver.StorageUsage += uint64(len(body.Code))
	st.Receiver.CodeSize = uint64(len(body.Code))

	st.logger.Debug("Deployed contract", "account", st.Receipt.ReceiverID, "hash", logging.AsHex(st.Receiver.CodeHash), "size", st.Receiver.CodeSize)
	return nil
}
