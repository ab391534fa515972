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

// CheckProtocolFeatures verifies that every action is supported by the
// active protocol version.
func CheckProtocolFeatures(actions []protocol.Action, version protocol.ProtocolVersion) error {
	if version.NonrefundableStorageEnabled() {
		return nil
	}

	for _, action := range actions {
		if action.Type() == protocol.ActionTypeNonrefundableStorageTransfer {
			return &protocol.UnsupportedProtocolFeature{
				Feature: protocol.FeatureNonrefundableBalance,
				Version: protocol.ProtocolNonrefundableStorage,
			}
		}
	}
	return nil
}

// ValidateActionList performs the structural checks on an action list. An
// account creation must come first, a deletion must come last, and a list
// carries at most one transfer of each kind. The same rules apply at
// admission and at execution.
func ValidateActionList(actions []protocol.Action) error {
	if len(actions) == 0 {
		return errors.BadRequest.With("no actions")
	}

	for i, action := range actions {
		switch action.Type() {
		case protocol.ActionTypeCreateAccount:
			if i != 0 {
				return errors.BadRequest.With("create account must be the first action")
			}
		case protocol.ActionTypeDeleteAccount:
			if i != len(actions)-1 {
				return errors.BadRequest.With("delete account must be the final action")
			}
		}
	}

	for _, typ := range []protocol.ActionType{protocol.ActionTypeTransfer, protocol.ActionTypeNonrefundableStorageTransfer} {
		if protocol.CountActions(actions, typ) > 1 {
			return errors.BadRequest.WithFormat("multiple %v actions", typ)
		}
	}
	return nil
}

// ValidateReceipt checks a receipt's action list against the receiver's
// prior existence. ValidateReceipt is a read-only predicate and must be
// called before any balance mutation.
//
// A non-refundable balance may only be granted while the receiver is being
// created. And an implicit account can only be granted one by a receipt
// whose only value-moving action is the non-refundable transfer.
func ValidateReceipt(receipt *protocol.Receipt, receiverExists bool, version protocol.ProtocolVersion) error {
	// Admission rejects unsupported actions, but execution must not trust
	// admission blindly
	err := CheckProtocolFeatures(receipt.Actions, version)
	if err != nil {
		return err
	}

	err = ValidateActionList(receipt.Actions)
	if err != nil {
		return err
	}

	if protocol.CountActions(receipt.Actions, protocol.ActionTypeNonrefundableStorageTransfer) == 0 {
		return nil
	}

	if receiverExists {
		return &protocol.NonRefundableBalanceToExistingAccount{AccountID: receipt.ReceiverID}
	}

	if !receipt.ReceiverID.IsNamed() && protocol.CountActions(receipt.Actions, protocol.ActionTypeTransfer) > 0 {
		return &protocol.AccountDoesNotExist{AccountID: receipt.ReceiverID}
	}

	return nil
}
