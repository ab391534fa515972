// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"math/big"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// DeleteAccount removes the receiver's ledger entry. The remaining
// refundable balance is paid to the beneficiary. The non-refundable balance
// is burned, never paid out.
type DeleteAccount struct{}

func (DeleteAccount) Type() protocol.ActionType { return protocol.ActionTypeDeleteAccount }

func (DeleteAccount) Validate(action protocol.Action) error {
	body, ok := action.(*protocol.DeleteAccount)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.DeleteAccount), action)
	}

	return protocol.IsValidAccountID(string(body.BeneficiaryID))
}

func (x DeleteAccount) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}
	body := action.(*protocol.DeleteAccount)

	if !st.Exists() {
		return &protocol.AccountDoesNotExist{AccountID: st.Receipt.ReceiverID}
	}
	if !st.ActorIsReceiver() {
		return errors.Unauthorized.WithFormat("%v cannot delete %v", st.Receipt.PredecessorID, st.Receipt.ReceiverID)
	}

	payout := new(big.Int).Set(&st.Receiver.Amount.Int)
	st.Burn(&st.Receiver.Nonrefundable.Int)
	st.DeleteReceiver()

	// There is no account to pay if the beneficiary is the deleted account
	// itself
	if body.BeneficiaryID == st.Receipt.ReceiverID {
		st.Burn(payout)
		return nil
	}

	record := st.Account(body.BeneficiaryID)
	beneficiary, err := record.GetState()
	switch {
	case err == nil:
	case errors.Is(err, errors.NotFound):
		st.Burn(payout)
		return nil
	default:
		return errors.UnknownError.WithFormat("load beneficiary: %w", err)
	}

	if !beneficiary.Credit(payout) {
		return errors.BalanceOverflow.WithFormat("crediting %v to %v would exceed the balance limit", protocol.FormatAmount(payout), body.BeneficiaryID)
	}
	return record.PutState(beneficiary)
}
