// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Action is a single operation applied to a receiver account. Actions within
// a receipt execute strictly in list order and each action is consumed
// exactly once.
type Action interface {
	// Type returns the action's type.
	Type() ActionType
}

// CreateAccount creates the receiver account with zero balances. It fails if
// the account already exists.
type CreateAccount struct{}

// DeployContract deploys a contract to the receiver account.
type DeployContract struct {
	Code []byte `json:"code"`
}

// Transfer credits the receiver's refundable balance with Deposit. The
// deposit is debited from the sender's refundable balance when the
// transaction is converted into a receipt.
type Transfer struct {
	Deposit BigInt `json:"deposit"`
}

// NonrefundableStorageTransfer credits the receiver's non-refundable balance
// with Deposit. The deposit is debited from the sender's refundable balance,
// so the sender's spendable funds must cover it. The receiver must be
// created by the same receipt.
type NonrefundableStorageTransfer struct {
	Deposit BigInt `json:"deposit"`
}

// AddKey registers an access key on the receiver account.
type AddKey struct {
	PublicKey PublicKey `json:"publicKey"`
}

// DeleteAccount deletes the receiver account. The account's remaining
// refundable balance is paid to the beneficiary and the non-refundable
// balance is burned. The deletion fee is charged to the account like any
// other transaction fee, before the payout is computed.
type DeleteAccount struct {
	BeneficiaryID AccountID `json:"beneficiaryId"`
}

func (*CreateAccount) Type() ActionType  { return ActionTypeCreateAccount }
func (*DeployContract) Type() ActionType { return ActionTypeDeployContract }
func (*Transfer) Type() ActionType       { return ActionTypeTransfer }
func (*NonrefundableStorageTransfer) Type() ActionType {
	return ActionTypeNonrefundableStorageTransfer
}
func (*AddKey) Type() ActionType        { return ActionTypeAddKey }
func (*DeleteAccount) Type() ActionType { return ActionTypeDeleteAccount }

// CodeHash returns the SHA-256 hash of the contract code.
func (a *DeployContract) CodeHash() []byte {
	h := sha256.Sum256(a.Code)
	return h[:]
}

func (a *CreateAccount) MarshalJSON() ([]byte, error) {
	type t CreateAccount
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

func (a *DeployContract) MarshalJSON() ([]byte, error) {
	type t DeployContract
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

func (a *Transfer) MarshalJSON() ([]byte, error) {
	type t Transfer
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

func (a *NonrefundableStorageTransfer) MarshalJSON() ([]byte, error) {
	type t NonrefundableStorageTransfer
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

func (a *AddKey) MarshalJSON() ([]byte, error) {
	type t AddKey
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

func (a *DeleteAccount) MarshalJSON() ([]byte, error) {
	type t DeleteAccount
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		*t
	}{a.Type(), (*t)(a)})
}

// NewAction creates a new action of the given type.
func NewAction(typ ActionType) (Action, error) {
	switch typ {
	case ActionTypeCreateAccount:
		return new(CreateAccount), nil
	case ActionTypeDeployContract:
		return new(DeployContract), nil
	case ActionTypeTransfer:
		return new(Transfer), nil
	case ActionTypeNonrefundableStorageTransfer:
		return new(NonrefundableStorageTransfer), nil
	case ActionTypeAddKey:
		return new(AddKey), nil
	case ActionTypeDeleteAccount:
		return new(DeleteAccount), nil
	default:
		return nil, fmt.Errorf("unknown action type %v", typ)
	}
}

// UnmarshalActionJSON parses an action, using the type field to determine
// the concrete type.
func UnmarshalActionJSON(data []byte) (Action, error) {
	var typ struct{ Type ActionType }
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return nil, err
	}

	action, err := NewAction(typ.Type)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(data, action)
	if err != nil {
		return nil, err
	}

	return action, nil
}
