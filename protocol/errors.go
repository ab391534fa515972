// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"fmt"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// Execution failures are modeled as plain values carrying the offending
// identifiers. Each kind unwraps to a status code, so errors.Is can match on
// the status and errors.As can recover the kind.

// NotEnoughBalance is returned when a signer's refundable balance cannot
// cover a transaction's deposits and fees. Balance reports the refundable
// balance only; the non-refundable balance never counts toward spendable
// funds.
type NotEnoughBalance struct {
	SignerID AccountID `json:"signerId"`
	Balance  *BigInt   `json:"balance"`
	Cost     *BigInt   `json:"cost"`
}

func (e *NotEnoughBalance) Error() string {
	return fmt.Sprintf("signer %s does not have enough balance: has %v, requires %v", e.SignerID, e.Balance, e.Cost)
}

// Unwrap returns [errors.InsufficientBalance].
func (e *NotEnoughBalance) Unwrap() error { return errors.InsufficientBalance }

// NonRefundableBalanceToExistingAccount is returned when a receipt carries a
// non-refundable storage transfer and the receiver account existed before
// the receipt. Non-refundable balance may only be granted while an account
// is being created.
type NonRefundableBalanceToExistingAccount struct {
	AccountID AccountID `json:"accountId"`
}

func (e *NonRefundableBalanceToExistingAccount) Error() string {
	return fmt.Sprintf("cannot transfer a non-refundable balance to existing account %s", e.AccountID)
}

// Unwrap returns [errors.NonrefundableToExisting].
func (e *NonRefundableBalanceToExistingAccount) Unwrap() error {
	return errors.NonrefundableToExisting
}

// AccountDoesNotExist is returned when an action requires the receiver
// account to exist and it does not.
type AccountDoesNotExist struct {
	AccountID AccountID `json:"accountId"`
}

func (e *AccountDoesNotExist) Error() string {
	return fmt.Sprintf("account %s does not exist", e.AccountID)
}

// Unwrap returns [errors.NotFound].
func (e *AccountDoesNotExist) Unwrap() error { return errors.NotFound }

// AccountAlreadyExists is returned when a creation action targets an account
// that already exists.
type AccountAlreadyExists struct {
	AccountID AccountID `json:"accountId"`
}

func (e *AccountAlreadyExists) Error() string {
	return fmt.Sprintf("account %s already exists", e.AccountID)
}

// Unwrap returns [errors.AccountExists].
func (e *AccountAlreadyExists) Unwrap() error { return errors.AccountExists }

// UnsupportedProtocolFeature is returned when a transaction uses a feature
// that is not active at the current protocol version. The transaction is
// rejected at admission, before any fee is charged. Version is the version
// the feature requires, not the chain's current version.
type UnsupportedProtocolFeature struct {
	Feature string          `json:"feature"`
	Version ProtocolVersion `json:"version"`
}

func (e *UnsupportedProtocolFeature) Error() string {
	return fmt.Sprintf("protocol feature %s requires version %d", e.Feature, e.Version)
}

// Unwrap returns [errors.UnsupportedFeature].
func (e *UnsupportedProtocolFeature) Unwrap() error { return errors.UnsupportedFeature }

// FeatureNonrefundableBalance is the feature name reported when a
// non-refundable storage transfer is rejected by the version gate.
const FeatureNonrefundableBalance = "NonRefundableBalance"
