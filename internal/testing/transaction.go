// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package testing

import (
	"math/big"
	"sync/atomic"

	"gitlab.com/meridiannetwork/meridian/protocol"
)

// TransactionBuilder assembles a transaction for tests. The builder methods
// panic on invalid input. FOR TESTING USE ONLY.
type TransactionBuilder struct {
	*protocol.Transaction
}

func NewTransaction() TransactionBuilder {
	var tb TransactionBuilder
	tb.Transaction = new(protocol.Transaction)
	return tb
}

func (tb TransactionBuilder) WithSigner(id protocol.AccountID, key protocol.PublicKey) TransactionBuilder {
	tb.SignerID = id
	tb.PublicKey = key
	return tb
}

func (tb TransactionBuilder) WithReceiver(id protocol.AccountID) TransactionBuilder {
	tb.ReceiverID = id
	return tb
}

func (tb TransactionBuilder) WithNonce(nonce uint64) TransactionBuilder {
	tb.Nonce = nonce
	return tb
}

func (tb TransactionBuilder) WithNonceVar(nonce *uint64) TransactionBuilder {
	tb.Nonce = atomic.AddUint64(nonce, 1)
	return tb
}

func (tb TransactionBuilder) WithActions(actions ...protocol.Action) TransactionBuilder {
	tb.Actions = append(tb.Actions, actions...)
	return tb
}

// CreateAccount appends an account creation action.
func (tb TransactionBuilder) CreateAccount() TransactionBuilder {
	return tb.WithActions(&protocol.CreateAccount{})
}

// Transfer appends a transfer of the given deposit.
func (tb TransactionBuilder) Transfer(deposit *big.Int) TransactionBuilder {
	return tb.WithActions(&protocol.Transfer{Deposit: *protocol.BigIntFromInt(deposit)})
}

// NonrefundableTransfer appends a non-refundable storage transfer of the
// given deposit.
func (tb TransactionBuilder) NonrefundableTransfer(deposit *big.Int) TransactionBuilder {
	return tb.WithActions(&protocol.NonrefundableStorageTransfer{Deposit: *protocol.BigIntFromInt(deposit)})
}

// AddKey appends an action registering the given access key.
func (tb TransactionBuilder) AddKey(key protocol.PublicKey) TransactionBuilder {
	return tb.WithActions(&protocol.AddKey{PublicKey: key})
}

// DeployContract appends an action deploying the given code.
func (tb TransactionBuilder) DeployContract(code []byte) TransactionBuilder {
	return tb.WithActions(&protocol.DeployContract{Code: code})
}

// DeleteAccount appends an action deleting the receiver in favor of the
// given beneficiary.
func (tb TransactionBuilder) DeleteAccount(beneficiary protocol.AccountID) TransactionBuilder {
	return tb.WithActions(&protocol.DeleteAccount{BeneficiaryID: beneficiary})
}

func (tb TransactionBuilder) Build() *protocol.Transaction {
	if tb.SignerID == "" {
		panic("missing signer")
	}
	if tb.ReceiverID == "" {
		panic("missing receiver")
	}
	return tb.Transaction
}
