// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/big"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// Transaction is a signed request to apply a list of actions to a receiver
// account. The signer pays the deposits and fees.
type Transaction struct {
	SignerID   AccountID `json:"signerId"`
	PublicKey  PublicKey `json:"publicKey"`
	Nonce      uint64    `json:"nonce"`
	ReceiverID AccountID `json:"receiverId"`
	Actions    []Action  `json:"actions"`
}

// Receipt is the unit of action execution against one receiver account. A
// receipt's actions are applied in order and its effect on the ledger is all
// or nothing.
type Receipt struct {
	PredecessorID AccountID `json:"predecessorId"`
	ReceiverID    AccountID `json:"receiverId"`
	Actions       []Action  `json:"actions"`
}

// Receipt converts the transaction into a receipt for the receiver. The
// deposits carried by the actions must already be debited from the signer.
func (t *Transaction) Receipt() *Receipt {
	return &Receipt{
		PredecessorID: t.SignerID,
		ReceiverID:    t.ReceiverID,
		Actions:       t.Actions,
	}
}

// ID returns the hex encoded hash of the transaction.
func (t *Transaction) ID() string {
	data, err := json.Marshal(t)
	if err != nil {
		// Marshaling can only fail if the transaction was built wrong, and
		// in that case it must not be accepted
		panic(err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		SignerID   AccountID         `json:"signerId"`
		PublicKey  PublicKey         `json:"publicKey"`
		Nonce      uint64            `json:"nonce"`
		ReceiverID AccountID         `json:"receiverId"`
		Actions    []json.RawMessage `json:"actions"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	t.SignerID = raw.SignerID
	t.PublicKey = raw.PublicKey
	t.Nonce = raw.Nonce
	t.ReceiverID = raw.ReceiverID
	t.Actions = make([]Action, len(raw.Actions))
	for i, data := range raw.Actions {
		t.Actions[i], err = UnmarshalActionJSON(data)
		if err != nil {
			return err
		}
	}
	return nil
}

// TransactionStatus records the outcome of a transaction.
type TransactionStatus struct {
	TxID  string        `json:"txId,omitempty"`
	Code  errors.Status `json:"code,omitempty"`
	Error *errors.Error `json:"error,omitempty"`
}

// Set sets the status code and error from the given error.
func (s *TransactionStatus) Set(err error) {
	s.Error, _ = errors.UnknownError.Wrap(err).(*errors.Error)
	if s.Error != nil && s.Error.Code.IsKnownError() {
		s.Code = s.Error.Code
	} else {
		s.Code = errors.UnknownError
	}
}

// Failed checks if the transaction failed.
func (s *TransactionStatus) Failed() bool { return !s.Code.Success() }

// AsError returns the status as an error if the transaction failed.
func (s *TransactionStatus) AsError() error {
	if s.Error == nil {
		return nil
	}
	return s.Error
}

// TotalDeposits returns the sum of all deposits carried by the actions.
func TotalDeposits(actions []Action) *big.Int {
	total := new(big.Int)
	for _, action := range actions {
		switch a := action.(type) {
		case *Transfer:
			total.Add(total, &a.Deposit.Int)
		case *NonrefundableStorageTransfer:
			total.Add(total, &a.Deposit.Int)
		}
	}
	return total
}

// CountActions returns the number of actions of the given type.
func CountActions(actions []Action, typ ActionType) int {
	var n int
	for _, action := range actions {
		if action.Type() == typ {
			n++
		}
	}
	return n
}
