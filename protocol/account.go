// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/json"
	"math/big"
)

// Account is the ledger state of a single account.
type Account struct {
	ID AccountID `json:"id"`

	// Amount is the refundable balance. It is freely spendable and
	// transferable.
	Amount BigInt `json:"amount"`

	// Nonrefundable is the non-refundable balance. It counts toward storage
	// sufficiency but can never be transferred out, spent, or refunded. It
	// is only granted while the account is being created and is burned when
	// the account is deleted.
	Nonrefundable BigInt `json:"nonrefundable"`

	// CodeHash is the SHA-256 hash of the account's contract, or empty if no
	// contract is deployed.
	CodeHash []byte `json:"codeHash,omitempty"`

	// CodeSize is the size in bytes of the deployed contract.
	CodeSize uint64 `json:"codeSize,omitempty"`

	// StorageUsage is the number of state bytes the account occupies.
	StorageUsage uint64 `json:"storageUsage"`

	// Keys are the access keys authorized to sign for the account.
	Keys []*AccessKey `json:"keys,omitempty"`
}

// NewAccount returns an empty account with the given ID.
func NewAccount(id AccountID) *Account {
	return &Account{ID: id}
}

// CanDebit checks if the refundable balance covers amount. The
// non-refundable balance never counts toward spendable funds, even when it
// is numerically present on the account.
func (a *Account) CanDebit(amount *big.Int) bool {
	return amount != nil && amount.Sign() >= 0 && a.Amount.Cmp(amount) >= 0
}

// Debit subtracts amount from the refundable balance. Debit fails if the
// balance does not cover amount.
func (a *Account) Debit(amount *big.Int) bool {
	if !a.CanDebit(amount) {
		return false
	}

	a.Amount.Sub(&a.Amount.Int, amount)
	return true
}

// Credit adds amount to the refundable balance. Credit fails if the result
// would exceed the balance limit.
func (a *Account) Credit(amount *big.Int) bool {
	return creditChecked(&a.Amount, amount)
}

// CreditNonrefundable adds amount to the non-refundable balance. It fails if
// the result would exceed the balance limit.
func (a *Account) CreditNonrefundable(amount *big.Int) bool {
	return creditChecked(&a.Nonrefundable, amount)
}

func creditChecked(balance *BigInt, amount *big.Int) bool {
	if amount == nil || amount.Sign() < 0 {
		return false
	}

	sum := new(big.Int).Add(&balance.Int, amount)
	if sum.Cmp(maxBalance) > 0 {
		return false
	}

	balance.Int.Set(sum)
	return true
}

// Total returns the sum of the refundable and non-refundable balances.
func (a *Account) Total() *big.Int {
	return new(big.Int).Add(&a.Amount.Int, &a.Nonrefundable.Int)
}

// IsContract checks if the account has a contract deployed.
func (a *Account) IsContract() bool {
	return len(a.CodeHash) > 0
}

// GetKey returns the access key with the given public key, or nil.
func (a *Account) GetKey(key PublicKey) *AccessKey {
	for _, k := range a.Keys {
		if k.PublicKey.Equal(key) {
			return k
		}
	}
	return nil
}

// AddKey registers an access key. AddKey fails if a key with the same public
// key is already registered.
func (a *Account) AddKey(key *AccessKey) bool {
	if a.GetKey(key.PublicKey) != nil {
		return false
	}

	a.Keys = append(a.Keys, key)
	return true
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	b := new(Account)
	b.ID = a.ID
	b.Amount.Int.Set(&a.Amount.Int)
	b.Nonrefundable.Int.Set(&a.Nonrefundable.Int)
	b.CodeHash = append([]byte(nil), a.CodeHash...)
	b.CodeSize = a.CodeSize
	b.StorageUsage = a.StorageUsage
	for _, k := range a.Keys {
		b.Keys = append(b.Keys, k.Copy())
	}
	return b
}

// CopyAsInterface returns a copy of the account as an interface value.
func (a *Account) CopyAsInterface() interface{} { return a.Copy() }

// UnmarshalAccount parses an account record.
func UnmarshalAccount(data []byte) (*Account, error) {
	a := new(Account)
	err := json.Unmarshal(data, a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MarshalBinary implements [encoding.BinaryMarshaler] so accounts can be
// stored directly.
func (a *Account) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (a *Account) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}
