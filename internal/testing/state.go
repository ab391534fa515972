// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package testing

import (
	"crypto/ed25519"
	"math/big"

	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

type DB = *database.Batch

// GenerateKey derives a deterministic ed25519 key from the seed values. FOR
// TESTING USE ONLY.
func GenerateKey(seed ...interface{}) ed25519.PrivateKey {
	h := storage.MakeKey(seed...)
	return ed25519.NewKeyFromSeed(h[:])
}

// PubKey returns the public half of an ed25519 private key.
func PubKey(key ed25519.PrivateKey) protocol.PublicKey {
	return protocol.PublicKey(key[32:])
}

// AccountWithBalance returns an account with the given refundable balance and
// a single registered access key. Storage usage is left zero so genesis can
// assign the default.
func AccountWithBalance(id protocol.AccountID, key protocol.PublicKey, balance *big.Int) *protocol.Account {
	account := protocol.NewAccount(id)
	account.Amount.Int.Set(balance)
	account.AddKey(&protocol.AccessKey{PublicKey: key})
	return account
}

// CreateAccount writes an account with the given refundable balance directly
// to the database, bypassing the executor.
func CreateAccount(db DB, id protocol.AccountID, key protocol.PublicKey, balance *big.Int) error {
	account := AccountWithBalance(id, key, balance)
	account.StorageUsage = protocol.StorageBytesAccount + protocol.StorageBytesAccessKey
	return db.Account(id).PutState(account)
}
