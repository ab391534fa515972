// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"math/big"
	"strings"

	"golang.org/x/exp/slices"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// GenesisInit is the chain's initial state.
type GenesisInit struct {
	// Version is the protocol version the chain starts at.
	Version protocol.ProtocolVersion

	// Accounts are the initial accounts.
	Accounts []*protocol.Account
}

// InitGenesis writes the initial accounts and the system ledger. InitGenesis
// does nothing if the database is already initialized.
func (x *Executor) InitGenesis(init *GenesisInit) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(true)
	defer batch.Discard()

	_, err := batch.SystemLedger().GetState()
	switch {
	case err == nil:
		// Already initialized
		return nil
	case errors.Is(err, errors.NotFound):
	default:
		return errors.UnknownError.WithFormat("load ledger: %w", err)
	}

	if !init.Version.Known() {
		return errors.BadRequest.WithFormat("unknown protocol version %d", init.Version)
	}

	// Sort the accounts so initialization is deterministic
	accounts := make([]*protocol.Account, len(init.Accounts))
	copy(accounts, init.Accounts)
	slices.SortFunc(accounts, func(a, b *protocol.Account) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})

	supply := new(big.Int)
	seen := map[protocol.AccountID]bool{}
	for _, account := range accounts {
		err = protocol.IsValidAccountID(string(account.ID))
		if err != nil {
			return err
		}
		if seen[account.ID] {
			return errors.Conflict.WithFormat("duplicate genesis account %v", account.ID)
		}
		seen[account.ID] = true

		account = account.Copy()
		if account.StorageUsage == 0 {
			account.StorageUsage = protocol.StorageBytesAccount + uint64(len(account.Keys))*protocol.StorageBytesAccessKey
		}
		supply.Add(supply, account.Total())

		err = batch.Account(account.ID).PutState(account)
		if err != nil {
			return errors.UnknownError.WithFormat("store %v: %w", account.ID, err)
		}
	}

	if supply.Cmp(protocol.Mer(protocol.MerSupplyLimit)) > 0 {
		return errors.BadRequest.WithFormat("genesis supply %v exceeds the limit", protocol.FormatAmount(supply))
	}

	err = batch.SystemLedger().PutState(&protocol.SystemLedger{Version: init.Version})
	if err != nil {
		return errors.UnknownError.WithFormat("store ledger: %w", err)
	}

	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.WithFormat("commit: %w", err)
	}

	x.logger.Info("Initialized", "accounts", len(accounts), "version", init.Version)
	return nil
}
