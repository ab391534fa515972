// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	. "gitlab.com/meridiannetwork/meridian/internal/node"
	mertesting "gitlab.com/meridiannetwork/meridian/internal/testing"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

var (
	aliceKey = mertesting.PubKey(mertesting.GenerateKey("alice"))
	subKey   = mertesting.PubKey(mertesting.GenerateKey("sub.alice"))
)

func writeConfig(t *testing.T, dir string, storage config.StorageType) {
	t.Helper()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0755))

	cfg := config.Default()
	cfg.SetRoot(dir)
	cfg.Storage.Type = storage
	cfg.API.ListenAddress = "http://127.0.0.1:0"
	cfg.Metrics.ListenAddress = "http://127.0.0.1:0"
	cfg.Genesis = []config.Genesis{{
		ID:      "alice",
		Balance: protocol.Mer(100).String(),
		Keys:    []protocol.PublicKey{aliceKey},
	}}
	require.NoError(t, config.Store(cfg))
}

func loadDaemon(t *testing.T, dir string) *Daemon {
	t.Helper()
	daemon, err := Load(dir, func(string) (io.Writer, error) {
		return &logging.TestLogger{Test: t}, nil
	})
	require.NoError(t, err)
	return daemon
}

func TestDaemonLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.MemoryStorage)

	daemon := loadDaemon(t, dir)
	require.NoError(t, daemon.Start())

	// The genesis allocation is live
	account, err := daemon.Executor_TESTONLY().QueryAccount("alice")
	require.NoError(t, err)
	require.Equal(t, protocol.Mer(100).String(), account.Amount.String())

	require.NoError(t, daemon.Stop())
	<-daemon.Done()
}

func TestDaemonRestart(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BadgerStorage)

	daemon := loadDaemon(t, dir)
	require.NoError(t, daemon.Start())

	txn := mertesting.NewTransaction().
		WithSigner("alice", aliceKey).
		WithNonce(1).
		WithReceiver("sub.alice").
		CreateAccount().
		AddKey(subKey).
		Transfer(protocol.Mer(10)).
		Build()
	status, err := daemon.Executor_TESTONLY().Submit(txn)
	require.NoError(t, err)
	require.False(t, status.Failed(), "transaction failed: %v", status.AsError())

	require.NoError(t, daemon.Stop())
	<-daemon.Done()

	// Reloading must preserve the ledger instead of reapplying genesis
	daemon = loadDaemon(t, dir)
	require.NoError(t, daemon.Start())

	account, err := daemon.Executor_TESTONLY().QueryAccount("sub.alice")
	require.NoError(t, err)
	require.Equal(t, protocol.Mer(10).String(), account.Amount.String())

	ledger, err := daemon.Executor_TESTONLY().QueryLedger()
	require.NoError(t, err)
	require.EqualValues(t, 1, ledger.Index)

	require.NoError(t, daemon.Stop())
}

func TestDaemonBadGenesis(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0755))

	cfg := config.Default()
	cfg.SetRoot(dir)
	cfg.Storage.Type = config.MemoryStorage
	cfg.API.ListenAddress = "http://127.0.0.1:0"
	cfg.Genesis = []config.Genesis{{ID: "alice", Balance: "one hundred"}}
	require.NoError(t, config.Store(cfg))

	daemon := loadDaemon(t, dir)
	require.Error(t, daemon.Start())
}
