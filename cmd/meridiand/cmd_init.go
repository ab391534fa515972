// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize a node",
	Run:   initNode,
	Args:  cobra.NoArgs,
}

var flagInit = struct {
	Reset     bool
	LogLevels string
	Listen    string
	UseMemDB  bool
	Genesis   genesisFlag
}{}

func init() {
	cmdMain.AddCommand(cmdInit)

	cmdInit.Flags().BoolVar(&flagInit.Reset, "reset", false, "Delete any existing directories within the working directory")
	cmdInit.Flags().StringVar(&flagInit.LogLevels, "log-levels", "", "Override the default log levels")
	cmdInit.Flags().StringVarP(&flagInit.Listen, "listen", "l", "", "Address to serve the JSON-RPC API on, e.g. http://1.2.3.4:5678")
	cmdInit.Flags().BoolVar(&flagInit.UseMemDB, "memdb", false, "Use an in-memory database instead of Badger")
	cmdInit.Flags().Var(&flagInit.Genesis, "genesis", "Seed a genesis account, e.g. 'alice=1000' for a thousand MER")
}

// genesisFlag accumulates genesis allocations given as 'account=balance',
// with the balance in whole MER. Access keys cannot be registered from the
// command line, edit the configuration file instead.
type genesisFlag struct {
	accounts []config.Genesis
}

var _ pflag.Value = (*genesisFlag)(nil)

func (g *genesisFlag) Type() string { return "account=balance" }

func (g *genesisFlag) String() string {
	s := make([]string, len(g.accounts))
	for i, a := range g.accounts {
		s[i] = a.ID + "=" + a.Balance
	}
	return strings.Join(s, ",")
}

func (g *genesisFlag) Set(s string) error {
	id, balance, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("invalid allocation: want 'account=balance', got %q", s)
	}

	err := protocol.IsValidAccountID(id)
	if err != nil {
		return err
	}

	mer, err := strconv.ParseUint(balance, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %v", balance, err)
	}

	g.accounts = append(g.accounts, config.Genesis{ID: id, Balance: protocol.Mer(mer).String()})
	return nil
}

func nodeReset() {
	ent, err := os.ReadDir(flagMain.WorkDir)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	check(err)

	for _, ent := range ent {
		if !ent.IsDir() {
			continue
		}

		dir := path.Join(flagMain.WorkDir, ent.Name())
		fmt.Fprintf(os.Stderr, "Deleting %s\n", dir)
		err = os.RemoveAll(dir)
		check(err)
	}
}

func initNode(_ *cobra.Command, _ []string) {
	if flagInit.Reset {
		nodeReset()
	}

	cfg := config.Default()
	cfg.SetRoot(flagMain.WorkDir)

	if flagInit.LogLevels != "" {
		_, _, err := logging.ParseLogLevel(flagInit.LogLevels, io.Discard)
		checkf(err, "--log-levels")
		cfg.LogLevel = flagInit.LogLevels
	}

	if flagInit.Listen != "" {
		cfg.API.ListenAddress = flagInit.Listen
	}

	if flagInit.UseMemDB {
		cfg.Storage.Type = config.MemoryStorage
		warnf("An in-memory database is not persisted, the ledger is lost on shutdown")
	}

	cfg.Genesis = flagInit.Genesis.accounts
	if len(cfg.Genesis) == 0 {
		warnf("No genesis accounts. Edit %s to add allocations before the first run.", cfg.FilePath())
	}

	err := os.MkdirAll(filepath.Dir(cfg.FilePath()), 0755)
	checkf(err, "create config dir")

	err = config.Store(cfg)
	checkf(err, "write config")

	fmt.Printf("Wrote %s\n", cfg.FilePath())
}
