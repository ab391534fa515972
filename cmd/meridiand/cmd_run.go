// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/meridiannetwork/meridian/internal/node"
	"gitlab.com/meridiannetwork/meridian/internal/storage/badger"
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run node",
	Run:   runNode,
	Args:  cobra.NoArgs,
}

var flagRun = struct {
	Truncate    bool
	CiStopAfter time.Duration
}{}

func init() {
	cmdMain.AddCommand(cmdRun)

	cmdRun.PersistentFlags().BoolVar(&flagRun.Truncate, "truncate", false, "Truncate Badger if necessary")
	cmdRun.Flags().DurationVar(&flagRun.CiStopAfter, "ci-stop-after", 0, "FOR CI ONLY - stop the node after some time")
	cmdRun.Flag("ci-stop-after").Hidden = true

	cmdRun.PersistentPreRun = func(*cobra.Command, []string) {
		badger.TruncateBadger = flagRun.Truncate
	}
}

func runNode(_ *cobra.Command, _ []string) {
	daemon, err := node.Load(flagMain.WorkDir, nil)
	checkf(err, "load node")

	err = daemon.Start()
	checkf(err, "start node")

	// Stop on SIGINT or SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	var stop <-chan time.Time
	if flagRun.CiStopAfter != 0 {
		stop = time.After(flagRun.CiStopAfter)
	}

	select {
	case <-sigs:
	case <-stop:
	}
	signal.Stop(sigs)

	check(daemon.Stop())
}
