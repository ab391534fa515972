// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/internal/api"
	"gitlab.com/meridiannetwork/meridian/internal/chain"
	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// Daemon runs an executor with its JSON-RPC API and metrics servers.
type Daemon struct {
	Config *config.Config
	Logger logging.Logger

	done    chan struct{}
	errg    *errgroup.Group
	db      *database.Database
	exec    *chain.Executor
	jrpc    *api.JrpcMethods
	api     *http.Server
	metrics *http.Server

	// knobs for tests
	UseMemDB bool
}

// Load reads the daemon's configuration from dir and initializes its logger.
func Load(dir string, newWriter func(string) (io.Writer, error)) (*Daemon, error) {
	var daemon Daemon

	var err error
	daemon.Config, err = config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %v", err)
	}

	if newWriter == nil {
		newWriter = logging.NewConsoleWriter
	}

	logWriter, err := newWriter(daemon.Config.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log writer: %v", err)
	}

	logLevel, logWriter, err := logging.ParseLogLevel(daemon.Config.LogLevel, logWriter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %v", err)
	}

	daemon.Logger, err = logging.NewLogger(zerolog.New(logWriter), logLevel, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %v", err)
	}

	return &daemon, nil
}

func (d *Daemon) DB_TESTONLY() *database.Database    { return d.db }
func (d *Daemon) Jrpc_TESTONLY() *api.JrpcMethods    { return d.jrpc }
func (d *Daemon) Executor_TESTONLY() *chain.Executor { return d.exec }

func (d *Daemon) Start() (err error) {
	if d.done != nil {
		return fmt.Errorf("already started")
	}
	d.done = make(chan struct{})

	defer func() {
		if err != nil {
			close(d.done)
		}
	}()

	if d.UseMemDB {
		d.Config.Storage.Type = config.MemoryStorage
	}

	d.db, err = database.Open(d.Config, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	// Close the database if start fails (mostly for tests)
	defer func() {
		if err != nil {
			_ = d.db.Close()
		}
	}()

	d.exec, err = chain.NewExecutor(d.db, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize executor: %v", err)
	}

	accounts, err := genesisAccounts(d.Config)
	if err != nil {
		return err
	}
	err = d.exec.InitGenesis(&chain.GenesisInit{
		Version:  d.Config.ProtocolVersion,
		Accounts: accounts,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize genesis: %v", err)
	}

	// Configure JSON-RPC
	d.jrpc, err = api.NewJrpc(api.Options{
		Config:   d.Config,
		Executor: d.exec,
		Logger:   d.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start API: %v", err)
	}

	// Run JSON-RPC server
	d.api = &http.Server{Handler: d.jrpc.NewMux()}
	apiListener, err := d.listen(d.Config.API.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to start JSON-RPC: %v", err)
	}

	d.errg = new(errgroup.Group)
	d.serve("JSON-RPC", d.api, apiListener)

	// Export Prometheus metrics
	if d.Config.Metrics.ListenAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{},
			),
		))
		d.metrics = &http.Server{Handler: mux}

		metricsListener, err := d.listen(d.Config.Metrics.ListenAddress)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %v", err)
		}
		d.serve("metrics", d.metrics, metricsListener)
	}

	d.Logger.Info("Node running", "api", d.Config.API.ListenAddress, "storage", d.Config.Storage.Type)
	return nil
}

func (d *Daemon) listen(address string) (net.Listener, error) {
	l, secure, err := listenHttpUrl(address)
	if err != nil {
		return nil, err
	}
	if secure {
		return nil, fmt.Errorf("HTTPS is not supported")
	}
	return l, nil
}

func (d *Daemon) serve(name string, server *http.Server, l net.Listener) {
	d.errg.Go(func() error {
		err := server.Serve(l)
		if err != nil && err != http.ErrServerClosed {
			d.Logger.Error(name+" server", "err", err)
			return err
		}
		return nil
	})
}

// listenHttpUrl takes a string such as `http://localhost:123` and creates a TCP
// listener.
func listenHttpUrl(s string) (net.Listener, bool, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, false, fmt.Errorf("invalid address: %v", err)
	}

	if u.Path != "" && u.Path != "/" {
		return nil, false, fmt.Errorf("invalid address: path is not empty")
	}

	var secure bool
	switch u.Scheme {
	case "tcp", "http":
		secure = false
	case "https":
		secure = true
	default:
		return nil, false, fmt.Errorf("invalid address: unsupported scheme %q", u.Scheme)
	}

	l, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, false, err
	}

	return l, secure, nil
}

// genesisAccounts converts the configured genesis allocations into accounts.
func genesisAccounts(cfg *config.Config) ([]*protocol.Account, error) {
	accounts := make([]*protocol.Account, len(cfg.Genesis))
	for i, g := range cfg.Genesis {
		id, err := protocol.ParseAccountID(g.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis account %q: %v", g.ID, err)
		}

		balance, ok := new(big.Int).SetString(g.Balance, 10)
		if !ok || balance.Sign() < 0 {
			return nil, fmt.Errorf("invalid genesis balance %q for %s", g.Balance, g.ID)
		}

		account := protocol.NewAccount(id)
		account.Amount.Int.Set(balance)
		for _, key := range g.Keys {
			if !account.AddKey(&protocol.AccessKey{PublicKey: key}) {
				return nil, fmt.Errorf("duplicate genesis key for %s", g.ID)
			}
		}
		accounts[i] = account
	}
	return accounts, nil
}

func (d *Daemon) Stop() error {
	if d.done == nil {
		return fmt.Errorf("not started")
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(5*time.Second))
	defer cancel()

	err := d.api.Shutdown(ctx)
	if err != nil {
		d.Logger.Error("Error stopping API", "module", "jrpc", "error", err)
	}

	if d.metrics != nil {
		err := d.metrics.Shutdown(ctx)
		if err != nil {
			d.Logger.Error("Error stopping metrics server", "module", "metrics", "error", err)
		}
	}

	err = d.errg.Wait()

	dberr := d.db.Close()
	if dberr != nil {
		d.Logger.Error("Error closing database", "module", "database", "error", dberr)
		if err == nil {
			err = dberr
		}
	}

	close(d.done)
	return err
}

// Done returns a channel that is closed once the daemon has stopped.
func (d *Daemon) Done() <-chan struct{} { return d.done }
