// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dustin/go-humanize"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// TruncateBadger controls whether Badger is configured to truncate corrupted
// data. Especially on Windows, if the node is terminated abruptly, setting
// this may be necessary to recover the state of the system.
//
// However, the node is not robust against this kind of interruption. If the
// node is terminated abruptly and restarted with this flag, the ledger may be
// left with a hole.
var TruncateBadger = false

type DB struct {
	ready  bool
	mu     sync.RWMutex
	badger *badger.DB
	logger logging.OptionalLogger
}

var _ storage.KeyValueStore = (*DB)(nil)

func New(filepath string, logger logging.Logger) (*DB, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	d := new(DB)
	d.logger.Set(logger, "module", "badger")

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(badgerLogger{d.logger})

	// Truncate corrupted data
	if TruncateBadger {
		opts = opts.WithTruncate(true)
	}

	// Open Badger
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, err
	}

	d.ready = true
	mDbOpen.Inc()

	// Run GC every hour
	go d.gc()

	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if l, err := d.lock(true); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

func (d *DB) gc() {
	for {
		// GC every hour
		time.Sleep(time.Hour)

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		err = d.badger.RunValueLogGC(0.5)
		mGcRun.Inc()
		mGcDuration.Set(time.Since(start).Seconds())
		switch {
		case err == nil:
			lsm, vlog := d.badger.Size()
			d.logger.Info("Badger GC complete", "lsm-size", humanize.Bytes(uint64(lsm)), "vlog-size", humanize.Bytes(uint64(vlog)))
		case !errors.Is(err, badger.ErrNoRewrite):
			d.logger.Error("Badger GC failed", "error", err)
		}

		// Release the lock
		l.Unlock()
	}
}

// lock acquires a lock on the ready mutex and checks for readiness. This
// prevents race conditions between Get/Put and Close, which can cause panics.
func (d *DB) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, storage.ErrNotOpen
	}

	return l, nil
}

type badgerLogger struct {
	logging.Logger
}

func (l badgerLogger) format(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.TrimRight(s, "\n")
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error(l.format(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Error(l.format(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Info(l.format(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug(l.format(format, args...))
}
