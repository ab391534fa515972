// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"
	"sync/atomic"

	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// DB implements a key value store in memory. The database assumes no initial
// state; loading one is the caller's responsibility.
type DB struct {
	open   atomic.Bool
	mu     sync.RWMutex
	values map[storage.Key][]byte
	logger logging.OptionalLogger
}

var _ storage.KeyValueStore = (*DB)(nil)

func New(logger logging.Logger) *DB {
	m := new(DB)
	m.logger.Set(logger, "module", "storage")
	m.values = map[storage.Key][]byte{}
	m.open.Store(true)
	return m
}

// Ready returns true if the database is open and ready to accept reads and
// writes.
func (m *DB) Ready() bool { return m.open.Load() }

// Close marks the database closed. Closing twice is not an error.
func (m *DB) Close() error {
	if !m.Ready() {
		return nil
	}

	m.open.Store(false)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}

// Begin begins a transaction. Writes are staged until the transaction
// commits.
func (m *DB) Begin(writable bool) storage.KeyValueTxn {
	var b storage.KeyValueTxn
	if writable {
		b = NewBatch(m.get, m.commit, nil)
	} else {
		b = NewBatch(m.get, nil, nil)
	}
	if m.logger.L == nil {
		return b
	}
	return &storage.DebugBatch{Batch: b, Logger: m.logger, Writable: writable}
}

func (m *DB) get(key storage.Key) ([]byte, error) {
	if !m.Ready() {
		return nil, storage.ErrNotOpen
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, errors.NotFound.WithFormat("key %v not found", key)
	}
	return append([]byte{}, v...), nil
}

func (m *DB) commit(entries map[storage.Key]Entry) error {
	if !m.Ready() {
		return storage.ErrNotOpen
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range entries {
		if e.Delete {
			delete(m.values, k)
		} else {
			m.values[k] = e.Value
		}
	}
	return nil
}
