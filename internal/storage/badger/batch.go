// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/internal/storage/memory"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

type Batch struct {
	db       *DB
	txn      *badger.Txn
	writable bool
	done     bool
	cache    map[storage.Key]memory.Entry
}

var _ storage.KeyValueTxn = (*Batch)(nil)

func (d *DB) Begin(writable bool) storage.KeyValueTxn {
	b := new(Batch)
	b.db = d
	b.txn = d.badger.NewTransaction(false)
	b.writable = writable
	mTxnOpen.Inc()
	if d.logger.L == nil {
		return b
	}
	return &storage.DebugBatch{Batch: b, Logger: d.logger, Writable: writable}
}

// Begin begins a sub-batch that stages its writes into this batch when it
// commits.
func (b *Batch) Begin(writable bool) storage.KeyValueTxn {
	if !b.writable || !writable {
		return memory.NewBatch(b.Get, nil, nil)
	}
	return memory.NewBatch(b.Get, b.putEntries, nil)
}

func (b *Batch) lock() (sync.Locker, error) {
	l, err := b.db.lock(false)
	if err == nil {
		return l, nil
	}

	b.Discard() // Is this a good idea?
	return nil, err
}

func (b *Batch) Put(key storage.Key, value []byte) error {
	if l, err := b.lock(); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	if b.cache == nil {
		b.cache = map[storage.Key]memory.Entry{}
	}
	b.cache[key] = memory.Entry{Key: key, Value: value}
	return nil
}

func (b *Batch) PutAll(values map[storage.Key][]byte) error {
	if l, err := b.lock(); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	if b.cache == nil {
		b.cache = map[storage.Key]memory.Entry{}
	}
	for k, v := range values {
		b.cache[k] = memory.Entry{Key: k, Value: v}
	}

	return nil
}

func (b *Batch) Delete(key storage.Key) error {
	if l, err := b.lock(); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	if b.cache == nil {
		b.cache = map[storage.Key]memory.Entry{}
	}
	b.cache[key] = memory.Entry{Key: key, Delete: true}
	return nil
}

func (b *Batch) putEntries(entries map[storage.Key]memory.Entry) error {
	if l, err := b.lock(); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	if b.cache == nil {
		b.cache = map[storage.Key]memory.Entry{}
	}
	for k, e := range entries {
		b.cache[k] = e
	}

	return nil
}

func (b *Batch) Get(key storage.Key) ([]byte, error) {
	if e, ok := b.cache[key]; ok {
		if e.Delete {
			return nil, errors.NotFound.WithFormat("key %v not found", key)
		}
		return e.Value, nil
	}
	return b.get(key)
}

func (b *Batch) get(key storage.Key) ([]byte, error) {
	if l, err := b.db.lock(false); err != nil {
		return nil, err
	} else {
		defer l.Unlock()
	}

	item, err := b.txn.Get(key[:])
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("key %v not found", key)
	default:
		return nil, err
	}

	v, err := item.ValueCopy(nil)
	// If we didn't find the value, return ErrNotFound
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.NotFound.WithFormat("key %v not found", key)
	}

	return v, err
}

func (b *Batch) Commit() error {
	if l, err := b.lock(); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	b.close()

	// Use a write batch for writing to work around Badger's transaction size
	// limits
	wb := b.db.badger.NewWriteBatch()
	for k, e := range b.cache {
		var err error
		if e.Delete {
			err = wb.Delete(k[:])
		} else {
			err = wb.Set(k[:], e.Value)
		}
		if err != nil {
			return err
		}
	}

	start := time.Now()
	err := wb.Flush()
	mCommitDuration.Set(time.Since(start).Seconds())
	return err
}

func (b *Batch) Discard() {
	b.close()
}

func (b *Batch) close() {
	if b.done {
		return
	}
	b.done = true
	b.txn.Discard()
	mTxnOpen.Dec()
}
