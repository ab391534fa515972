// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// Entry is a staged write.
type Entry struct {
	Key    storage.Key
	Value  []byte
	Delete bool
}

type GetFunc func(storage.Key) ([]byte, error)
type CommitFunc func(map[storage.Key]Entry) error

// Batch stages reads and writes in a map. Get sees values updated with Put,
// regardless of the underlying transaction's behavior. Commit hands the
// staged entries to the commit function; a batch created without one
// discards its writes.
type Batch struct {
	mu      sync.RWMutex
	get     GetFunc
	commit  CommitFunc
	discard func()
	entries map[storage.Key]Entry
}

var _ storage.KeyValueTxn = (*Batch)(nil)

func NewBatch(get GetFunc, commit CommitFunc, discard func()) *Batch {
	b := new(Batch)
	b.get = get
	b.commit = commit
	b.discard = discard
	b.entries = map[storage.Key]Entry{}
	return b
}

// Begin begins a sub-batch that stages its writes into this batch when it
// commits.
func (b *Batch) Begin(writable bool) storage.KeyValueTxn {
	if !writable || b.commit == nil {
		return NewBatch(b.Get, nil, nil)
	}
	return NewBatch(b.Get, b.putEntries, nil)
}

func (b *Batch) Get(key storage.Key) ([]byte, error) {
	b.mu.RLock()
	e, ok := b.entries[key]
	b.mu.RUnlock()
	if ok {
		if e.Delete {
			return nil, errors.NotFound.WithFormat("key %v not found", key)
		}
		return e.Value, nil
	}
	return b.get(key)
}

func (b *Batch) Put(key storage.Key, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = Entry{Key: key, Value: value}
	return nil
}

func (b *Batch) PutAll(values map[storage.Key][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range values {
		b.entries[k] = Entry{Key: k, Value: v}
	}
	return nil
}

func (b *Batch) Delete(key storage.Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = Entry{Key: key, Delete: true}
	return nil
}

func (b *Batch) putEntries(entries map[storage.Key]Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, e := range entries {
		b.entries[k] = e
	}
	return nil
}

func (b *Batch) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.commit != nil {
		err = b.commit(b.entries)
	}
	b.entries = map[storage.Key]Entry{}
	if b.discard != nil {
		b.discard()
	}
	return err
}

func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = map[storage.Key]Entry{}
	if b.discard != nil {
		b.discard()
	}
}
