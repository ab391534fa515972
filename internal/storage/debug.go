// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package storage

import "gitlab.com/meridiannetwork/meridian/internal/logging"

// DebugBatch wraps a transaction and logs every operation.
type DebugBatch struct {
	Batch    KeyValueTxn
	Logger   logging.Logger
	Writable bool
	didWrite bool
}

var _ KeyValueTxn = (*DebugBatch)(nil)

// PretendWrite marks the batch as written. Value caches write to their store
// lazily, so a batch can carry writes the store has not seen yet.
func (b *DebugBatch) PretendWrite() { b.didWrite = true }

func (b *DebugBatch) Get(key Key) ([]byte, error) {
	v, err := b.Batch.Get(key)
	b.Logger.Debug("Get", "key", key, "error", err)
	return v, err
}

func (b *DebugBatch) Put(key Key, value []byte) error {
	b.Logger.Debug("Put", "key", key, "len", len(value))
	b.didWrite = true
	return b.Batch.Put(key, value)
}

func (b *DebugBatch) PutAll(values map[Key][]byte) error {
	b.Logger.Debug("PutAll", "count", len(values))
	b.didWrite = true
	return b.Batch.PutAll(values)
}

func (b *DebugBatch) Delete(key Key) error {
	b.Logger.Debug("Delete", "key", key)
	b.didWrite = true
	return b.Batch.Delete(key)
}

func (b *DebugBatch) Commit() error {
	err := b.Batch.Commit()
	b.Logger.Debug("Commit", "wrote", b.didWrite, "error", err)
	return err
}

func (b *DebugBatch) Discard() {
	if b.didWrite {
		b.Logger.Debug("Discarding a batch with writes")
	}
	b.Batch.Discard()
}

func (b *DebugBatch) Begin(writable bool) KeyValueTxn {
	b.Logger.Debug("Begin", "writable", writable)
	return &DebugBatch{Batch: b.Batch.Begin(writable), Logger: b.Logger, Writable: writable}
}
