// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"encoding"

	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// debug is a bit field for enabling debug log messages
//
//nolint:staticcheck
const debug = 0 |
	// debugGet |
	// debugPut |
	// debugCache |
	0

const (
	// debugGet logs the key of Batch.getValue
	debugGet = 1 << iota
	// debugPut logs the key of Batch.putValue
	debugPut
	// debugCache logs the key of Batch.cacheValue
	debugCache
)

// Batch batches database reads and writes. Batches can be nested; a nested
// batch stages its writes into its parent when committed, and a receipt
// whose batch is discarded leaves no trace in the parent.
type Batch struct {
	done        bool
	writable    bool
	dirty       bool
	id          int
	nextChildId int
	parent      *Batch
	logger      logging.OptionalLogger
	store       storage.KeyValueTxn
	values      map[storage.Key]cachedValue
}

// TypedValue is a record value that can be cached by a batch.
type TypedValue interface {
	encoding.BinaryMarshaler
	CopyAsInterface() interface{}
}

type cachedValue struct {
	value   TypedValue
	dirty   bool
	deleted bool
}

// Begin starts a new batch.
func (d *Database) Begin(writable bool) *Batch {
	d.nextBatchId++

	b := new(Batch)
	b.id = d.nextBatchId
	b.writable = writable
	b.logger = d.logger
	b.store = d.store.Begin(writable)
	b.values = map[storage.Key]cachedValue{}
	return b
}

// Begin starts a new nested batch.
func (b *Batch) Begin(writable bool) *Batch {
	if writable && !b.writable {
		b.logger.Info("Attempted to create a writable batch from a read-only batch")
	}

	b.nextChildId++

	c := new(Batch)
	c.id = b.nextChildId
	c.writable = b.writable && writable
	c.parent = b
	c.logger = b.logger
	c.store = b.store.Begin(c.writable)
	c.values = map[storage.Key]cachedValue{}
	return c
}

// View runs the function with a read-only nested batch.
func (b *Batch) View(fn func(batch *Batch) error) error {
	batch := b.Begin(false)
	defer batch.Discard()
	return fn(batch)
}

// Update runs the function with a writable nested batch and commits if the
// function succeeds.
func (b *Batch) Update(fn func(batch *Batch) error) error {
	batch := b.Begin(true)
	defer batch.Discard()
	err := fn(batch)
	if err != nil {
		return err
	}
	return batch.Commit()
}

func (b *Batch) cacheValue(key storage.Key, value TypedValue, dirty bool) {
	// Cache the value, preserve dirtiness
	cv := b.values[key]
	cv.value = value
	cv.deleted = false

	if debug&debugCache != 0 {
		b.logger.Debug("Cache", "key", key, "dirty", dirty)
	}

	if dirty {
		b.dirty = true
		cv.dirty = true
	}
	b.values[key] = cv
}

func (b *Batch) getValue(key storage.Key, unmarshal func([]byte) (TypedValue, error)) (TypedValue, error) {
	if b.done {
		panic("attempted to use a committed or discarded batch")
	}

	if debug&debugGet != 0 {
		b.logger.Debug("Get", "key", key)
	}

	// Check for an existing value
	if cv, ok := b.values[key]; ok {
		if cv.deleted {
			return nil, errors.NotFound.WithFormat("%v not found", key)
		}
		return cv.value, nil
	}

	// See if the parent has the value
	if b.parent != nil {
		v, err := b.parent.getValue(key, unmarshal)
		switch {
		case err == nil:
			// Make a copy, otherwise values may leak between batches
			v := v.CopyAsInterface().(TypedValue)
			b.cacheValue(key, v, false)
			return v, nil

		case errors.Is(err, storage.ErrNotFound):
			return nil, err

		default:
			return nil, errors.UnknownError.Wrap(err)
		}
	}

	data, err := b.store.Get(key)
	if err != nil {
		return nil, err
	}

	v, err := unmarshal(data)
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}

	b.cacheValue(key, v, false)
	return v, nil
}

func (b *Batch) putValue(key storage.Key, value TypedValue) {
	if b.done {
		panic("attempted to use a committed or discarded batch")
	}

	if debug&debugPut != 0 {
		b.logger.Debug("Put", "key", key)
	}

	b.cacheValue(key, value, true)
}

func (b *Batch) deleteValue(key storage.Key) {
	if b.done {
		panic("attempted to use a committed or discarded batch")
	}

	if debug&debugPut != 0 {
		b.logger.Debug("Delete", "key", key)
	}

	b.values[key] = cachedValue{dirty: true, deleted: true}
	b.dirty = true
}

// Commit commits pending writes to the key-value store or the parent batch.
// Attempting to use the Batch after calling Commit or Discard will result in
// a panic.
func (b *Batch) Commit() error {
	if b.done {
		panic("attempted to use a committed or discarded batch")
	}

	b.done = true

	if b.parent != nil {
		for k, v := range b.values {
			if !v.dirty {
				continue
			}
			if v.deleted {
				b.parent.deleteValue(k)
			} else {
				b.parent.cacheValue(k, v.value, true)
			}
		}
		if db, ok := b.store.(*storage.DebugBatch); ok {
			db.PretendWrite()
		}
		return b.store.Commit()
	}

	for k, v := range b.values {
		if !v.dirty {
			continue
		}

		if v.deleted {
			err := b.store.Delete(k)
			if err != nil {
				return errors.UnknownError.WithFormat("delete %v: %w", k, err)
			}
			continue
		}

		data, err := v.value.MarshalBinary()
		if err != nil {
			return errors.EncodingError.WithFormat("marshal %v: %w", k, err)
		}

		err = b.store.Put(k, data)
		if err != nil {
			return errors.UnknownError.WithFormat("store %v: %w", k, err)
		}
	}
	return b.store.Commit()
}

// Discard discards pending writes. Attempting to use the Batch after calling
// Discard will result in a panic.
func (b *Batch) Discard() {
	if !b.done && b.dirty {
		b.logger.Debug("Discarding a dirty batch")
	}
	b.done = true
	b.store.Discard()
}

// Dirty returns true if anything has been changed.
func (b *Batch) Dirty() bool {
	return b.dirty
}
