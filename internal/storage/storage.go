// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package storage

import (
	"crypto/sha256"
	"encoding"
	"encoding/binary"
	"fmt"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// ErrNotFound is returned by KeyValueTxn.Get if the key is not found.
var ErrNotFound error = errors.NotFound.With("not found")

// ErrNotOpen is returned by Get, Put, and Close if the database is not open.
var ErrNotOpen error = errors.NotReady.With("not open")

// KeyLength is the fixed length of a storage key.
const KeyLength = 32

// Key is a record key. Keys are built by hashing in each segment, so
// MakeKey("a", "b") and MakeKey("a").Append("b") produce the same key.
type Key [KeyLength]byte

func (k Key) String() string { return fmt.Sprintf("%X", k[:]) }

// MakeKey builds a key from the given segments. If the first segment is
// itself a Key, the remaining segments are appended to it.
func MakeKey(v ...interface{}) Key {
	if len(v) == 0 {
		return Key{}
	}
	if k, ok := v[0].(Key); ok {
		return k.Append(v[1:]...)
	}
	var k Key
	return k.Append(v...)
}

// Append appends segments to the key, hashing each one in.
func (k Key) Append(v ...interface{}) Key {
	for _, v := range v {
		b := segmentBytes(v)
		c := make([]byte, len(k)+len(b))
		copy(c, k[:])
		copy(c[len(k):], b)
		k = sha256.Sum256(c)
	}
	return k
}

func segmentBytes(v interface{}) []byte {
	switch v := v.(type) {
	case Key:
		return v[:]
	case [KeyLength]byte:
		return v[:]
	case []byte:
		return v
	case string:
		return []byte(v)
	case uint:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v))
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, v)
		return b
	case int:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v))
		return b
	case int64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v))
		return b
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			panic(fmt.Errorf("marshal key segment: %w", err))
		}
		return b
	case fmt.Stringer:
		return []byte(v.String())
	default:
		panic(fmt.Errorf("cannot use %T as a key segment", v))
	}
}

type KeyValueTxn interface {
	// Get gets a value.
	Get(key Key) ([]byte, error)
	// Put puts a value.
	Put(key Key, value []byte) error
	// PutAll puts many values.
	PutAll(map[Key][]byte) error
	// Delete removes a value.
	Delete(key Key) error
	// Commit commits the transaction.
	Commit() error
	// Discard discards the transaction.
	Discard()
	// Begin begins a sub-transaction.
	Begin(writable bool) KeyValueTxn
}

type KeyValueStore interface {
	// Close closes the store.
	Close() error
	// Begin begins a transaction.
	Begin(writable bool) KeyValueTxn
}
