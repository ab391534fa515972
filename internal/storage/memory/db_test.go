// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
)

func TestDatabase(t *testing.T) {
	db := New(nil)
	batch := db.Begin(true)
	defer batch.Discard()

	for i := 0; i < 1000; i++ {
		err := batch.Put(storage.MakeKey("answer", i), []byte(fmt.Sprintf("%x this much data ", i)))
		require.NoError(t, err)
	}
	for i := 0; i < 1000; i++ {
		val, err := batch.Get(storage.MakeKey("answer", i))
		require.NoErrorf(t, err, "no value found for %d", i)
		require.Equal(t, fmt.Sprintf("%x this much data ", i), string(val))
	}
}

func TestDebugBatch(t *testing.T) {
	// A non-nil logger wraps every batch in a debug batch
	db := New(logging.NullLogger{})
	key := storage.MakeKey("foo")

	batch := db.Begin(true)
	require.IsType(t, (*storage.DebugBatch)(nil), batch)
	require.NoError(t, batch.Put(key, []byte("bar")))
	require.NoError(t, batch.Commit())

	batch = db.Begin(false)
	defer batch.Discard()
	v, err := batch.Get(key)
	require.NoError(t, err)
	require.Equal(t, "bar", string(v))
}

func TestCommitIsVisible(t *testing.T) {
	db := New(nil)
	key := storage.MakeKey("foo")

	batch := db.Begin(true)
	require.NoError(t, batch.Put(key, []byte("bar")))
	require.NoError(t, batch.Commit())

	batch = db.Begin(false)
	defer batch.Discard()
	v, err := batch.Get(key)
	require.NoError(t, err)
	require.Equal(t, "bar", string(v))
}

func TestDiscardIsNotVisible(t *testing.T) {
	db := New(nil)
	key := storage.MakeKey("foo")

	batch := db.Begin(true)
	require.NoError(t, batch.Put(key, []byte("bar")))
	batch.Discard()

	batch = db.Begin(false)
	defer batch.Discard()
	_, err := batch.Get(key)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	db := New(nil)
	key := storage.MakeKey("foo")

	batch := db.Begin(true)
	require.NoError(t, batch.Put(key, []byte("bar")))
	require.NoError(t, batch.Commit())

	batch = db.Begin(true)
	require.NoError(t, batch.Delete(key))

	// The delete is visible within the batch before it commits
	_, err := batch.Get(key)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, batch.Commit())

	batch = db.Begin(false)
	defer batch.Discard()
	_, err = batch.Get(key)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNestedBatch(t *testing.T) {
	db := New(nil)
	key := storage.MakeKey("foo")

	batch := db.Begin(true)
	defer batch.Discard()

	t.Run("discarded sub-batch leaves no trace", func(t *testing.T) {
		sub := batch.Begin(true)
		require.NoError(t, sub.Put(key, []byte("bar")))
		sub.Discard()

		_, err := batch.Get(key)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("committed sub-batch stages into the parent", func(t *testing.T) {
		sub := batch.Begin(true)
		require.NoError(t, sub.Put(key, []byte("bar")))
		require.NoError(t, sub.Commit())

		v, err := batch.Get(key)
		require.NoError(t, err)
		require.Equal(t, "bar", string(v))
	})

	// Nothing hits the store until the outer batch commits
	view := db.Begin(false)
	_, err := view.Get(key)
	require.ErrorIs(t, err, storage.ErrNotFound)
	view.Discard()

	require.NoError(t, batch.Commit())

	view = db.Begin(false)
	defer view.Discard()
	v, err := view.Get(key)
	require.NoError(t, err)
	require.Equal(t, "bar", string(v))
}
