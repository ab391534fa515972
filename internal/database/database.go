// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/storage"
	"gitlab.com/meridiannetwork/meridian/internal/storage/badger"
	"gitlab.com/meridiannetwork/meridian/internal/storage/memory"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

// Database is a Meridian ledger database.
type Database struct {
	store       storage.KeyValueStore
	logger      logging.OptionalLogger
	nextBatchId int
}

// New creates a new database using the given key-value store.
func New(store storage.KeyValueStore, logger logging.Logger) *Database {
	d := new(Database)
	d.store = store

	if logger != nil {
		d.logger.L = logger.With("module", "database")
	}

	return d
}

// OpenInMemory opens a database backed by an in-memory key-value store.
func OpenInMemory(logger logging.Logger) *Database {
	store := memory.New(nil)
	return New(store, logger)
}

// OpenBadger opens a database backed by a Badger key-value store.
func OpenBadger(filepath string, logger logging.Logger) (*Database, error) {
	var storeLogger logging.Logger
	if logger != nil {
		storeLogger = logger.With("module", "storage")
	}

	store, err := badger.New(filepath, storeLogger)
	if err != nil {
		return nil, err
	}
	return New(store, logger), nil
}

// Open opens a key-value store and creates a new database with it.
func Open(cfg *config.Config, logger logging.Logger) (*Database, error) {
	switch cfg.Storage.Type {
	case config.MemoryStorage:
		return OpenInMemory(logger), nil

	case config.BadgerStorage:
		return OpenBadger(config.MakeAbsolute(cfg.RootDir, cfg.Storage.Path), logger)

	default:
		return nil, errors.BadRequest.WithFormat("unknown storage format %q", cfg.Storage.Type)
	}
}

// Close closes the database and the key-value store.
func (d *Database) Close() error {
	return d.store.Close()
}

// View runs the function with a read-only batch.
func (d *Database) View(fn func(batch *Batch) error) error {
	batch := d.Begin(false)
	defer batch.Discard()
	return fn(batch)
}

// Update runs the function with a writable batch and commits if the function
// succeeds.
func (d *Database) Update(fn func(batch *Batch) error) error {
	batch := d.Begin(true)
	defer batch.Discard()
	err := fn(batch)
	if err != nil {
		return err
	}
	return batch.Commit()
}
