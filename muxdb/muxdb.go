// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package muxdb implements the storage layer of the ledger.
// It multiplexes named kv-stores onto a single leveldb instance.
package muxdb

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/dungeonfi/dungeon/kv"
)

const (
	propStoreName = "muxdb.props"
	configKey     = "config"

	// SchemaVersion is bumped whenever the persisted layout changes.
	SchemaVersion uint32 = 1
)

// Options optional parameters for MuxDB.
type Options struct {
	// OpenFilesCacheCapacity is the capacity of open files caching for underlying database.
	OpenFilesCacheCapacity int
	// ReadCacheMB is the size of read cache for underlying database.
	ReadCacheMB int
	// WriteBufferMB is the size of write buffer for underlying database.
	WriteBufferMB int
}

// MuxDB is the database holding every named store of the ledger.
type MuxDB struct {
	engine *levelEngine
}

// Open opens or creates DB at the given path.
func Open(path string, options *Options) (*MuxDB, error) {
	ldbOpts := opt.Options{
		OpenFilesCacheCapacity: options.OpenFilesCacheCapacity,
		BlockCacheCapacity:     options.ReadCacheMB * opt.MiB,
		WriteBuffer:            options.WriteBufferMB * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
		BlockSize:              1024 * 32,
		CompactionTableSize:    4 * opt.MiB,
	}

	ldb, err := leveldb.OpenFile(path, &ldbOpts)
	if _, corrupted := err.(*dberrors.ErrCorrupted); corrupted {
		logger.Warn("database corrupted, recovering", "path", path)
		ldb, err = leveldb.RecoverFile(path, &ldbOpts)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}

	db := &MuxDB{newLevelEngine(ldb)}

	cfg := config{SchemaVersion: SchemaVersion}
	if err := cfg.LoadOrSave(db.NewStore(propStoreName)); err != nil {
		ldb.Close()
		return nil, err
	}
	return db, nil
}

// NewMem creates a memory-backed DB.
func NewMem() *MuxDB {
	ldb, _ := leveldb.Open(storage.NewMemStorage(), nil)
	return &MuxDB{newLevelEngine(ldb)}
}

// Close closes the DB.
func (db *MuxDB) Close() error {
	return db.engine.Close()
}

// NewStore creates named kv-store.
func (db *MuxDB) NewStore(name string) kv.Store {
	return kv.Bucket(name + ".").NewStore(db.engine)
}

type config struct {
	SchemaVersion uint32
}

// LoadOrSave loads the persisted config, or saves c if there's none.
// A DB written by another schema is refused.
func (c *config) LoadOrSave(store kv.Store) error {
	data, err := store.Get([]byte(configKey))
	if err == nil {
		var saved config
		if err := json.Unmarshal(data, &saved); err != nil {
			return errors.Wrap(err, "decode muxdb config")
		}
		if saved.SchemaVersion != c.SchemaVersion {
			return fmt.Errorf("incompatible database schema: want %d, got %d", c.SchemaVersion, saved.SchemaVersion)
		}
		return nil
	}
	if !store.IsNotFound(err) {
		return err
	}

	data, err = json.Marshal(c)
	if err != nil {
		return err
	}
	return store.Put([]byte(configKey), data)
}
