// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/dungeonfi/dungeon/kv"
	"github.com/dungeonfi/dungeon/log"
)

var (
	logger = log.WithContext("pkg", "muxdb")

	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
)

type levelEngine struct {
	db        *leveldb.DB
	batchPool *sync.Pool
}

func newLevelEngine(db *leveldb.DB) *levelEngine {
	return &levelEngine{
		db,
		&sync.Pool{
			New: func() any {
				return &leveldb.Batch{}
			},
		},
	}
}

func (ldb *levelEngine) Close() error {
	return ldb.db.Close()
}

func (ldb *levelEngine) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (ldb *levelEngine) Get(key []byte) ([]byte, error) {
	val, err := ldb.db.Get(key, &readOpt)
	// val will be []byte{} if error occurs, which is not expected
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (ldb *levelEngine) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *levelEngine) Put(key, val []byte) error {
	return ldb.db.Put(key, val, &writeOpt)
}

func (ldb *levelEngine) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

func (ldb *levelEngine) Snapshot() (kv.Snapshot, error) {
	s, err := ldb.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &struct {
		kv.GetFunc
		kv.HasFunc
		kv.IsNotFoundFunc
		kv.ReleaseFunc
	}{
		func(key []byte) ([]byte, error) { return s.Get(key, &readOpt) },
		func(key []byte) (bool, error) { return s.Has(key, &readOpt) },
		ldb.IsNotFound,
		s.Release,
	}, nil
}

// Bulk returns a batch that is written in one go, never flushed half way.
func (ldb *levelEngine) Bulk() kv.Bulk {
	batch := ldb.batchPool.Get().(*leveldb.Batch)
	batch.Reset()

	return &struct {
		kv.PutFunc
		kv.DeleteFunc
		kv.WriteFunc
	}{
		func(key, val []byte) error {
			batch.Put(key, val)
			return nil
		},
		func(key []byte) error {
			batch.Delete(key)
			return nil
		},
		func() error {
			defer ldb.batchPool.Put(batch)
			if batch.Len() == 0 {
				return nil
			}
			start := time.Now()
			defer func() {
				metricBatchWriteDuration().Observe(time.Since(start).Milliseconds())
			}()
			return ldb.db.Write(batch, &writeOpt)
		},
	}
}
