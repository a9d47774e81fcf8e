// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/dungeonfi/dungeon/cache"
	"github.com/dungeonfi/dungeon/kv"
	"github.com/dungeonfi/dungeon/log"
)

const storageBucket = kv.Bucket("s.")

var logger = log.WithContext("pkg", "state")

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater create a new stater keeping storage under its own bucket of store.
// The cache of committed slots is disabled when cacheSize <= 0.
func NewStater(store kv.Store, cacheSize int) *Stater {
	s := &Stater{store: store}
	if cacheSize > 0 {
		s.cache, _ = cache.NewLRU(cacheSize)
	}
	return s
}

// NewState create a new state object over the latest committed storage.
func (s *Stater) NewState() *State {
	return New(storageBucket.NewGetter(s.store), s.cache)
}

// NewReadOnly creates a state over a snapshot of the committed storage.
// Changes made to it are never persisted. release must be called when done.
func (s *Stater) NewReadOnly() (st *State, release func(), err error) {
	snapshot, err := s.store.Snapshot()
	if err != nil {
		return nil, nil, &Error{err}
	}
	return New(storageBucket.NewGetter(snapshot), nil), snapshot.Release, nil
}

// Commit puts the stage into bulk and writes the bulk.
// bulk must come from the store the stater was created with, so other
// records put into it are persisted atomically with the stage.
func (s *Stater) Commit(stage *Stage, bulk kv.Bulk) error {
	if err := stage.Put(storageBucket.NewPutter(bulk)); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	metricStorageCounter().AddWithLabel(int64(stage.Len()), map[string]string{"op": "commit"})

	if s.cache != nil {
		for k, v := range stage.changes {
			s.cache.Add(k, v)
		}
		if hits, misses, moved := s.cache.Stats().Report(); moved {
			logger.Debug("storage cache stats", "hit", hits, "miss", misses, "rate", s.cache.Stats().Rate())
		}
	}
	return nil
}
