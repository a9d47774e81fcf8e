// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dungeonfi/dungeon/cache"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/kv"
	"github.com/dungeonfi/dungeon/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr dungeon.Address
	key  dungeon.Bytes32
}

// Bytes returns the persisted form of the key, address followed by slot.
func (k storageKey) Bytes() []byte {
	b := make([]byte, 0, len(k.addr)+len(k.key))
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// State manages the storage of all contracts.
type State struct {
	src   kv.Getter
	cache *cache.LRU // of committed values, optional
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object reading committed storage from src.
// The cache is optional.
func New(src kv.Getter, c *cache.LRU) *State {
	s := &State{
		src:   src,
		cache: c,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key storageKey) (rlp.RawValue, bool, error) {
	if s.cache == nil {
		v, err := s.load(key)
		return v, true, err
	}
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		return s.load(key)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(rlp.RawValue), true, nil
}

func (s *State) load(key storageKey) (rlp.RawValue, error) {
	metricStorageCounter().AddWithLabel(1, map[string]string{"op": "load"})

	data, err := s.src.Get(key.Bytes())
	if err != nil {
		if s.src.IsNotFound(err) {
			return rlp.RawValue{}, nil
		}
		return nil, err
	}
	return data, nil
}

// GetRawStorage returns storage value in rlp raw for given key.
// An empty value means the slot was never written.
func (s *State) GetRawStorage(addr dungeon.Address, key dungeon.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw. An empty value clears the slot.
func (s *State) SetRawStorage(addr dungeon.Address, key dungeon.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr dungeon.Address, key dungeon.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// dec is called with an empty slice for slots never written.
func (s *State) DecodeStorage(addr dungeon.Address, key dungeon.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the latest value of every slot written since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{changes}
}
