// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dungeonfi/dungeon/kv"
)

// Stage is the write set of a state, ready to be persisted.
type Stage struct {
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Put writes changes into w. Cleared slots are deleted.
func (s *Stage) Put(w kv.Putter) error {
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = w.Delete(k.Bytes())
		} else {
			err = w.Put(k.Bytes(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	return nil
}
