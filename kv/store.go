// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv holds the key/value abstractions the ledger is stored through.
package kv

type (
	// Getter reads keys. A missing key is reported as an error that
	// IsNotFound recognizes.
	Getter interface {
		Get(key []byte) ([]byte, error)
		Has(key []byte) (bool, error)
		IsNotFound(err error) bool
	}

	// Putter writes keys.
	Putter interface {
		Put(key, val []byte) error
		Delete(key []byte) error
	}

	// Snapshot is a read view frozen at creation. It must be released.
	Snapshot interface {
		Getter
		Release()
	}

	// Bulk buffers writes until Write applies all of them at once.
	Bulk interface {
		Putter
		Write() error
	}
)

// Store is a Getter and Putter that can also snapshot and batch.
type Store interface {
	Getter
	Putter
	Snapshot() (Snapshot, error)
	Bulk() Bulk
}
