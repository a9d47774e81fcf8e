// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the contract storage of the ledger.
//
// Every contract owns a flat slot space addressed by (address, key). Writes are
// journaled in memory, can be reverted to any checkpoint, and are persisted
// in one batch by staging the state and committing it through a Stater.
package state
