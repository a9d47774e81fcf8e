// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "github.com/dungeonfi/dungeon/dungeon"

// Address is a wrapper for storage and retrieval of an address. Similar to storing an address in a smart contract.
type Address struct {
	raw *Raw[dungeon.Address]
}

func NewAddress(context *Context, pos dungeon.Bytes32) *Address {
	return &Address{raw: NewRaw[dungeon.Address](context, pos)}
}

func (a *Address) Get() (dungeon.Address, error) {
	return a.raw.Get()
}

func (a *Address) Set(addr dungeon.Address) error {
	return a.raw.Set(addr)
}
