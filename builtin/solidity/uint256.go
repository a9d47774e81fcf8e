// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
// Add and Sub revert with reverts.ErrArithmetic instead of wrapping around.
type Uint256 struct {
	raw *Raw[*uint256.Int]
}

func NewUint256(context *Context, pos dungeon.Bytes32) *Uint256 {
	return &Uint256{raw: NewRaw[*uint256.Int](context, pos)}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	return u.raw.Get()
}

func (u *Uint256) Set(value *uint256.Int) error {
	return u.raw.Set(value)
}

func (u *Uint256) Add(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, overflow := storage.AddOverflow(storage, value); overflow {
		return reverts.New(reverts.ErrArithmetic, "addition overflow")
	}
	return u.Set(storage)
}

func (u *Uint256) Sub(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, underflow := storage.SubOverflow(storage, value); underflow {
		return reverts.New(reverts.ErrArithmetic, "subtraction underflow")
	}
	return u.Set(storage)
}
