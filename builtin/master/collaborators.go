// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/dungeon"
)

// RewardToken is the capability of the master over the reward token.
// Transfers move tokens out of the master's custody.
type RewardToken interface {
	Address() dungeon.Address
	Mint(to dungeon.Address, amount *uint256.Int) error
	Burn(from dungeon.Address, amount *uint256.Int) error
	Transfer(to dungeon.Address, amount *uint256.Int) error
	BalanceOf(addr dungeon.Address) (*uint256.Int, error)
	TotalSupply() (*uint256.Int, error)
}

// Token is a staked token.
type Token interface {
	TransferFrom(spender, from, to dungeon.Address, amount *uint256.Int) error
	Transfer(from, to dungeon.Address, amount *uint256.Int) error
	BalanceOf(addr dungeon.Address) (*uint256.Int, error)
}

// Burner is implemented by staked tokens able to destroy supply.
// Burned principal of other tokens is sent to dungeon.BurnAddress.
type Burner interface {
	Burn(from dungeon.Address, amount *uint256.Int) error
}

// TokenResolver resolves a staked token by address.
type TokenResolver func(addr dungeon.Address) (Token, error)
