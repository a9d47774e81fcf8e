// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package iron implements IRON, the reward token, as a builtin contract.
// Minting and burning are gated by the minter and burner roles, both settable by the owner.
package iron

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/erc20"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/builtin/solidity"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/log"
	"github.com/dungeonfi/dungeon/state"
)

const (
	Name   = "IronToken"
	Symbol = "IRON"
)

var (
	logger = log.WithContext("pkg", "iron")

	slotOwner  = solidity.Slot("owner")
	slotMinter = solidity.Slot("minter")
	slotBurner = solidity.Slot("burner")
)

// Iron is the reward token.
type Iron struct {
	*erc20.Token
	owner  *solidity.Address
	minter *solidity.Address
	burner *solidity.Address
}

// New creates the IRON instance living at addr.
func New(addr dungeon.Address, state *state.State) *Iron {
	ctx := solidity.NewContext(addr, state)
	return &Iron{
		Token:  erc20.New(addr, state),
		owner:  solidity.NewAddress(ctx, slotOwner),
		minter: solidity.NewAddress(ctx, slotMinter),
		burner: solidity.NewAddress(ctx, slotBurner),
	}
}

// Initialize sets metadata and roles.
func (i *Iron) Initialize(owner, minter, burner dungeon.Address) error {
	if err := i.Token.Initialize(Name, Symbol); err != nil {
		return err
	}
	if err := i.owner.Set(owner); err != nil {
		return err
	}
	if err := i.minter.Set(minter); err != nil {
		return err
	}
	return i.burner.Set(burner)
}

func (i *Iron) Owner() (dungeon.Address, error)  { return i.owner.Get() }
func (i *Iron) Minter() (dungeon.Address, error) { return i.minter.Get() }
func (i *Iron) Burner() (dungeon.Address, error) { return i.burner.Get() }

func (i *Iron) requireRole(role *solidity.Address, caller dungeon.Address, msg string) error {
	holder, err := role.Get()
	if err != nil {
		return err
	}
	if holder != caller {
		return reverts.New(reverts.ErrAccessControl, msg)
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (i *Iron) TransferOwnership(caller, newOwner dungeon.Address) error {
	if err := i.requireRole(i.owner, caller, "Ownable: caller is not the owner"); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ErrInvalidConfig, "Ownable: new owner is the zero address")
	}
	logger.Info("ownership transferred", "from", caller, "to", newOwner)
	return i.owner.Set(newOwner)
}

func (i *Iron) SetMinter(caller, minter dungeon.Address) error {
	if err := i.requireRole(i.owner, caller, "Ownable: caller is not the owner"); err != nil {
		return err
	}
	return i.minter.Set(minter)
}

func (i *Iron) SetBurner(caller, burner dungeon.Address) error {
	if err := i.requireRole(i.owner, caller, "Ownable: caller is not the owner"); err != nil {
		return err
	}
	return i.burner.Set(burner)
}

// Mint creates amount IRON for to. Only the minter may mint.
func (i *Iron) Mint(caller, to dungeon.Address, amount *uint256.Int) error {
	if err := i.requireRole(i.minter, caller, "IRON: caller is not the minter"); err != nil {
		return err
	}
	return i.Token.Mint(to, amount)
}

// Burn destroys amount IRON held by from. Only the burner may burn.
func (i *Iron) Burn(caller, from dungeon.Address, amount *uint256.Int) error {
	if err := i.requireRole(i.burner, caller, "IRON: caller is not the burner"); err != nil {
		return err
	}
	return i.Token.Burn(from, amount)
}

// Bind returns the capability of holder over IRON.
// Role checks still apply to every call made through it.
func (i *Iron) Bind(holder dungeon.Address) *Capability {
	return &Capability{iron: i, holder: holder}
}

// Capability is IRON seen from a fixed holder.
type Capability struct {
	iron   *Iron
	holder dungeon.Address
}

func (c *Capability) Address() dungeon.Address {
	return c.iron.Address()
}

func (c *Capability) Mint(to dungeon.Address, amount *uint256.Int) error {
	return c.iron.Mint(c.holder, to, amount)
}

func (c *Capability) Burn(from dungeon.Address, amount *uint256.Int) error {
	return c.iron.Burn(c.holder, from, amount)
}

// Transfer moves amount IRON from the holder to to.
func (c *Capability) Transfer(to dungeon.Address, amount *uint256.Int) error {
	return c.iron.Transfer(c.holder, to, amount)
}

func (c *Capability) BalanceOf(addr dungeon.Address) (*uint256.Int, error) {
	return c.iron.BalanceOf(addr)
}

func (c *Capability) TotalSupply() (*uint256.Int, error) {
	return c.iron.TotalSupply()
}
