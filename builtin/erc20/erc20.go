// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package erc20 implements a fungible token as a builtin contract.
package erc20

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/builtin/solidity"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

var (
	slotName       = solidity.Slot("name")
	slotSymbol     = solidity.Slot("symbol")
	slotSupply     = solidity.Slot("total-supply")
	slotBalances   = solidity.Slot("balances")
	slotAllowances = solidity.Slot("allowances")
)

type allowanceKey struct {
	owner, spender dungeon.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// Token implements ERC20 balances, allowances and supply on the state.
type Token struct {
	context    *solidity.Context
	name       *solidity.Raw[string]
	symbol     *solidity.Raw[string]
	supply     *solidity.Uint256
	balances   *solidity.Mapping[dungeon.Address, *uint256.Int]
	allowances *solidity.Mapping[allowanceKey, *uint256.Int]
}

// New creates a token instance living at addr.
func New(addr dungeon.Address, state *state.State) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		context:    ctx,
		name:       solidity.NewRaw[string](ctx, slotName),
		symbol:     solidity.NewRaw[string](ctx, slotSymbol),
		supply:     solidity.NewUint256(ctx, slotSupply),
		balances:   solidity.NewMapping[dungeon.Address, *uint256.Int](ctx, slotBalances),
		allowances: solidity.NewMapping[allowanceKey, *uint256.Int](ctx, slotAllowances),
	}
}

func (t *Token) Address() dungeon.Address {
	return t.context.Address()
}

// Initialize sets the token metadata.
func (t *Token) Initialize(name, symbol string) error {
	if err := t.name.Set(name); err != nil {
		return err
	}
	return t.symbol.Set(symbol)
}

func (t *Token) Name() (string, error)   { return t.name.Get() }
func (t *Token) Symbol() (string, error) { return t.symbol.Get() }

func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.supply.Get()
}

func (t *Token) BalanceOf(addr dungeon.Address) (*uint256.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender dungeon.Address) (*uint256.Int, error) {
	return t.allowances.Get(allowanceKey{owner, spender})
}

// Mint creates amount tokens and assigns them to addr.
// It is not access controlled, contracts embedding Token gate it.
func (t *Token) Mint(to dungeon.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.ErrTransferFailure, "ERC20: mint to the zero address")
	}
	if err := t.supply.Add(amount); err != nil {
		return err
	}
	return t.credit(to, amount)
}

// Burn destroys amount tokens held by from.
func (t *Token) Burn(from dungeon.Address, amount *uint256.Int) error {
	if err := t.debit(from, amount, "ERC20: burn amount exceeds balance"); err != nil {
		return err
	}
	return t.supply.Sub(amount)
}

// Transfer moves amount tokens from the caller to to.
func (t *Token) Transfer(from, to dungeon.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.ErrTransferFailure, "ERC20: transfer to the zero address")
	}
	if err := t.debit(from, amount, "ERC20: transfer amount exceeds balance"); err != nil {
		return err
	}
	return t.credit(to, amount)
}

// Approve sets amount as the allowance of spender over the owner's tokens.
func (t *Token) Approve(owner, spender dungeon.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return reverts.New(reverts.ErrInvalidAmount, "ERC20: approve to the zero address")
	}
	return t.allowances.Set(allowanceKey{owner, spender}, amount.Clone())
}

// TransferFrom moves amount tokens from from to to, using the allowance of spender.
func (t *Token) TransferFrom(spender, from, to dungeon.Address, amount *uint256.Int) error {
	key := allowanceKey{from, spender}
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowance.Lt(amount) {
		return reverts.New(reverts.ErrInsufficientBalance, "ERC20: transfer amount exceeds allowance")
	}
	if err := t.allowances.Set(key, allowance.Sub(allowance, amount)); err != nil {
		return err
	}
	return t.Transfer(from, to, amount)
}

func (t *Token) credit(addr dungeon.Address, amount *uint256.Int) error {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	if _, overflow := bal.AddOverflow(bal, amount); overflow {
		return reverts.New(reverts.ErrArithmetic, "ERC20: balance overflow")
	}
	return t.balances.Set(addr, bal)
}

func (t *Token) debit(addr dungeon.Address, amount *uint256.Int, msg string) error {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return reverts.New(reverts.ErrInsufficientBalance, msg)
	}
	return t.balances.Set(addr, bal.Sub(bal, amount))
}
