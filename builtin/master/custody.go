// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// transferFailure classifies a rejected collaborator call.
// Infrastructure failures are passed through.
func transferFailure(err error, msg string) error {
	if reverts.IsRevertErr(err) {
		return reverts.Wrap(reverts.ErrTransferFailure, errors.WithMessage(err, msg))
	}
	return errors.WithMessage(err, msg)
}

func (m *Master) token(addr dungeon.Address) (Token, error) {
	token, err := m.tokens(addr)
	if err != nil {
		return nil, errors.WithMessagef(err, "resolve token %v", addr)
	}
	return token, nil
}

func (m *Master) mint(to dungeon.Address, amount *uint256.Int) error {
	if err := m.reward.Mint(to, amount); err != nil {
		return transferFailure(err, "mint reward")
	}
	return nil
}

// payout sends amount of reward from custody.
// A custody that can't cover it aborts the call rather than short the staker.
func (m *Master) payout(to dungeon.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	custody, err := m.reward.BalanceOf(m.Address())
	if err != nil {
		return err
	}
	if custody.Lt(amount) {
		return reverts.New(reverts.ErrTransferFailure, "pay reward: custody short")
	}
	if err := m.reward.Transfer(to, amount); err != nil {
		return transferFailure(err, "pay reward")
	}
	return nil
}

// pull takes amount of every staked token of p from the account of from into custody.
func (m *Master) pull(p *pool.Pool, from dungeon.Address, amount *uint256.Int) error {
	for _, addr := range p.StakedTokens {
		token, err := m.token(addr)
		if err != nil {
			return err
		}
		if err := token.TransferFrom(m.Address(), from, m.Address(), amount); err != nil {
			return transferFailure(err, "pull stake")
		}
	}
	return nil
}

// push sends amount of every staked token of p from custody to to.
func (m *Master) push(p *pool.Pool, to dungeon.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	for _, addr := range p.StakedTokens {
		token, err := m.token(addr)
		if err != nil {
			return err
		}
		if err := token.Transfer(m.Address(), to, amount); err != nil {
			return transferFailure(err, "push stake")
		}
	}
	return nil
}

// burn destroys amount of every staked token of p held in custody.
func (m *Master) burn(p *pool.Pool, amount *uint256.Int) error {
	for _, addr := range p.StakedTokens {
		token, err := m.token(addr)
		if err != nil {
			return err
		}
		if burner, ok := token.(Burner); ok {
			err = burner.Burn(m.Address(), amount)
		} else {
			err = token.Transfer(m.Address(), dungeon.BurnAddress, amount)
		}
		if err != nil {
			return transferFailure(err, "burn stake")
		}
	}
	return nil
}
