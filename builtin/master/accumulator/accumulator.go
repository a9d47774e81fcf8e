// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accumulator implements the reward-per-share accumulator.
// Values are scaled by dungeon.Precision and rounded down.
package accumulator

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// Bump returns acc increased by reward spread over shares.
// acc is returned unchanged when there are no shares.
func Bump(acc, reward, shares *uint256.Int) (*uint256.Int, error) {
	if shares.IsZero() {
		return acc.Clone(), nil
	}
	inc, overflow := new(uint256.Int).MulDivOverflow(reward, dungeon.Precision, shares)
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "accumulator: bump overflow")
	}
	next, overflow := inc.AddOverflow(inc, acc)
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "accumulator: bump overflow")
	}
	return next, nil
}

// Pending returns the reward earned by amount shares since debt was checkpointed.
func Pending(amount, acc, debt *uint256.Int) (*uint256.Int, error) {
	delta, underflow := new(uint256.Int).SubOverflow(acc, debt)
	if underflow {
		return nil, reverts.New(reverts.ErrArithmetic, "accumulator: debt above accumulator")
	}
	pending, overflow := new(uint256.Int).MulDivOverflow(amount, delta, dungeon.Precision)
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "accumulator: pending overflow")
	}
	return pending, nil
}

// Debt returns the checkpoint to store after a settlement at acc.
func Debt(acc *uint256.Int) *uint256.Int {
	return acc.Clone()
}
