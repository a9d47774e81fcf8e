// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fees splits minted rewards between stakers and fee recipients.
package fees

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// Policy holds the fee rates in basis points. A policy without treasury fee is a single fee policy.
type Policy struct {
	DevBP      uint64
	TreasuryBP uint64
}

// Dual charges both the operator and the treasury fee.
func Dual(devBP, treasuryBP uint64) Policy {
	return Policy{DevBP: devBP, TreasuryBP: treasuryBP}
}

// Single charges the operator fee only.
func Single(devBP uint64) Policy {
	return Policy{DevBP: devBP}
}

// Validate rejects rates that could take more than the gross amount.
func (p Policy) Validate() error {
	if p.DevBP > dungeon.MaxBP || p.TreasuryBP > dungeon.MaxBP || p.DevBP+p.TreasuryBP > dungeon.MaxBP {
		return reverts.New(reverts.ErrInvalidConfig, "fees: basis points above 10000")
	}
	return nil
}

// Shares is the outcome of a split. The parts always sum to the gross amount.
type Shares struct {
	Staker   *uint256.Int
	Operator *uint256.Int
	Treasury *uint256.Int
}

// Split divides gross according to p. Fees round down, the staker takes the remainder.
// p must be valid.
func Split(gross *uint256.Int, p Policy) Shares {
	operator := Portion(gross, p.DevBP)
	treasury := Portion(gross, p.TreasuryBP)

	staker := new(uint256.Int).Sub(gross, operator)
	staker.Sub(staker, treasury)
	return Shares{
		Staker:   staker,
		Operator: operator,
		Treasury: treasury,
	}
}

// Portion returns amount * bp / 10000, rounded down. bp must not exceed 10000.
func Portion(amount *uint256.Int, bp uint64) *uint256.Int {
	// cannot overflow as the result is at most amount
	z, _ := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(bp), uint256.NewInt(dungeon.MaxBP))
	return z
}
