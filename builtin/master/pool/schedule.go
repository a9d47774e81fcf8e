// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
)

// Schedule is the catch-up of a burn pool over whole elapsed intervals.
type Schedule struct {
	Intervals uint32
	Reward    *uint256.Int // intervals * reward per interval
	Burn      *uint256.Int // intervals * burn per interval, capped at the total staked
	Next      uint32       // last reward block once settled
}

// Due computes the schedule of a burn or multiburn pool at block.
// A partial interval is left for later.
func (p *Pool) Due(block uint32) (*Schedule, error) {
	s := &Schedule{
		Reward: new(uint256.Int),
		Burn:   new(uint256.Int),
		Next:   p.LastRewardBlock,
	}
	if block <= p.LastRewardBlock || p.Interval == 0 {
		return s, nil
	}
	s.Intervals = (block - p.LastRewardBlock) / p.Interval
	if s.Intervals == 0 {
		return s, nil
	}
	n := uint256.NewInt(uint64(s.Intervals))

	if _, overflow := s.Reward.MulOverflow(n, p.RewardPerInterval); overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "schedule: reward overflow")
	}
	if _, overflow := s.Burn.MulOverflow(n, p.BurnPerInterval); overflow || s.Burn.Gt(p.TotalStaked) {
		s.Burn.Set(p.TotalStaked)
	}
	s.Next = p.LastRewardBlock + s.Intervals*p.Interval
	return s, nil
}
