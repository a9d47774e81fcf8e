// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/master/accumulator"
	"github.com/dungeonfi/dungeon/builtin/master/fees"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/master/position"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// accrual is a pool brought up to date, before anything is written or minted.
type accrual struct {
	pool   *pool.Pool
	minted fees.Shares
	burn   *uint256.Int // principal to burn from every staked token

	// set when the burn drained or diluted the pool
	closed      bool
	closedEpoch uint64
	closedAcc   *uint256.Int
}

// accrue computes the update of p at block. p is left untouched.
func (m *Master) accrue(p *pool.Pool, block uint32, cfg *Config) (*accrual, error) {
	a := &accrual{
		pool:   p.Clone(),
		minted: fees.Split(new(uint256.Int), cfg.policy(p.Kind)),
		burn:   new(uint256.Int),
	}
	next := a.pool

	if block <= next.LastRewardBlock {
		return a, nil
	}
	if next.IsEmpty() {
		next.LastRewardBlock = block
		return a, nil
	}

	var gross *uint256.Int
	switch next.Kind {
	case pool.KindNormal:
		totalWeight, err := m.pools.TotalWeight()
		if err != nil {
			return nil, err
		}
		if gross, err = normalReward(cfg.RewardPerBlock, next.Weight, totalWeight, block-next.LastRewardBlock); err != nil {
			return nil, err
		}
		next.LastRewardBlock = block
	case pool.KindBurn, pool.KindMultiBurn:
		s, err := next.Due(block)
		if err != nil {
			return nil, err
		}
		if s.Intervals == 0 {
			return a, nil
		}
		gross = s.Reward
		a.burn = s.Burn
		next.LastRewardBlock = s.Next
	default:
		return nil, reverts.New(reverts.ErrInvalidPool, "pool: unknown kind")
	}

	a.minted = fees.Split(gross, cfg.policy(next.Kind))
	acc, err := accumulator.Bump(next.AccRewardPerShare, a.minted.Staker, next.TotalShares)
	if err != nil {
		return nil, err
	}
	next.AccRewardPerShare = acc

	if !a.burn.IsZero() {
		next.TotalStaked.Sub(next.TotalStaked, a.burn)
		if next.Diluted() {
			// the dust left behind the old shares goes with them
			a.burn.Add(a.burn, next.TotalStaked)
			next.TotalStaked.Clear()
			a.closed = true
			a.closedEpoch = next.Epoch
			a.closedAcc = acc.Clone()
			next.Epoch++
			next.TotalShares = new(uint256.Int)
		}
	}
	return a, nil
}

// normalReward returns rewardPerBlock * weight / totalWeight * blocks.
func normalReward(rewardPerBlock *uint256.Int, weight, totalWeight uint64, blocks uint32) (*uint256.Int, error) {
	if totalWeight == 0 {
		return new(uint256.Int), nil
	}
	perBlock, overflow := new(uint256.Int).MulDivOverflow(rewardPerBlock, uint256.NewInt(weight), uint256.NewInt(totalWeight))
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "reward: overflow")
	}
	gross, overflow := perBlock.MulOverflow(perBlock, uint256.NewInt(uint64(blocks)))
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "reward: overflow")
	}
	return gross, nil
}

// store writes the updated pool record.
func (m *Master) store(id uint64, a *accrual) error {
	if a.closed {
		if err := m.pools.RecordEpoch(id, a.closedEpoch, a.closedAcc); err != nil {
			return err
		}
		logger.Debug("pool drained", "pool", id, "epoch", a.closedEpoch)
	}
	return m.pools.Update(id, a.pool)
}

// distribute mints the rewards of an accrual and burns its principal.
// The staker share is minted into custody.
func (m *Master) distribute(a *accrual, cfg *Config) error {
	operator, err := m.operator.Get()
	if err != nil {
		return err
	}
	kind := map[string]string{"kind": a.pool.Kind.String()}
	for _, mint := range []struct {
		to     dungeon.Address
		amount *uint256.Int
	}{
		{operator, a.minted.Operator},
		{cfg.Treasury, a.minted.Treasury},
		{m.Address(), a.minted.Staker},
	} {
		if mint.amount.IsZero() {
			continue
		}
		if err := m.mint(mint.to, mint.amount); err != nil {
			return err
		}
		metricMints().AddWithLabel(1, kind)
	}

	if a.burn.IsZero() {
		return nil
	}
	if err := m.burn(a.pool, a.burn); err != nil {
		return err
	}
	metricBurns().AddWithLabel(1, kind)
	return nil
}

// pending returns the reward owed to pos once the accrual is applied.
// Positions of a closed epoch are paid up to the end of that epoch.
func (m *Master) pending(id uint64, a *accrual, pos *position.Position) (*uint256.Int, error) {
	if pos.Epoch == a.pool.Epoch {
		return accumulator.Pending(pos.Amount, a.pool.AccRewardPerShare, pos.RewardDebt)
	}
	if pos.IsEmpty() {
		return new(uint256.Int), nil
	}
	acc := a.closedAcc
	if !a.closed || pos.Epoch != a.closedEpoch {
		var err error
		if acc, err = m.pools.EpochAcc(id, pos.Epoch); err != nil {
			return nil, err
		}
	}
	return accumulator.Pending(pos.Amount, acc, pos.RewardDebt)
}

// settle returns the reward owed to the position of user, and the position
// moved to the current epoch of the accrued pool.
func (m *Master) settle(id uint64, a *accrual, user dungeon.Address) (*position.Position, *uint256.Int, error) {
	pos, err := m.positions.Get(id, user)
	if err != nil {
		return nil, nil, err
	}
	pending, err := m.pending(id, a, pos)
	if err != nil {
		return nil, nil, err
	}
	if pos.Epoch != a.pool.Epoch {
		pos = &position.Position{
			Amount:     new(uint256.Int),
			RewardDebt: new(uint256.Int),
			Epoch:      a.pool.Epoch,
		}
	}
	logger.Debug("settled", "pool", id, "user", user, "pending", pending)
	return pos, pending, nil
}
