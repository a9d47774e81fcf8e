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
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

func (m *Master) DepositNormalPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("deposit", func() error { return m.deposit(pool.KindNormal, caller, id, amount, block) })
}

func (m *Master) WithdrawNormalPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("withdraw", func() error { return m.withdraw(pool.KindNormal, caller, id, amount, block) })
}

func (m *Master) CollectNormalPool(caller dungeon.Address, id uint64, block uint32) error {
	return m.invoke("collect", func() error { return m.withdraw(pool.KindNormal, caller, id, new(uint256.Int), block) })
}

func (m *Master) DepositBurnPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("deposit", func() error { return m.deposit(pool.KindBurn, caller, id, amount, block) })
}

func (m *Master) WithdrawBurnPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("withdraw", func() error { return m.withdraw(pool.KindBurn, caller, id, amount, block) })
}

func (m *Master) CollectBurnPool(caller dungeon.Address, id uint64, block uint32) error {
	return m.invoke("collect", func() error { return m.withdraw(pool.KindBurn, caller, id, new(uint256.Int), block) })
}

// DepositMultiBurnPool stakes amount of every token of the pool.
func (m *Master) DepositMultiBurnPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("deposit", func() error { return m.deposit(pool.KindMultiBurn, caller, id, amount, block) })
}

// WithdrawMultiBurnPool unstakes amount of every token of the pool.
func (m *Master) WithdrawMultiBurnPool(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	return m.invoke("withdraw", func() error { return m.withdraw(pool.KindMultiBurn, caller, id, amount, block) })
}

func (m *Master) CollectMultiBurnPool(caller dungeon.Address, id uint64, block uint32) error {
	return m.invoke("collect", func() error { return m.withdraw(pool.KindMultiBurn, caller, id, new(uint256.Int), block) })
}

// EmergencyWithdrawNormalPool returns the whole stake of the caller without
// updating the pool. Pending rewards are forfeited and the emergency fee goes to the treasury.
func (m *Master) EmergencyWithdrawNormalPool(caller dungeon.Address, id uint64) error {
	return m.invoke("emergency-withdraw", func() error {
		cfg, p, err := m.load(pool.KindNormal, id)
		if err != nil {
			return err
		}
		pos, err := m.positions.Get(id, caller)
		if err != nil {
			return err
		}
		amount := pos.Amount.Clone()

		p.TotalStaked.Sub(p.TotalStaked, amount)
		p.TotalShares.Sub(p.TotalShares, amount)
		pos.Amount.Clear()
		pos.RewardDebt = accumulator.Debt(p.AccRewardPerShare)
		pos.Epoch = p.Epoch
		if err := m.pools.Update(id, p); err != nil {
			return err
		}
		if err := m.positions.Set(id, caller, pos); err != nil {
			return err
		}

		fee := fees.Portion(amount, cfg.EmergencyFeeBP)
		logger.Debug("emergency withdraw", "pool", id, "user", caller, "amount", amount, "fee", fee)
		if err := m.push(p, caller, new(uint256.Int).Sub(amount, fee)); err != nil {
			return err
		}
		return m.push(p, cfg.Treasury, fee)
	})
}

// load returns the config and the pool, which must be of the given kind.
func (m *Master) load(kind pool.Kind, id uint64) (*Config, *pool.Pool, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := m.pools.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if p.Kind != kind {
		return nil, nil, reverts.New(reverts.ErrInvalidPool, "pool: not a "+kind.String()+" pool")
	}
	return cfg, p, nil
}

func (m *Master) deposit(kind pool.Kind, user dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	if amount == nil || amount.IsZero() {
		return reverts.New(reverts.ErrInvalidAmount, "deposit: zero amount")
	}
	cfg, p, err := m.load(kind, id)
	if err != nil {
		return err
	}
	a, err := m.accrue(p, block, cfg)
	if err != nil {
		return err
	}
	pos, pending, err := m.settle(id, a, user)
	if err != nil {
		return err
	}

	next := a.pool
	shares, err := next.SharesFor(amount)
	if err != nil {
		return err
	}
	if shares.IsZero() {
		return reverts.New(reverts.ErrInvalidAmount, "deposit: amount below one share")
	}
	if err := addTo(pos.Amount, shares); err != nil {
		return err
	}
	if err := addTo(next.TotalShares, shares); err != nil {
		return err
	}
	if err := addTo(next.TotalStaked, amount); err != nil {
		return err
	}
	pos.RewardDebt = accumulator.Debt(next.AccRewardPerShare)

	if err := m.store(id, a); err != nil {
		return err
	}
	if err := m.positions.Set(id, user, pos); err != nil {
		return err
	}

	if err := m.distribute(a, cfg); err != nil {
		return err
	}
	if err := m.payout(user, pending); err != nil {
		return err
	}
	return m.pull(next, user, amount)
}

func (m *Master) withdraw(kind pool.Kind, user dungeon.Address, id uint64, amount *uint256.Int, block uint32) error {
	if amount == nil {
		return reverts.New(reverts.ErrInvalidAmount, "withdraw: missing amount")
	}
	cfg, p, err := m.load(kind, id)
	if err != nil {
		return err
	}
	a, err := m.accrue(p, block, cfg)
	if err != nil {
		return err
	}
	pos, pending, err := m.settle(id, a, user)
	if err != nil {
		return err
	}

	next := a.pool
	if amount.Gt(next.Principal(pos.Amount)) {
		return reverts.New(reverts.ErrInsufficientBalance, "withdraw: not good")
	}
	if !amount.IsZero() {
		shares := next.SharesToRedeem(amount, pos.Amount)
		pos.Amount.Sub(pos.Amount, shares)
		next.TotalShares.Sub(next.TotalShares, shares)
		next.TotalStaked.Sub(next.TotalStaked, amount)
	}
	pos.RewardDebt = accumulator.Debt(next.AccRewardPerShare)

	if err := m.store(id, a); err != nil {
		return err
	}
	if err := m.positions.Set(id, user, pos); err != nil {
		return err
	}

	if err := m.distribute(a, cfg); err != nil {
		return err
	}
	if err := m.payout(user, pending); err != nil {
		return err
	}
	return m.push(next, user, amount)
}

func addTo(z, x *uint256.Int) error {
	if _, overflow := z.AddOverflow(z, x); overflow {
		return reverts.New(reverts.ErrArithmetic, "addition overflow")
	}
	return nil
}
