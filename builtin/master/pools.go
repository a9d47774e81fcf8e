// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// AddNormalPool adds a pool earning weight/totalWeight of the reward per block.
// Existing normal pools are brought up to date before the total weight changes.
func (m *Master) AddNormalPool(caller, stakedToken, rewardToken dungeon.Address, weight uint64, block uint32) (id uint64, err error) {
	err = m.invoke("add-pool", func() error {
		cfg, err := m.prepareAdd(caller, []dungeon.Address{stakedToken}, rewardToken)
		if err != nil {
			return err
		}
		if err := m.massUpdateNormalPools(block, cfg); err != nil {
			return err
		}
		if err := m.pools.AddWeight(weight); err != nil {
			return err
		}
		p := newPool(pool.KindNormal, []dungeon.Address{stakedToken}, rewardToken, block, cfg)
		p.Weight = weight
		id, err = m.addPool(p)
		return err
	})
	return
}

// AddBurnPool adds a pool minting rewardPerInterval and burning burnPerInterval of
// the staked token for every interval blocks.
func (m *Master) AddBurnPool(
	caller, stakedToken, rewardToken dungeon.Address,
	interval uint32,
	rewardPerInterval, burnPerInterval *uint256.Int,
	block uint32,
) (id uint64, err error) {
	err = m.invoke("add-pool", func() error {
		id, err = m.addBurnPool(pool.KindBurn, caller, []dungeon.Address{stakedToken}, rewardToken, interval, rewardPerInterval, burnPerInterval, block)
		return err
	})
	return
}

// AddMultiBurnPool adds a burn pool staking equal amounts of every token in stakedTokens.
func (m *Master) AddMultiBurnPool(
	caller dungeon.Address,
	stakedTokens []dungeon.Address,
	rewardToken dungeon.Address,
	interval uint32,
	rewardPerInterval, burnPerInterval *uint256.Int,
	block uint32,
) (id uint64, err error) {
	err = m.invoke("add-pool", func() error {
		if len(stakedTokens) < 2 {
			return reverts.New(reverts.ErrInvalidConfig, "pool: multiburn needs at least two tokens")
		}
		seen := make(map[dungeon.Address]bool, len(stakedTokens))
		for _, token := range stakedTokens {
			if seen[token] {
				return reverts.New(reverts.ErrInvalidConfig, "pool: duplicate staked token")
			}
			seen[token] = true
		}
		id, err = m.addBurnPool(pool.KindMultiBurn, caller, stakedTokens, rewardToken, interval, rewardPerInterval, burnPerInterval, block)
		return err
	})
	return
}

func (m *Master) addBurnPool(
	kind pool.Kind,
	caller dungeon.Address,
	stakedTokens []dungeon.Address,
	rewardToken dungeon.Address,
	interval uint32,
	rewardPerInterval, burnPerInterval *uint256.Int,
	block uint32,
) (uint64, error) {
	cfg, err := m.prepareAdd(caller, stakedTokens, rewardToken)
	if err != nil {
		return 0, err
	}
	if interval == 0 {
		return 0, reverts.New(reverts.ErrInvalidConfig, "pool: zero interval")
	}
	if rewardPerInterval == nil || burnPerInterval == nil {
		return 0, reverts.New(reverts.ErrInvalidConfig, "pool: missing amounts per interval")
	}
	p := newPool(kind, stakedTokens, rewardToken, block, cfg)
	p.Interval = interval
	p.RewardPerInterval = rewardPerInterval.Clone()
	p.BurnPerInterval = burnPerInterval.Clone()
	return m.addPool(p)
}

// prepareAdd checks the caller and the tokens of a new pool.
func (m *Master) prepareAdd(caller dungeon.Address, stakedTokens []dungeon.Address, rewardToken dungeon.Address) (*Config, error) {
	if err := m.requireOperator(caller); err != nil {
		return nil, err
	}
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}
	if rewardToken != cfg.RewardToken {
		return nil, reverts.New(reverts.ErrInvalidConfig, "pool: reward token is not the configured reward token")
	}
	for _, token := range stakedTokens {
		if token.IsZero() {
			return nil, reverts.New(reverts.ErrInvalidConfig, "pool: zero staked token")
		}
		// reward custody is the balance of the reward token held by the master
		if token == cfg.RewardToken {
			return nil, reverts.New(reverts.ErrInvalidConfig, "pool: staked token is the reward token")
		}
	}
	return cfg, nil
}

func newPool(kind pool.Kind, stakedTokens []dungeon.Address, rewardToken dungeon.Address, block uint32, cfg *Config) *pool.Pool {
	return &pool.Pool{
		Kind:              kind,
		StakedTokens:      append([]dungeon.Address(nil), stakedTokens...),
		RewardToken:       rewardToken,
		RewardPerInterval: new(uint256.Int),
		BurnPerInterval:   new(uint256.Int),
		TotalStaked:       new(uint256.Int),
		TotalShares:       new(uint256.Int),
		LastRewardBlock:   max(block, cfg.StartBlock),
		AccRewardPerShare: new(uint256.Int),
		CreatedAt:         block,
	}
}

func (m *Master) addPool(p *pool.Pool) (uint64, error) {
	id, err := m.pools.Add(p)
	if err != nil {
		return 0, err
	}
	logger.Info("pool added", "id", id, "kind", p.Kind, "tokens", len(p.StakedTokens), "block", p.CreatedAt)
	return id, nil
}

// massUpdateNormalPools brings every normal pool up to date.
func (m *Master) massUpdateNormalPools(block uint32, cfg *Config) error {
	count, err := m.pools.Count()
	if err != nil {
		return err
	}
	for id := range count {
		p, err := m.pools.Get(id)
		if err != nil {
			return err
		}
		if p.Kind != pool.KindNormal {
			continue
		}
		a, err := m.accrue(p, block, cfg)
		if err != nil {
			return err
		}
		if err := m.store(id, a); err != nil {
			return err
		}
		if err := m.distribute(a, cfg); err != nil {
			return err
		}
	}
	return nil
}
