// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package master implements the dungeon master, the builtin contract running the staking pools.
//
// Stakers deposit tokens into pools and earn the reward token in proportion to
// their share of the pool. Every mutating call runs under a reentrancy guard and
// a state checkpoint, so a failing call leaves no trace on the state.
package master

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/master/position"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/builtin/solidity"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/log"
	"github.com/dungeonfi/dungeon/state"
)

var (
	logger = log.WithContext("pkg", "master")

	slotConfig   = solidity.Slot("config")
	slotOperator = solidity.Slot("operator")
	slotEntered  = solidity.Slot("entered")
)

// Master binds the master contract to a state.
type Master struct {
	context   *solidity.Context
	config    *solidity.Raw[*Config]
	operator  *solidity.Address
	entered   *solidity.Raw[bool]
	pools     *pool.Service
	positions *position.Service
	reward    RewardToken
	tokens    TokenResolver
}

// New creates the master living at addr. reward must be bound to addr.
func New(addr dungeon.Address, state *state.State, reward RewardToken, tokens TokenResolver) *Master {
	ctx := solidity.NewContext(addr, state)
	return &Master{
		context:   ctx,
		config:    solidity.NewRaw[*Config](ctx, slotConfig),
		operator:  solidity.NewAddress(ctx, slotOperator),
		entered:   solidity.NewRaw[bool](ctx, slotEntered),
		pools:     pool.New(ctx),
		positions: position.New(ctx),
		reward:    reward,
		tokens:    tokens,
	}
}

func (m *Master) Address() dungeon.Address {
	return m.context.Address()
}

// Initialize persists the config. It can be done only once.
func (m *Master) Initialize(cfg *Config) error {
	return m.invoke("initialize", func() error {
		stored, err := m.config.Get()
		if err != nil {
			return err
		}
		if stored.RewardPerBlock != nil {
			return reverts.New(reverts.ErrInvalidConfig, "master: already initialized")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.RewardToken != m.reward.Address() {
			return reverts.New(reverts.ErrInvalidConfig, "master: reward token mismatch")
		}
		if err := m.config.Set(cfg); err != nil {
			return err
		}
		return m.operator.Set(cfg.Operator)
	})
}

// invoke runs fn under the reentrancy guard. Every write made by fn is reverted if it fails.
func (m *Master) invoke(op string, fn func() error) (err error) {
	entered, err := m.entered.Get()
	if err != nil {
		return err
	}
	if entered {
		return reverts.New(reverts.ErrReentrant, "ReentrancyGuard: reentrant call")
	}

	st := m.context.State()
	checkpoint := st.NewCheckpoint()
	defer func() {
		status := "ok"
		if err != nil {
			st.RevertTo(checkpoint)
			status = "failed"
		}
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "status": status})
	}()

	if err = m.entered.Set(true); err != nil {
		return
	}
	if err = fn(); err != nil {
		return
	}
	return m.entered.Set(false)
}

func (m *Master) loadConfig() (*Config, error) {
	cfg, err := m.config.Get()
	if err != nil {
		return nil, errors.WithMessage(err, "load config")
	}
	if cfg.RewardPerBlock == nil {
		return nil, reverts.New(reverts.ErrInvalidConfig, "master: not initialized")
	}
	return cfg, nil
}

func (m *Master) requireOperator(caller dungeon.Address) error {
	operator, err := m.operator.Get()
	if err != nil {
		return err
	}
	if caller != operator {
		return reverts.New(reverts.ErrAccessControl, "dev: wut?")
	}
	return nil
}

// SetOperator hands the operator role over. Only the operator may call it.
func (m *Master) SetOperator(caller, newOperator dungeon.Address) error {
	return m.invoke("set-operator", func() error {
		if err := m.requireOperator(caller); err != nil {
			return err
		}
		if newOperator.IsZero() {
			return reverts.New(reverts.ErrInvalidConfig, "dev: zero address")
		}
		logger.Info("operator changed", "from", caller, "to", newOperator)
		return m.operator.Set(newOperator)
	})
}

// Operator returns the current operator, the receiver of the dev fee.
func (m *Master) Operator() (dungeon.Address, error) {
	return m.operator.Get()
}

// Treasury returns the receiver of the treasury and emergency fees.
func (m *Master) Treasury() (dungeon.Address, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return dungeon.Address{}, err
	}
	return cfg.Treasury, nil
}

// Config returns the config, with the current operator.
func (m *Master) Config() (*Config, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	if cfg.Operator, err = m.operator.Get(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PoolCount returns the number of pools.
func (m *Master) PoolCount() (uint64, error) {
	return m.pools.Count()
}

// Pool returns the stored record of a pool.
func (m *Master) Pool(id uint64) (*pool.Pool, error) {
	return m.pools.Get(id)
}

// TotalWeight returns the sum of normal pool weights.
func (m *Master) TotalWeight() (uint64, error) {
	return m.pools.TotalWeight()
}

// Position returns the stored position of user in a pool.
func (m *Master) Position(id uint64, user dungeon.Address) (*position.Position, error) {
	if _, err := m.pools.Get(id); err != nil {
		return nil, err
	}
	return m.positions.Get(id, user)
}

// Staked returns the principal backing the position of user at block, net of
// the burns due by then. Nothing is written.
func (m *Master) Staked(id uint64, user dungeon.Address, block uint32) (*uint256.Int, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := m.pools.Get(id)
	if err != nil {
		return nil, err
	}
	a, err := m.accrue(p, block, cfg)
	if err != nil {
		return nil, err
	}
	pos, err := m.positions.Get(id, user)
	if err != nil {
		return nil, err
	}
	if pos.Epoch != a.pool.Epoch {
		return new(uint256.Int), nil
	}
	return a.pool.Principal(pos.Amount), nil
}

// PendingReward returns the reward user would collect at block.
// Nothing is written.
func (m *Master) PendingReward(id uint64, user dungeon.Address, block uint32) (*uint256.Int, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := m.pools.Get(id)
	if err != nil {
		return nil, err
	}
	a, err := m.accrue(p, block, cfg)
	if err != nil {
		return nil, err
	}
	pos, err := m.positions.Get(id, user)
	if err != nil {
		return nil, err
	}
	return m.pending(id, a, pos)
}
