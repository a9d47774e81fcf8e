// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/master/fees"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// Config is the global configuration of the master, fixed at initialization
// except for the operator.
type Config struct {
	Operator          dungeon.Address
	Treasury          dungeon.Address
	RewardToken       dungeon.Address
	RewardPerBlock    *uint256.Int
	StartBlock        uint32
	DevFeeBP          uint64
	TreasuryFeeBP     uint64
	MultiBurnDevFeeBP uint64
	EmergencyFeeBP    uint64
}

// NewConfig returns a config with the default fee rates.
func NewConfig(operator, treasury, rewardToken dungeon.Address, rewardPerBlock *uint256.Int, startBlock uint32) *Config {
	return &Config{
		Operator:          operator,
		Treasury:          treasury,
		RewardToken:       rewardToken,
		RewardPerBlock:    rewardPerBlock,
		StartBlock:        startBlock,
		DevFeeBP:          dungeon.DefaultDevFeeBP,
		TreasuryFeeBP:     dungeon.DefaultTreasuryFeeBP,
		MultiBurnDevFeeBP: dungeon.DefaultMultiBurnDevFeeBP,
		EmergencyFeeBP:    dungeon.DefaultEmergencyFeeBP,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Operator.IsZero():
		return reverts.New(reverts.ErrInvalidConfig, "config: zero operator")
	case c.Treasury.IsZero():
		return reverts.New(reverts.ErrInvalidConfig, "config: zero treasury")
	case c.RewardToken.IsZero():
		return reverts.New(reverts.ErrInvalidConfig, "config: zero reward token")
	case c.RewardPerBlock == nil:
		return reverts.New(reverts.ErrInvalidConfig, "config: missing reward per block")
	case c.EmergencyFeeBP > dungeon.MaxBP:
		return reverts.New(reverts.ErrInvalidConfig, "config: emergency fee above 10000")
	}
	if err := c.policy(pool.KindNormal).Validate(); err != nil {
		return err
	}
	return c.policy(pool.KindMultiBurn).Validate()
}

// policy returns the fee policy of a pool kind.
func (c *Config) policy(kind pool.Kind) fees.Policy {
	if kind == pool.KindMultiBurn {
		return fees.Single(c.MultiBurnDevFeeBP)
	}
	return fees.Dual(c.DevFeeBP, c.TreasuryFeeBP)
}

func (c *Config) clone() *Config {
	cpy := *c
	cpy.RewardPerBlock = c.RewardPerBlock.Clone()
	return &cpy
}
