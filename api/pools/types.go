// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/builtin/master/position"
	"github.com/dungeonfi/dungeon/dungeon"
)

type Pool struct {
	ID                uint64                `json:"id"`
	Kind              pool.Kind             `json:"kind"`
	StakedTokens      []dungeon.Address     `json:"stakedTokens"`
	RewardToken       dungeon.Address       `json:"rewardToken"`
	Weight            uint64                `json:"weight,omitempty"`
	Interval          uint32                `json:"interval,omitempty"`
	RewardPerInterval *utils.Amount         `json:"rewardPerInterval,omitempty"`
	BurnPerInterval   *utils.Amount         `json:"burnPerInterval,omitempty"`
	TotalStaked       *utils.Amount         `json:"totalStaked"`
	TotalShares       *math.HexOrDecimal256 `json:"totalShares"`
	Epoch             uint64                `json:"epoch"`
	LastRewardBlock   uint32                `json:"lastRewardBlock"`
	AccRewardPerShare *math.HexOrDecimal256 `json:"accRewardPerShare"`
	CreatedAt         uint32                `json:"createdAt"`
}

func convertPool(id uint64, p *pool.Pool) *Pool {
	jp := &Pool{
		ID:                id,
		Kind:              p.Kind,
		StakedTokens:      p.StakedTokens,
		RewardToken:       p.RewardToken,
		Weight:            p.Weight,
		TotalStaked:       utils.NewAmount(p.TotalStaked),
		TotalShares:       hexOrDecimal(p.TotalShares),
		Epoch:             p.Epoch,
		LastRewardBlock:   p.LastRewardBlock,
		AccRewardPerShare: hexOrDecimal(p.AccRewardPerShare),
		CreatedAt:         p.CreatedAt,
	}
	if p.Kind != pool.KindNormal {
		jp.Interval = p.Interval
		jp.RewardPerInterval = utils.NewAmount(p.RewardPerInterval)
		jp.BurnPerInterval = utils.NewAmount(p.BurnPerInterval)
	}
	return jp
}

type Position struct {
	Pool    uint64                `json:"pool"`
	User    dungeon.Address       `json:"user"`
	Shares  *math.HexOrDecimal256 `json:"shares"`
	Epoch   uint64                `json:"epoch"`
	Staked  *utils.Amount         `json:"staked"`
	Pending *utils.Amount         `json:"pending"` // reward collectable at the block being built
}

func convertPosition(id uint64, user dungeon.Address, pos *position.Position, staked, pending *uint256.Int) *Position {
	return &Position{
		Pool:    id,
		User:    user,
		Shares:  hexOrDecimal(pos.Amount),
		Epoch:   pos.Epoch,
		Staked:  utils.NewAmount(staked),
		Pending: utils.NewAmount(pending),
	}
}

// AddPool is the request to add a pool. Weight applies to normal pools, the
// interval and amounts per interval to burn and multiburn pools.
type AddPool struct {
	Caller            dungeon.Address       `json:"caller"`
	Kind              pool.Kind             `json:"kind"`
	StakedTokens      []dungeon.Address     `json:"stakedTokens"`
	RewardToken       dungeon.Address       `json:"rewardToken"`
	Weight            uint64                `json:"weight"`
	Interval          uint32                `json:"interval"`
	RewardPerInterval *math.HexOrDecimal256 `json:"rewardPerInterval"`
	BurnPerInterval   *math.HexOrDecimal256 `json:"burnPerInterval"`
}

type AddPoolReceipt struct {
	utils.Receipt
	ID uint64 `json:"id"`
}

// Stake is the request to deposit or withdraw.
type Stake struct {
	Caller dungeon.Address       `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// Call is the request of calls without arguments.
type Call struct {
	Caller dungeon.Address `json:"caller"`
}

func hexOrDecimal(v *uint256.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v.ToBig())
}
