// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package position keeps the stake of every user in every pool.
package position

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/solidity"
	"github.com/dungeonfi/dungeon/dungeon"
)

var slotPositions = solidity.Slot("positions")

// Position is the stake of a user in a pool.
type Position struct {
	Amount     *uint256.Int // pool shares
	RewardDebt *uint256.Int // accumulator at the last settlement
	Epoch      uint64       // pool epoch the shares belong to
}

// IsEmpty reports whether the position holds no shares.
func (p *Position) IsEmpty() bool {
	return p.Amount.IsZero()
}

type key struct {
	pool uint64
	user dungeon.Address
}

func (k key) Bytes() []byte {
	return append(binary.BigEndian.AppendUint64(nil, k.pool), k.user.Bytes()...)
}

type Service struct {
	positions *solidity.Mapping[key, *Position]
}

func New(ctx *solidity.Context) *Service {
	return &Service{
		positions: solidity.NewMapping[key, *Position](ctx, slotPositions),
	}
}

// Get returns the position of user in pool. Never-touched positions are empty.
func (s *Service) Get(pool uint64, user dungeon.Address) (*Position, error) {
	p, err := s.positions.Get(key{pool, user})
	if err != nil {
		return nil, err
	}
	if p.Amount == nil {
		p.Amount = new(uint256.Int)
	}
	if p.RewardDebt == nil {
		p.RewardDebt = new(uint256.Int)
	}
	return p, nil
}

func (s *Service) Set(pool uint64, user dungeon.Address, p *Position) error {
	return s.positions.Set(key{pool, user}, p)
}
