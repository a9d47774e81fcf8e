// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool keeps the registry of pools.
package pool

import (
	"encoding/binary"
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/builtin/solidity"
)

var (
	slotPools       = solidity.Slot("pools")
	slotPoolCount   = solidity.Slot("pool-count")
	slotTotalWeight = solidity.Slot("total-weight")
	slotEpochAcc    = solidity.Slot("epoch-acc")
)

type key uint64

func (k key) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

type epochKey struct {
	pool, epoch uint64
}

func (k epochKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(binary.BigEndian.AppendUint64(nil, k.pool), k.epoch)
}

// Service is the pool registry. IDs are ordinals, never reused.
type Service struct {
	pools       *solidity.Mapping[key, *Pool]
	count       *solidity.Raw[uint64]
	totalWeight *solidity.Raw[uint64]
	epochAcc    *solidity.Mapping[epochKey, *uint256.Int]
}

func New(ctx *solidity.Context) *Service {
	return &Service{
		pools:       solidity.NewMapping[key, *Pool](ctx, slotPools),
		count:       solidity.NewRaw[uint64](ctx, slotPoolCount),
		totalWeight: solidity.NewRaw[uint64](ctx, slotTotalWeight),
		epochAcc:    solidity.NewMapping[epochKey, *uint256.Int](ctx, slotEpochAcc),
	}
}

// Count returns the number of pools ever added.
func (s *Service) Count() (uint64, error) {
	return s.count.Get()
}

// Get returns the pool with the given id.
func (s *Service) Get(id uint64) (*Pool, error) {
	count, err := s.count.Get()
	if err != nil {
		return nil, err
	}
	if id >= count {
		return nil, reverts.New(reverts.ErrInvalidPool, "pool: does not exist")
	}
	p, err := s.pools.Get(key(id))
	if err != nil {
		return nil, errors.WithMessagef(err, "get pool %d", id)
	}
	return p, nil
}

// Add appends p and returns its id.
func (s *Service) Add(p *Pool) (uint64, error) {
	id, err := s.count.Get()
	if err != nil {
		return 0, err
	}
	if err := s.pools.Set(key(id), p); err != nil {
		return 0, err
	}
	return id, s.count.Set(id + 1)
}

// Update overwrites the record of an existing pool.
func (s *Service) Update(id uint64, p *Pool) error {
	return s.pools.Set(key(id), p)
}

// TotalWeight returns the sum of the weights of normal pools.
func (s *Service) TotalWeight() (uint64, error) {
	return s.totalWeight.Get()
}

func (s *Service) AddWeight(weight uint64) error {
	total, err := s.totalWeight.Get()
	if err != nil {
		return err
	}
	if total > math.MaxUint64-weight {
		return reverts.New(reverts.ErrArithmetic, "pool: total weight overflow")
	}
	return s.totalWeight.Set(total + weight)
}

// RecordEpoch keeps the final accumulator of a closed epoch.
func (s *Service) RecordEpoch(id, epoch uint64, acc *uint256.Int) error {
	return s.epochAcc.Set(epochKey{id, epoch}, acc)
}

// EpochAcc returns the final accumulator of a closed epoch.
func (s *Service) EpochAcc(id, epoch uint64) (*uint256.Int, error) {
	return s.epochAcc.Get(epochKey{id, epoch})
}
