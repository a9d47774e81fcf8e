// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
)

// Kind discriminates the pool variants.
type Kind uint8

const (
	KindNormal Kind = iota + 1
	KindBurn
	KindMultiBurn
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindBurn:
		return "burn"
	case KindMultiBurn:
		return "multiburn"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses the name of a kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindNormal, KindBurn, KindMultiBurn} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, reverts.New(reverts.ErrInvalidPool, fmt.Sprintf("pool: unknown kind %q", s))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Pool is the persisted record of a pool.
type Pool struct {
	Kind         Kind
	StakedTokens []dungeon.Address
	RewardToken  dungeon.Address

	// normal pools
	Weight uint64

	// burn and multiburn pools
	Interval          uint32
	RewardPerInterval *uint256.Int
	BurnPerInterval   *uint256.Int

	TotalStaked       *uint256.Int // principal held in custody, per staked token
	TotalShares       *uint256.Int // sum of position amounts
	Epoch             uint64       // bumped whenever burns drain or dilute the pool
	LastRewardBlock   uint32
	AccRewardPerShare *uint256.Int
	CreatedAt         uint32
}

// Clone returns a deep copy.
func (p *Pool) Clone() *Pool {
	cpy := *p
	cpy.StakedTokens = append([]dungeon.Address(nil), p.StakedTokens...)
	cpy.RewardPerInterval = p.RewardPerInterval.Clone()
	cpy.BurnPerInterval = p.BurnPerInterval.Clone()
	cpy.TotalStaked = p.TotalStaked.Clone()
	cpy.TotalShares = p.TotalShares.Clone()
	cpy.AccRewardPerShare = p.AccRewardPerShare.Clone()
	return &cpy
}

// IsEmpty reports whether nothing accrues to the pool.
func (p *Pool) IsEmpty() bool {
	return p.TotalStaked.IsZero() || p.TotalShares.IsZero()
}

// MaxSharesPerUnit bounds the shares outstanding per unit of principal.
// Burns past it end the epoch, otherwise accrual per share would floor to zero.
const MaxSharesPerUnit = 1_000_000

// Diluted reports whether the shares outnumber the principal by more than MaxSharesPerUnit.
// A pool with shares but no principal is diluted.
func (p *Pool) Diluted() bool {
	limit, overflow := new(uint256.Int).MulOverflow(p.TotalStaked, uint256.NewInt(MaxSharesPerUnit))
	return !overflow && p.TotalShares.Gt(limit)
}

// Principal returns the staked amount backing shares, rounded down.
func (p *Pool) Principal(shares *uint256.Int) *uint256.Int {
	if p.TotalShares.IsZero() {
		return new(uint256.Int)
	}
	// shares <= TotalShares, so the result fits
	z, _ := new(uint256.Int).MulDivOverflow(shares, p.TotalStaked, p.TotalShares)
	return z
}

// SharesFor returns the shares minted for depositing amount, rounded down.
func (p *Pool) SharesFor(amount *uint256.Int) (*uint256.Int, error) {
	if p.TotalShares.IsZero() || p.TotalStaked.IsZero() {
		return amount.Clone(), nil
	}
	z, overflow := new(uint256.Int).MulDivOverflow(amount, p.TotalShares, p.TotalStaked)
	if overflow {
		return nil, reverts.New(reverts.ErrArithmetic, "pool: shares overflow")
	}
	return z, nil
}

// SharesToRedeem returns the shares burned for withdrawing amount out of the
// principal backing held shares, rounded up.
func (p *Pool) SharesToRedeem(amount, held *uint256.Int) *uint256.Int {
	if amount.Eq(p.Principal(held)) {
		return held.Clone()
	}
	// amount is at most the principal of held shares, so the quotient fits
	q, _ := new(uint256.Int).MulDivOverflow(amount, p.TotalShares, p.TotalStaked)
	if !new(uint256.Int).MulMod(amount, p.TotalShares, p.TotalStaked).IsZero() {
		q.AddUint64(q, 1)
	}
	return q
}
