// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/holiman/uint256"

	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/dungeon"
)

var devAccounts = []dungeon.Address{
	dungeon.MustParseAddress("0xf077b491b355E64048cE21E3A6Fc4751eEeA77fa"),
	dungeon.MustParseAddress("0x435933c8064b4Ae76bE665428e0307eF2cCFBD68"),
	dungeon.MustParseAddress("0x0F872421Dc479F3c11eDd89512731814D0598dB5"),
	dungeon.MustParseAddress("0xF370940aBDBd2583bC80bFc19d19bc216C88Ccf0"),
	dungeon.MustParseAddress("0x99602e4Bbc0503b8ff4432bB1857F916c3653B85"),
	dungeon.MustParseAddress("0x61E7d0c2B25706bE3485980F39A3a994A8207aCf"),
	dungeon.MustParseAddress("0x361277D1b27150a2F7C4ca7436a8dA5AC7d59a68"),
	dungeon.MustParseAddress("0xD7f75A0A1287ab2916848909C8531a0eA9412800"),
	dungeon.MustParseAddress("0xAbEf6032B9176C186F6BF984f548bdA53349f70a"),
	dungeon.MustParseAddress("0x865306084235Bf804c8Bba8a8d56890940ca8F0b"),
}

// Devnet token addresses.
var (
	DevToken1 = dungeon.BytesToAddress([]byte("DevToken1"))
	DevToken2 = dungeon.BytesToAddress([]byte("DevToken2"))
)

// DevAccounts returns pre-alloced accounts for solo mode.
// The first one operates the master, the second one is the treasury.
func DevAccounts() []dungeon.Address {
	return append([]dungeon.Address(nil), devAccounts...)
}

// DevConfig returns the genesis config of solo mode.
func DevConfig() *Config {
	// 1e24 of each token for every account, fully approved
	bal := NewAmount(new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(24)))
	var balances []Balance
	for _, acc := range devAccounts {
		balances = append(balances, Balance{Holder: acc, Amount: bal, Allowance: bal})
	}

	rewardPerInterval := NewAmount(uint256.NewInt(1e15))
	burnPerInterval := NewAmount(uint256.NewInt(5e15))
	return &Config{
		Operator:       devAccounts[0],
		Treasury:       devAccounts[1],
		RewardPerBlock: NewAmount(uint256.MustFromDecimal("200000000000000000000")),
		StartBlock:     1,
		Tokens: []Token{
			{Name: "Dev Token 1", Symbol: "DT1", Address: DevToken1, Balances: balances},
			{Name: "Dev Token 2", Symbol: "DT2", Address: DevToken2, Balances: balances},
		},
		Pools: []Pool{
			{Kind: pool.KindNormal, Tokens: []dungeon.Address{DevToken1}, Weight: 100},
			{Kind: pool.KindNormal, Tokens: []dungeon.Address{DevToken2}, Weight: 100},
			{Kind: pool.KindBurn, Tokens: []dungeon.Address{DevToken1}, Interval: 10, RewardPerInterval: rewardPerInterval, BurnPerInterval: burnPerInterval},
			{
				Kind:              pool.KindMultiBurn,
				Tokens:            []dungeon.Address{DevToken1, DevToken2},
				Interval:          10,
				RewardPerInterval: rewardPerInterval,
				BurnPerInterval:   burnPerInterval,
			},
		},
	}
}

// NewDevnet create genesis for solo mode.
func NewDevnet() *Genesis {
	gen, err := newGenesis("devnet", DevConfig())
	if err != nil {
		panic(err)
	}
	return gen
}
