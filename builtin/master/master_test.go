// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/builtin/erc20"
	"github.com/dungeonfi/dungeon/builtin/iron"
	"github.com/dungeonfi/dungeon/builtin/master"
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/state"
)

var (
	alice = dungeon.BytesToAddress([]byte("alice"))
	bob   = dungeon.BytesToAddress([]byte("bob"))
	carol = dungeon.BytesToAddress([]byte("carol"))
	dev   = dungeon.BytesToAddress([]byte("dev"))
	chest = dungeon.BytesToAddress([]byte("chest"))

	custody = builtin.Master.Address
)

func u(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

type testEnv struct {
	t      *testing.T
	st     *state.State
	master *master.Master
	iron   *iron.Iron
	token1 *erc20.Token
	token2 *erc20.Token
}

// newEnv deploys the master with a reward of 200e18 per block, start block 1,
// and two tokens of the given supply held by alice, each with holdings sent to bob and carol.
func newEnv(t *testing.T, supply, holding string) *testEnv {
	st := state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
	return newEnvWith(t, st, builtin.Master.Native(st), defaultConfig(), supply, holding)
}

func defaultConfig() *master.Config {
	return master.NewConfig(dev, chest, builtin.Iron.Address, u("200000000000000000000"), 1)
}

func newEnvWith(t *testing.T, st *state.State, m *master.Master, cfg *master.Config, supply, holding string) *testEnv {
	env := &testEnv{
		t:      t,
		st:     st,
		master: m,
		iron:   builtin.Iron.Native(st),
		token1: builtin.Token(dungeon.BytesToAddress([]byte("token1")), st),
		token2: builtin.Token(dungeon.BytesToAddress([]byte("token2")), st),
	}

	require.NoError(t, env.iron.Initialize(alice, custody, custody))
	require.NoError(t, env.iron.TransferOwnership(alice, custody))

	require.NoError(t, m.Initialize(cfg))

	for i, token := range []*erc20.Token{env.token1, env.token2} {
		require.NoError(t, token.Initialize("Token "+string(rune('1'+i)), "T"+string(rune('1'+i))))
		require.NoError(t, token.Mint(alice, u(supply)))
		for _, holder := range []dungeon.Address{bob, carol} {
			require.NoError(t, token.Transfer(alice, holder, u(holding)))
			require.NoError(t, token.Approve(holder, custody, u(holding)))
		}
	}
	return env
}

type balances interface {
	BalanceOf(dungeon.Address) (*uint256.Int, error)
}

type supplies interface {
	TotalSupply() (*uint256.Int, error)
}

func (e *testEnv) balance(token balances, addr dungeon.Address) string {
	bal, err := token.BalanceOf(addr)
	require.NoError(e.t, err)
	return bal.Dec()
}

func (e *testEnv) supply(token supplies) string {
	supply, err := token.TotalSupply()
	require.NoError(e.t, err)
	return supply.Dec()
}

func TestInitialize(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")

	operator, err := env.master.Operator()
	require.NoError(t, err)
	assert.Equal(t, dev, operator)

	treasury, err := env.master.Treasury()
	require.NoError(t, err)
	assert.Equal(t, chest, treasury)

	cfg, err := env.master.Config()
	require.NoError(t, err)
	assert.Equal(t, uint64(25), cfg.EmergencyFeeBP)
	assert.Equal(t, uint32(1), cfg.StartBlock)

	owner, err := env.iron.Owner()
	require.NoError(t, err)
	minter, err := env.iron.Minter()
	require.NoError(t, err)
	burner, err := env.iron.Burner()
	require.NoError(t, err)
	assert.Equal(t, custody, owner)
	assert.Equal(t, custody, minter)
	assert.Equal(t, custody, burner)

	err = env.master.Initialize(cfg)
	assert.ErrorIs(t, err, reverts.ErrInvalidConfig)
}

func TestInitializeValidates(t *testing.T) {
	st := state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
	m := builtin.Master.Native(st)

	tests := []struct {
		name   string
		modify func(*master.Config)
	}{
		{"zero operator", func(c *master.Config) { c.Operator = dungeon.Address{} }},
		{"zero treasury", func(c *master.Config) { c.Treasury = dungeon.Address{} }},
		{"foreign reward token", func(c *master.Config) { c.RewardToken = dungeon.Address{1} }},
		{"fees above 100%", func(c *master.Config) { c.DevFeeBP = 9000; c.TreasuryFeeBP = 1001 }},
		{"emergency fee", func(c *master.Config) { c.EmergencyFeeBP = 10001 }},
		{"multiburn fee", func(c *master.Config) { c.MultiBurnDevFeeBP = 10001 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := master.NewConfig(dev, chest, builtin.Iron.Address, u("1"), 0)
			tt.modify(cfg)
			assert.ErrorIs(t, m.Initialize(cfg), reverts.ErrInvalidConfig)
		})
	}

	_, err := m.Config()
	assert.ErrorIs(t, err, reverts.ErrInvalidConfig, "nothing persisted")
}

func TestSetOperator(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")

	err := env.master.SetOperator(bob, bob)
	assert.ErrorIs(t, err, reverts.ErrAccessControl)
	assert.EqualError(t, err, "dev: wut?")

	require.NoError(t, env.master.SetOperator(dev, bob))
	operator, err := env.master.Operator()
	require.NoError(t, err)
	assert.Equal(t, bob, operator)

	require.NoError(t, env.master.SetOperator(bob, alice))
	operator, err = env.master.Operator()
	require.NoError(t, err)
	assert.Equal(t, alice, operator)

	assert.ErrorIs(t, env.master.SetOperator(alice, dungeon.Address{}), reverts.ErrInvalidConfig)
}

func TestEmergencyWithdraw(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")
	id, err := env.master.AddNormalPool(dev, env.token1.Address(), builtin.Iron.Address, 200, 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositNormalPool(bob, id, u("1000"), 11))
	assert.Equal(t, "9000", env.balance(env.token1, bob))

	require.NoError(t, env.master.EmergencyWithdrawNormalPool(bob, id))
	assert.Equal(t, "9998", env.balance(env.token1, bob))
	assert.Equal(t, "2", env.balance(env.token1, chest))
	assert.Equal(t, "0", env.balance(env.token1, custody))
	assert.Equal(t, "0", env.supply(env.iron))

	p, err := env.master.Pool(id)
	require.NoError(t, err)
	assert.True(t, p.TotalStaked.IsZero())

	// pending is forfeited
	pending, err := env.master.PendingReward(id, bob, 20)
	require.NoError(t, err)
	assert.True(t, pending.IsZero())
}

func TestEmergencyWithdrawLeavesOthersAccruing(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")
	id, err := env.master.AddNormalPool(dev, env.token1.Address(), builtin.Iron.Address, 200, 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositNormalPool(bob, id, u("1000"), 11))
	require.NoError(t, env.master.DepositNormalPool(carol, id, u("1000"), 11))
	require.NoError(t, env.master.EmergencyWithdrawNormalPool(bob, id))

	p, err := env.master.Pool(id)
	require.NoError(t, err)
	assert.Equal(t, "1000", p.TotalStaked.Dec())
	assert.Equal(t, "1000", p.TotalShares.Dec())
	assert.Equal(t, uint32(11), p.LastRewardBlock)
	assert.Equal(t, "1000", env.balance(env.token1, custody))

	bobPos, err := env.master.Position(id, bob)
	require.NoError(t, err)
	assert.True(t, bobPos.IsEmpty())
	carolPos, err := env.master.Position(id, carol)
	require.NoError(t, err)
	assert.Equal(t, p.TotalShares.Dec(), carolPos.Amount.Dec())

	// the pool was not updated, carol alone earns the blocks since 11
	pending, err := env.master.PendingReward(id, carol, 21)
	require.NoError(t, err)
	assert.Equal(t, "1800000000000000000000", pending.Dec())

	require.NoError(t, env.master.CollectNormalPool(carol, id, 21))
	assert.Equal(t, "1800000000000000000000", env.balance(env.iron, carol))
	assert.Equal(t, "0", env.balance(env.iron, bob))
	assert.Equal(t, "9998", env.balance(env.token1, bob))
	assert.Equal(t, "2", env.balance(env.token1, chest))

	pending, err = env.master.PendingReward(id, bob, 21)
	require.NoError(t, err)
	assert.True(t, pending.IsZero())
}

func TestRewardsAfterFarmingTime(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")
	id, err := env.master.AddNormalPool(dev, env.token1.Address(), builtin.Iron.Address, 200, 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositNormalPool(bob, id, u("1000"), 11))

	pending, err := env.master.PendingReward(id, bob, 17)
	require.NoError(t, err)
	assert.Equal(t, "1080000000000000000000", pending.Dec())

	require.NoError(t, env.master.CollectNormalPool(bob, id, 17))

	assert.Equal(t, "1080000000000000000000", env.balance(env.iron, bob))
	assert.Equal(t, "60000000000000000000", env.balance(env.iron, dev))
	assert.Equal(t, "60000000000000000000", env.balance(env.iron, chest))
	assert.Equal(t, "1200000000000000000000", env.supply(env.iron))
	assert.Equal(t, "0", env.balance(env.iron, custody))
	assert.Equal(t, "9000", env.balance(env.token1, bob))
}

func TestRewardsBasedOnStake(t *testing.T) {
	env := newEnv(t, "10000000000", "10000")
	id, err := env.master.AddNormalPool(dev, env.token1.Address(), builtin.Iron.Address, 200, 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositNormalPool(bob, id, u("600"), 11))
	require.NoError(t, env.master.DepositNormalPool(carol, id, u("400"), 12))
	require.NoError(t, env.master.CollectNormalPool(bob, id, 17))
	require.NoError(t, env.master.CollectNormalPool(carol, id, 18))

	assert.Equal(t, "720000000000000000000", env.balance(env.iron, bob))
	assert.Equal(t, "432000000000000000000", env.balance(env.iron, carol))
	assert.Equal(t, "70000000000000000000", env.balance(env.iron, dev))
	assert.Equal(t, "70000000000000000000", env.balance(env.iron, chest))
	assert.Equal(t, "1400000000000000000000", env.supply(env.iron))
	// bob's share of the last block is still in custody
	assert.Equal(t, "108000000000000000000", env.balance(env.iron, custody))

	pending, err := env.master.PendingReward(id, bob, 18)
	require.NoError(t, err)
	assert.Equal(t, "108000000000000000000", pending.Dec())
}

func TestBurnPool(t *testing.T) {
	env := newEnv(t, "1200000000000000000000", "400000000000000000000")
	id, err := env.master.AddBurnPool(dev, env.token1.Address(), builtin.Iron.Address, 10, u("1000000000000000"), u("5000000000000000"), 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositBurnPool(bob, id, u("60000000000000000000"), 11))
	require.NoError(t, env.master.CollectBurnPool(bob, id, 26))

	assert.Equal(t, "900000000000000", env.balance(env.iron, bob))
	assert.Equal(t, "50000000000000", env.balance(env.iron, dev))
	assert.Equal(t, "50000000000000", env.balance(env.iron, chest))
	assert.Equal(t, "1000000000000000", env.supply(env.iron))

	// one interval burned 5e15 of token1
	assert.Equal(t, "1199995000000000000000", env.supply(env.token1))
	assert.Equal(t, "59995000000000000000", env.balance(env.token1, custody))

	p, err := env.master.Pool(id)
	require.NoError(t, err)
	assert.Equal(t, "59995000000000000000", p.TotalStaked.Dec())
	assert.Equal(t, uint32(21), p.LastRewardBlock)

	staked, err := env.master.Staked(id, bob, 26)
	require.NoError(t, err)
	assert.Equal(t, "59995000000000000000", staked.Dec())

	// the burn due at 31 shows before anything is written
	staked, err = env.master.Staked(id, bob, 31)
	require.NoError(t, err)
	assert.Equal(t, "59990000000000000000", staked.Dec())
	p, err = env.master.Pool(id)
	require.NoError(t, err)
	assert.Equal(t, "59995000000000000000", p.TotalStaked.Dec())
}

func TestMultiBurnPool(t *testing.T) {
	env := newEnv(t, "1200000000000000000000", "400000000000000000000")
	tokens := []dungeon.Address{env.token1.Address(), env.token2.Address()}
	id, err := env.master.AddMultiBurnPool(dev, tokens, builtin.Iron.Address, 10, u("1000000000000000"), u("5000000000000000"), 10)
	require.NoError(t, err)

	require.NoError(t, env.master.DepositMultiBurnPool(bob, id, u("60000000000000000000"), 11))
	assert.Equal(t, "340000000000000000000", env.balance(env.token1, bob))
	assert.Equal(t, "340000000000000000000", env.balance(env.token2, bob))

	require.NoError(t, env.master.CollectMultiBurnPool(bob, id, 26))

	// 95% of 1e15 spread over 60e18 shares rounds down to 949999999999980
	assert.Equal(t, "949999999999980", env.balance(env.iron, bob))
	assert.Equal(t, "50000000000000", env.balance(env.iron, dev))
	assert.Equal(t, "0", env.balance(env.iron, chest))
	assert.Equal(t, "1000000000000000", env.supply(env.iron))
	assert.Equal(t, "20", env.balance(env.iron, custody))

	for _, token := range []*erc20.Token{env.token1, env.token2} {
		assert.Equal(t, "1199995000000000000000", env.supply(token))
		assert.Equal(t, "59995000000000000000", env.balance(token, custody))
	}

	// withdraw the whole remaining stake of both tokens
	require.NoError(t, env.master.WithdrawMultiBurnPool(bob, id, u("59995000000000000000"), 26))
	assert.Equal(t, "399995000000000000000", env.balance(env.token1, bob))
	assert.Equal(t, "399995000000000000000", env.balance(env.token2, bob))

	p, err := env.master.Pool(id)
	require.NoError(t, err)
	assert.True(t, p.TotalStaked.IsZero())
	assert.True(t, p.TotalShares.IsZero())
}
