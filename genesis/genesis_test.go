// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/genesis"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/state"
)

const customGenesis = `
operator: 0xf077b491b355e64048ce21e3a6fc4751eeea77fa
treasury: 0x435933c8064b4ae76be665428e0307ef2ccfbd68
rewardPerBlock: 200e18
startBlock: 5
fees:
  emergency: 50
tokens:
  - name: Token One
    symbol: T1
    address: 0x0000000000000000000000000000000000000101
    balances:
      - holder: 0x0f872421dc479f3c11edd89512731814d0598db5
        amount: 1_000e18
        allowance: 10e18
  - name: Token Two
    symbol: T2
    address: 0x0000000000000000000000000000000000000102
    balances:
      - holder: 0x0f872421dc479f3c11edd89512731814d0598db5
        amount: "12345"
pools:
  - kind: normal
    tokens: [0x0000000000000000000000000000000000000101]
    weight: 10
  - kind: multiburn
    tokens:
      - 0x0000000000000000000000000000000000000101
      - 0x0000000000000000000000000000000000000102
    interval: 10
    rewardPerInterval: 1e15
    burnPerInterval: 5e15
`

func newState() *state.State {
	return state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
}

func TestDevGenesis(t *testing.T) {
	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, gen.ID(), genesis.NewDevnet().ID())

	st := newState()
	require.NoError(t, gen.Build(st))

	m := builtin.Master.Native(st)
	operator, err := m.Operator()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0], operator)

	count, err := m.PoolCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)

	p, err := m.Pool(3)
	require.NoError(t, err)
	assert.Equal(t, pool.KindMultiBurn, p.Kind)
	assert.Equal(t, uint32(1), p.LastRewardBlock)

	ironToken := builtin.Iron.Native(st)
	owner, err := ironToken.Owner()
	require.NoError(t, err)
	assert.Equal(t, builtin.Master.Address, owner)

	for _, acc := range genesis.DevAccounts() {
		allowance, err := builtin.Token(genesis.DevToken1, st).Allowance(acc, builtin.Master.Address)
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000000", allowance.Dec())
	}
}

func TestCustomGenesis(t *testing.T) {
	cfg, err := genesis.ParseConfig([]byte(customGenesis))
	require.NoError(t, err)

	mc := cfg.MasterConfig()
	assert.Equal(t, "200000000000000000000", mc.RewardPerBlock.Dec())
	assert.Equal(t, uint64(50), mc.EmergencyFeeBP)
	assert.Equal(t, dungeon.DefaultDevFeeBP, mc.DevFeeBP)
	assert.Equal(t, builtin.Iron.Address, mc.RewardToken)

	gen, err := genesis.NewCustomNet(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, genesis.NewDevnet().ID(), gen.ID())

	st := newState()
	require.NoError(t, gen.Build(st))

	holder := dungeon.MustParseAddress("0x0f872421dc479f3c11edd89512731814d0598db5")
	t1 := builtin.Token(dungeon.MustParseAddress("0x0000000000000000000000000000000000000101"), st)
	bal, err := t1.BalanceOf(holder)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", bal.Dec())
	allowance, err := t1.Allowance(holder, builtin.Master.Address)
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", allowance.Dec())

	symbol, err := t1.Symbol()
	require.NoError(t, err)
	assert.Equal(t, "T1", symbol)

	m := builtin.Master.Native(st)
	weight, err := m.TotalWeight()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), weight)

	p, err := m.Pool(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), p.LastRewardBlock)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customGenesis), 0o600))

	cfg, err := genesis.LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Tokens, 2)
	assert.Len(t, cfg.Pools, 2)

	_, err = genesis.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidGenesis(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "operator: 0xf077b491b355e64048ce21e3a6fc4751eeea77fa\ncolour: red\n"},
		{"fractional amount", "rewardPerBlock: 1.5\n"},
		{"negative amount", "rewardPerBlock: -1\n"},
		{"bad address", "operator: 0x1234\n"},
		{"bad kind", "pools:\n  - kind: turbo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := genesis.ParseConfig([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	build := []struct {
		name   string
		modify func(*genesis.Config)
	}{
		{"missing reward", func(c *genesis.Config) { c.RewardPerBlock = nil }},
		{"zero operator", func(c *genesis.Config) { c.Operator = dungeon.Address{} }},
		{"reserved token", func(c *genesis.Config) { c.Tokens[0].Address = builtin.Iron.Address }},
		{"duplicated token", func(c *genesis.Config) { c.Tokens[1].Address = c.Tokens[0].Address }},
		{"unknown pool token", func(c *genesis.Config) { c.Pools[0].Tokens = []dungeon.Address{{1}} }},
		{"zero balance", func(c *genesis.Config) { c.Tokens[0].Balances[0].Amount = genesis.NewAmount(new(uint256.Int)) }},
	}
	for _, tt := range build {
		t.Run(tt.name, func(t *testing.T) {
			cfg := genesis.DevConfig()
			tt.modify(cfg)
			_, err := genesis.NewCustomNet(cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenesisPoolFailure(t *testing.T) {
	cfg := genesis.DevConfig()
	cfg.Pools = append(cfg.Pools, genesis.Pool{Kind: pool.KindBurn, Tokens: []dungeon.Address{genesis.DevToken1}})

	gen, err := genesis.NewCustomNet(cfg)
	require.NoError(t, err)
	err = gen.Build(newState())
	assert.ErrorContains(t, err, "pool 4")
}
