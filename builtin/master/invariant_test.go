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
	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/test/datagen"
)

type stakingOps struct {
	deposit  func(dungeon.Address, uint64, *uint256.Int, uint32) error
	withdraw func(dungeon.Address, uint64, *uint256.Int, uint32) error
	collect  func(dungeon.Address, uint64, uint32) error
}

func TestRandomizedInvariants(t *testing.T) {
	env := newEnv(t, "100000000", "10000000")
	normal, err := env.master.AddNormalPool(dev, env.token1.Address(), builtin.Iron.Address, 100, 1)
	require.NoError(t, err)
	burn, err := env.master.AddBurnPool(dev, env.token2.Address(), builtin.Iron.Address, 5, u("1000000000000000000"), u("1000"), 1)
	require.NoError(t, err)

	pools := []struct {
		id    uint64
		token *erc20.Token
		ops   stakingOps
	}{
		{normal, env.token1, stakingOps{env.master.DepositNormalPool, env.master.WithdrawNormalPool, env.master.CollectNormalPool}},
		{burn, env.token2, stakingOps{env.master.DepositBurnPool, env.master.WithdrawBurnPool, env.master.CollectBurnPool}},
	}
	users := []dungeon.Address{bob, carol}
	lastAcc := []*uint256.Int{new(uint256.Int), new(uint256.Int)}

	block := uint32(1)
	for step := range 300 {
		block += uint32(datagen.RandIntN(7))
		idx := datagen.RandIntN(len(pools))
		p := pools[idx]
		user := users[datagen.RandIntN(len(users))]

		op := datagen.RandIntN(4)
		if op == 3 && p.id != normal {
			op = 2
		}
		switch op {
		case 0:
			bal, err := p.token.BalanceOf(user)
			require.NoError(t, err)
			if bal.IsZero() {
				continue
			}
			err = p.ops.deposit(user, p.id, datagen.RandUint256N(bal.Uint64()), block)
			if err != nil {
				require.ErrorIs(t, err, reverts.ErrInvalidAmount, "step %d", step)
			}
		case 1:
			staked, err := env.master.Staked(p.id, user, block)
			require.NoError(t, err)
			if staked.IsZero() {
				continue
			}
			require.NoError(t, p.ops.withdraw(user, p.id, datagen.RandUint256N(staked.Uint64()), block), "step %d", step)
		case 2:
			pending, err := env.master.PendingReward(p.id, user, block)
			require.NoError(t, err)
			before, err := env.iron.BalanceOf(user)
			require.NoError(t, err)
			require.NoError(t, p.ops.collect(user, p.id, block))
			after, err := env.iron.BalanceOf(user)
			require.NoError(t, err)
			assert.Equal(t, pending.Dec(), new(uint256.Int).Sub(after, before).Dec(), "step %d", step)
		default:
			staked, err := env.master.Staked(p.id, user, block)
			require.NoError(t, err)
			before, err := p.token.BalanceOf(user)
			require.NoError(t, err)
			require.NoError(t, env.master.EmergencyWithdrawNormalPool(user, p.id), "step %d", step)
			after, err := p.token.BalanceOf(user)
			require.NoError(t, err)
			fee := staked.Uint64() * 25 / 10000
			assert.Equal(t, staked.Uint64()-fee, after.Uint64()-before.Uint64(), "step %d", step)
		}

		for i, pp := range pools {
			pool, err := env.master.Pool(pp.id)
			require.NoError(t, err)

			shares := new(uint256.Int)
			for _, holder := range users {
				pos, err := env.master.Position(pp.id, holder)
				require.NoError(t, err)
				if pos.Epoch == pool.Epoch {
					shares.Add(shares, pos.Amount)
				}
			}
			assert.Equal(t, pool.TotalShares.Dec(), shares.Dec(), "step %d pool %d", step, pp.id)
			if pp.id == normal {
				assert.Equal(t, pool.TotalStaked.Dec(), pool.TotalShares.Dec(), "step %d", step)
			}

			held, err := pp.token.BalanceOf(builtin.Master.Address)
			require.NoError(t, err)
			assert.Equal(t, pool.TotalStaked.Dec(), held.Dec(), "step %d pool %d", step, pp.id)

			assert.False(t, pool.AccRewardPerShare.Lt(lastAcc[i]), "step %d pool %d", step, pp.id)
			lastAcc[i] = pool.AccRewardPerShare
		}
	}
}
