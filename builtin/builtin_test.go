// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/builtin/erc20"
	"github.com/dungeonfi/dungeon/builtin/iron"
	"github.com/dungeonfi/dungeon/builtin/master"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/state"
)

func TestAddresses(t *testing.T) {
	assert.Equal(t, dungeon.BytesToAddress([]byte("Master")), Master.Address)
	assert.Equal(t, dungeon.BytesToAddress([]byte("Iron")), Iron.Address)
	assert.Equal(t, "Iron", Iron.Name())
}

func TestTokens(t *testing.T) {
	st := state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
	resolve := Tokens(st)

	token, err := resolve(Iron.Address)
	require.NoError(t, err)
	assert.IsType(t, &iron.Iron{}, token)
	_, burns := token.(master.Burner)
	assert.False(t, burns, "IRON burns are gated by the burner role")

	token, err = resolve(dungeon.Address{1})
	require.NoError(t, err)
	assert.IsType(t, &erc20.Token{}, token)
	_, burns = token.(master.Burner)
	assert.True(t, burns)
}

func TestMasterNative(t *testing.T) {
	st := state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
	m := Master.Native(st)
	assert.Equal(t, Master.Address, m.Address())
}
