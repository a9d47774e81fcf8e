// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/builtin/reverts"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/state"
)

type TestStruct struct {
	Field1 uint64
	Amount *uint256.Int
	Addr1  dungeon.Address
}

// newTestContext returns a fresh Context with in-memory DB.
func newTestContext() *Context {
	st := state.NewStater(muxdb.NewMem().NewStore("ledger"), 0).NewState()
	return NewContext(dungeon.Address{1}, st)
}

func TestMappingStruct(t *testing.T) {
	m := NewMapping[dungeon.Address, *TestStruct](newTestContext(), Slot("structs"))
	key := dungeon.Address{2}

	v, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint64(0), v.Field1)

	want := &TestStruct{Field1: 7, Amount: uint256.NewInt(1e18), Addr1: dungeon.Address{3}}
	require.NoError(t, m.Set(key, want))

	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, v)

	v, err = m.Get(dungeon.Address{4})
	require.NoError(t, err)
	assert.Equal(t, &TestStruct{}, v)
}

func TestMappingsAreIsolated(t *testing.T) {
	ctx := newTestContext()
	a := NewMapping[dungeon.Address, uint64](ctx, Slot("a"))
	b := NewMapping[dungeon.Address, uint64](ctx, Slot("b"))
	key := dungeon.Address{9}

	require.NoError(t, a.Set(key, 1))
	v, err := b.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestRawAndAddress(t *testing.T) {
	ctx := newTestContext()

	addr := NewAddress(ctx, Slot("owner"))
	v, err := addr.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, addr.Set(dungeon.Address{5}))
	v, err = addr.Get()
	require.NoError(t, err)
	assert.Equal(t, dungeon.Address{5}, v)

	counter := NewRaw[uint64](ctx, Slot("counter"))
	require.NoError(t, counter.Set(3))
	n, err := counter.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestUint256(t *testing.T) {
	u := NewUint256(newTestContext(), Slot("supply"))

	v, err := u.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, u.Add(uint256.NewInt(10)))
	require.NoError(t, u.Sub(uint256.NewInt(4)))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(6), v.Uint64())

	assert.ErrorIs(t, u.Sub(uint256.NewInt(7)), reverts.ErrArithmetic)

	max := new(uint256.Int).SetAllOne()
	require.NoError(t, u.Set(max))
	assert.ErrorIs(t, u.Add(uint256.NewInt(1)), reverts.ErrArithmetic)
}
