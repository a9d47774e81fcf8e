// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

// Context binds the storage of a builtin contract to a state.
type Context struct {
	address dungeon.Address
	state   *state.State
}

func NewContext(address dungeon.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() dungeon.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives a storage position from a variable name.
func Slot(name string) dungeon.Bytes32 {
	return dungeon.BytesToBytes32([]byte(name))
}
