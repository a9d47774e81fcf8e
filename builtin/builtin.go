// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the builtin contracts to their addresses.
package builtin

import (
	"github.com/dungeonfi/dungeon/builtin/erc20"
	"github.com/dungeonfi/dungeon/builtin/iron"
	"github.com/dungeonfi/dungeon/builtin/master"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

// Builtin contracts binding.
var (
	Master = &masterContract{newContract("Master")}
	Iron   = &ironContract{newContract("Iron")}
)

type contract struct {
	name    string
	Address dungeon.Address
}

func newContract(name string) *contract {
	return &contract{name, dungeon.BytesToAddress([]byte(name))}
}

func (c *contract) Name() string {
	return c.name
}

type (
	masterContract struct{ *contract }
	ironContract   struct{ *contract }
)

// Native returns the master on state, holding the minter and burner capability of IRON.
func (m *masterContract) Native(state *state.State) *master.Master {
	return master.New(m.Address, state, Iron.Native(state).Bind(m.Address), Tokens(state))
}

func (i *ironContract) Native(state *state.State) *iron.Iron {
	return iron.New(i.Address, state)
}

// Token returns the erc20 token living at addr.
func Token(addr dungeon.Address, state *state.State) *erc20.Token {
	return erc20.New(addr, state)
}

// Tokens resolves staked tokens on state. IRON resolves to the gated token.
func Tokens(state *state.State) master.TokenResolver {
	return func(addr dungeon.Address) (master.Token, error) {
		if addr == Iron.Address {
			return Iron.Native(state), nil
		}
		return Token(addr, state), nil
	}
}
