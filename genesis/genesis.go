// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state of a ledger.
package genesis

import (
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	name    string
}

// Build builds the genesis state into st.
func (g *Genesis) Build(st *state.State) error {
	return g.builder.Build(st)
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// ID identifies the genesis by its name and content.
func (g *Genesis) ID() dungeon.Bytes32 {
	return g.builder.id(g.name)
}
