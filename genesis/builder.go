// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"io"

	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

// Builder helper to build genesis state.
type Builder struct {
	stateProcs []func(state *state.State) error
	source     []byte
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Source sets the document the genesis is built from. It is part of the genesis ID.
func (b *Builder) Source(data []byte) *Builder {
	b.source = append([]byte(nil), data...)
	return b
}

// Build runs every state process on st, in order.
func (b *Builder) Build(st *state.State) error {
	for i, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrapf(err, "state process %d", i)
		}
	}
	return nil
}

func (b *Builder) id(name string) dungeon.Bytes32 {
	return dungeon.Blake2bFn(func(w io.Writer) {
		w.Write([]byte(name))
		w.Write(b.source)
	})
}
