// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/ledger"
)

// maxAdvance bounds the blocks sealed by a single request.
const maxAdvance = 10_000

type Block struct {
	Number      uint32 `json:"number"`
	Timestamp   uint64 `json:"timestamp"`
	Invocations uint32 `json:"invocations"`
}

func convertBlock(b *ledger.Block) *Block {
	return &Block{b.Number, b.Timestamp, b.Invocations}
}

// Advance is the request to seal blocks.
type Advance struct {
	Count uint32 `json:"count"`
}

type Blocks struct {
	ledger *ledger.Ledger
	solo   bool
}

// New creates the blocks API. Blocks are only sealed on request in solo mode.
func New(ledger *ledger.Ledger, solo bool) *Blocks {
	return &Blocks{ledger, solo}
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	revision := mux.Vars(req)["revision"]
	if revision == "" || revision == "best" {
		return utils.WriteJSON(w, convertBlock(b.ledger.Best()))
	}
	num, err := utils.ParseUint("revision", revision, 32)
	if err != nil {
		return err
	}
	blk, err := b.ledger.GetBlock(uint32(num))
	if err != nil {
		if b.ledger.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, convertBlock(blk))
}

func (b *Blocks) handleAdvance(w http.ResponseWriter, req *http.Request) error {
	body := Advance{Count: 1}
	if req.ContentLength != 0 {
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
	}
	if body.Count == 0 || body.Count > maxAdvance {
		return utils.BadRequest(errors.Errorf("count: must be in [1, %d]", maxAdvance))
	}
	best, err := b.ledger.Advance(body.Count)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertBlock(best))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{revision}").
		Methods(http.MethodGet).
		Name("GET /blocks/{revision}").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))

	if b.solo {
		sub.Path("").
			Methods(http.MethodPost).
			Name("POST /blocks").
			HandlerFunc(utils.WrapHandlerFunc(b.handleAdvance))
	}
}
