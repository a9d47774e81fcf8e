// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/state"
)

type Token struct {
	Address     dungeon.Address `json:"address"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	TotalSupply *utils.Amount   `json:"totalSupply"`
}

type Balance struct {
	Holder    dungeon.Address `json:"holder"`
	Balance   *utils.Amount   `json:"balance"`
	Allowance *utils.Amount   `json:"allowance"` // approved to the master
}

// Transfer is the request to transfer or approve.
type Transfer struct {
	Caller dungeon.Address       `json:"caller"`
	To     dungeon.Address       `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Tokens struct {
	ledger *ledger.Ledger
	solo   bool
}

// New creates the tokens API. Invocations are only served in solo mode.
func New(ledger *ledger.Ledger, solo bool) *Tokens {
	return &Tokens{ledger, solo}
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	jt := &Token{Address: addr}
	err = t.ledger.View(func(st *state.State, _ uint32) (err error) {
		token := builtin.Token(addr, st)
		if jt.Name, err = token.Name(); err != nil {
			return
		}
		if jt.Symbol, err = token.Symbol(); err != nil {
			return
		}
		supply, err := token.TotalSupply()
		if err != nil {
			return
		}
		jt.TotalSupply = utils.NewAmount(supply)
		return
	})
	if err != nil {
		return err
	}
	if jt.Symbol == "" {
		return utils.NotFound(errors.New("token not found"))
	}
	return utils.WriteJSON(w, jt)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	holder, err := utils.ParseAddress("holder", mux.Vars(req)["holder"])
	if err != nil {
		return err
	}
	jb := &Balance{Holder: holder}
	err = t.ledger.View(func(st *state.State, _ uint32) error {
		token := builtin.Token(addr, st)
		bal, err := token.BalanceOf(holder)
		if err != nil {
			return err
		}
		allowance, err := token.Allowance(holder, builtin.Master.Address)
		if err != nil {
			return err
		}
		jb.Balance = utils.NewAmount(bal)
		jb.Allowance = utils.NewAmount(allowance)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, jb)
}

func (t *Tokens) handleTransfer(approve bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
		if err != nil {
			return err
		}
		var body Transfer
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		amount, err := utils.ToUint256(body.Amount)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "amount"))
		}

		num, err := t.ledger.Invoke(func(st *state.State, _ uint32) error {
			token := builtin.Token(addr, st)
			if approve {
				return token.Approve(body.Caller, body.To, amount)
			}
			return token.Transfer(body.Caller, body.To, amount)
		})
		if err != nil {
			return utils.Revert(err)
		}
		return utils.WriteJSON(w, &utils.Receipt{Block: num})
	}
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{address}/balances/{holder}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/balances/{holder}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))

	if !t.solo {
		return
	}
	sub.Path("/{address}/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer(false)))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer(true)))
}
