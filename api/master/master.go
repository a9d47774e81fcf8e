// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/state"
)

type Master struct {
	Address           dungeon.Address `json:"address"`
	Operator          dungeon.Address `json:"operator"`
	Treasury          dungeon.Address `json:"treasury"`
	RewardToken       dungeon.Address `json:"rewardToken"`
	RewardPerBlock    *utils.Amount   `json:"rewardPerBlock"`
	StartBlock        uint32          `json:"startBlock"`
	DevFeeBP          uint64          `json:"devFeeBP"`
	TreasuryFeeBP     uint64          `json:"treasuryFeeBP"`
	MultiBurnDevFeeBP uint64          `json:"multiBurnDevFeeBP"`
	EmergencyFeeBP    uint64          `json:"emergencyFeeBP"`
	PoolCount         uint64          `json:"poolCount"`
	TotalWeight       uint64          `json:"totalWeight"`
}

// SetOperator is the request to hand the operator role over.
type SetOperator struct {
	Caller   dungeon.Address `json:"caller"`
	Operator dungeon.Address `json:"operator"`
}

type API struct {
	ledger *ledger.Ledger
	solo   bool
}

// New creates the master API. Invocations are only served in solo mode.
func New(ledger *ledger.Ledger, solo bool) *API {
	return &API{ledger, solo}
}

func (a *API) handleGetMaster(w http.ResponseWriter, _ *http.Request) error {
	jm := &Master{Address: builtin.Master.Address}
	err := a.ledger.View(func(st *state.State, _ uint32) error {
		m := builtin.Master.Native(st)
		cfg, err := m.Config()
		if err != nil {
			return err
		}
		if jm.PoolCount, err = m.PoolCount(); err != nil {
			return err
		}
		if jm.TotalWeight, err = m.TotalWeight(); err != nil {
			return err
		}
		jm.Operator = cfg.Operator
		jm.Treasury = cfg.Treasury
		jm.RewardToken = cfg.RewardToken
		jm.RewardPerBlock = utils.NewAmount(cfg.RewardPerBlock)
		jm.StartBlock = cfg.StartBlock
		jm.DevFeeBP = cfg.DevFeeBP
		jm.TreasuryFeeBP = cfg.TreasuryFeeBP
		jm.MultiBurnDevFeeBP = cfg.MultiBurnDevFeeBP
		jm.EmergencyFeeBP = cfg.EmergencyFeeBP
		return nil
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, jm)
}

func (a *API) handleSetOperator(w http.ResponseWriter, req *http.Request) error {
	var body SetOperator
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	num, err := a.ledger.Invoke(func(st *state.State, _ uint32) error {
		return builtin.Master.Native(st).SetOperator(body.Caller, body.Operator)
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &utils.Receipt{Block: num})
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /master").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetMaster))

	if a.solo {
		sub.Path("/operator").
			Methods(http.MethodPost).
			Name("POST /master/operator").
			HandlerFunc(utils.WrapHandlerFunc(a.handleSetOperator))
	}
}
