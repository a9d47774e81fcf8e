// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/builtin/master"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/state"
)

type stakeFunc func(caller dungeon.Address, id uint64, amount *uint256.Int, block uint32) error

type Pools struct {
	ledger *ledger.Ledger
	solo   bool
}

// New creates the pools API. Invocations are only served in solo mode.
func New(ledger *ledger.Ledger, solo bool) *Pools {
	return &Pools{ledger, solo}
}

func parseID(req *http.Request) (uint64, error) {
	return utils.ParseUint("id", mux.Vars(req)["id"], 64)
}

func (p *Pools) handleGetPools(w http.ResponseWriter, _ *http.Request) error {
	pools := make([]*Pool, 0)
	err := p.ledger.View(func(st *state.State, _ uint32) error {
		m := builtin.Master.Native(st)
		count, err := m.PoolCount()
		if err != nil {
			return err
		}
		for id := range count {
			rec, err := m.Pool(id)
			if err != nil {
				return err
			}
			pools = append(pools, convertPool(id, rec))
		}
		return nil
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, pools)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var jp *Pool
	err = p.ledger.View(func(st *state.State, _ uint32) error {
		rec, err := builtin.Master.Native(st).Pool(id)
		if err != nil {
			return err
		}
		jp = convertPool(id, rec)
		return nil
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, jp)
}

func (p *Pools) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	user, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var jp *Position
	err = p.ledger.View(func(st *state.State, block uint32) error {
		m := builtin.Master.Native(st)
		pos, err := m.Position(id, user)
		if err != nil {
			return err
		}
		staked, err := m.Staked(id, user, block)
		if err != nil {
			return err
		}
		pending, err := m.PendingReward(id, user, block)
		if err != nil {
			return err
		}
		jp = convertPosition(id, user, pos, staked, pending)
		return nil
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, jp)
}

func (p *Pools) handleAddPool(w http.ResponseWriter, req *http.Request) error {
	var body AddPool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	var add func(m *master.Master, block uint32) (uint64, error)
	switch body.Kind {
	case pool.KindNormal:
		if len(body.StakedTokens) != 1 {
			return utils.BadRequest(errors.New("stakedTokens: normal pool stakes a single token"))
		}
		add = func(m *master.Master, block uint32) (uint64, error) {
			return m.AddNormalPool(body.Caller, body.StakedTokens[0], body.RewardToken, body.Weight, block)
		}
	case pool.KindBurn, pool.KindMultiBurn:
		rewardPerInterval, err := utils.ToUint256(body.RewardPerInterval)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "rewardPerInterval"))
		}
		burnPerInterval, err := utils.ToUint256(body.BurnPerInterval)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "burnPerInterval"))
		}
		if body.Kind == pool.KindMultiBurn {
			add = func(m *master.Master, block uint32) (uint64, error) {
				return m.AddMultiBurnPool(body.Caller, body.StakedTokens, body.RewardToken, body.Interval, rewardPerInterval, burnPerInterval, block)
			}
			break
		}
		if len(body.StakedTokens) != 1 {
			return utils.BadRequest(errors.New("stakedTokens: burn pool stakes a single token"))
		}
		add = func(m *master.Master, block uint32) (uint64, error) {
			return m.AddBurnPool(body.Caller, body.StakedTokens[0], body.RewardToken, body.Interval, rewardPerInterval, burnPerInterval, block)
		}
	default:
		return utils.BadRequest(errors.New("kind: missing"))
	}

	var id uint64
	num, err := p.ledger.Invoke(func(st *state.State, block uint32) (err error) {
		id, err = add(builtin.Master.Native(st), block)
		return
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &AddPoolReceipt{utils.Receipt{Block: num}, id})
}

// invoke runs fn on the master with the kind of pool id.
func (p *Pools) invoke(w http.ResponseWriter, id uint64, fn func(m *master.Master, kind pool.Kind, block uint32) error) error {
	num, err := p.ledger.Invoke(func(st *state.State, block uint32) error {
		m := builtin.Master.Native(st)
		rec, err := m.Pool(id)
		if err != nil {
			return err
		}
		return fn(m, rec.Kind, block)
	})
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &utils.Receipt{Block: num})
}

func (p *Pools) handleStake(pick func(m *master.Master, kind pool.Kind) stakeFunc) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := parseID(req)
		if err != nil {
			return err
		}
		var body Stake
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		amount, err := utils.ToUint256(body.Amount)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "amount"))
		}
		return p.invoke(w, id, func(m *master.Master, kind pool.Kind, block uint32) error {
			return pick(m, kind)(body.Caller, id, amount, block)
		})
	}
}

func (p *Pools) handleCollect(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var body Call
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return p.invoke(w, id, func(m *master.Master, kind pool.Kind, block uint32) error {
		switch kind {
		case pool.KindBurn:
			return m.CollectBurnPool(body.Caller, id, block)
		case pool.KindMultiBurn:
			return m.CollectMultiBurnPool(body.Caller, id, block)
		default:
			return m.CollectNormalPool(body.Caller, id, block)
		}
	})
}

func (p *Pools) handleEmergencyWithdraw(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(req)
	if err != nil {
		return err
	}
	var body Call
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return p.invoke(w, id, func(m *master.Master, _ pool.Kind, _ uint32) error {
		return m.EmergencyWithdrawNormalPool(body.Caller, id)
	})
}

func deposit(m *master.Master, kind pool.Kind) stakeFunc {
	switch kind {
	case pool.KindBurn:
		return m.DepositBurnPool
	case pool.KindMultiBurn:
		return m.DepositMultiBurnPool
	default:
		return m.DepositNormalPool
	}
}

func withdraw(m *master.Master, kind pool.Kind) stakeFunc {
	switch kind {
	case pool.KindBurn:
		return m.WithdrawBurnPool
	case pool.KindMultiBurn:
		return m.WithdrawMultiBurnPool
	default:
		return m.WithdrawNormalPool
	}
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{id}/positions/{address}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/positions/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))

	if !p.solo {
		return
	}
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAddPool))
	sub.Path("/{id}/deposit").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/deposit").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake(deposit)))
	sub.Path("/{id}/withdraw").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake(withdraw)))
	sub.Path("/{id}/collect").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/collect").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCollect))
	sub.Path("/{id}/emergency-withdraw").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/emergency-withdraw").
		HandlerFunc(utils.WrapHandlerFunc(p.handleEmergencyWithdraw))
}
