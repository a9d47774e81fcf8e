// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/api/master"
	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/genesis"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/muxdb"
)

func newServer(t *testing.T) *httptest.Server {
	l, err := ledger.New(muxdb.NewMem(), genesis.NewDevnet(), ledger.Options{OnDemand: true})
	require.NoError(t, err)

	router := mux.NewRouter()
	master.New(l, true).Mount(router, "/master")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func getMaster(t *testing.T, url string) *master.Master {
	res, err := http.Get(url + "/master") //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var m master.Master
	require.NoError(t, json.NewDecoder(res.Body).Decode(&m))
	return &m
}

func setOperator(t *testing.T, url string, caller, operator dungeon.Address) ([]byte, int) {
	data, err := json.Marshal(&master.SetOperator{Caller: caller, Operator: operator})
	require.NoError(t, err)
	res, err := http.Post(url+"/master/operator", "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestGetMaster(t *testing.T) {
	ts := newServer(t)
	accounts := genesis.DevAccounts()

	m := getMaster(t, ts.URL)
	assert.Equal(t, builtin.Master.Address, m.Address)
	assert.Equal(t, accounts[0], m.Operator)
	assert.Equal(t, accounts[1], m.Treasury)
	assert.Equal(t, builtin.Iron.Address, m.RewardToken)
	assert.Equal(t, "200", m.RewardPerBlock.Formatted)
	assert.Equal(t, uint32(1), m.StartBlock)
	assert.Equal(t, dungeon.DefaultDevFeeBP, m.DevFeeBP)
	assert.Equal(t, dungeon.DefaultTreasuryFeeBP, m.TreasuryFeeBP)
	assert.Equal(t, dungeon.DefaultMultiBurnDevFeeBP, m.MultiBurnDevFeeBP)
	assert.Equal(t, dungeon.DefaultEmergencyFeeBP, m.EmergencyFeeBP)
	assert.Equal(t, uint64(4), m.PoolCount)
	assert.Equal(t, uint64(200), m.TotalWeight)
}

func TestSetOperator(t *testing.T) {
	ts := newServer(t)
	accounts := genesis.DevAccounts()

	_, code := setOperator(t, ts.URL, accounts[5], accounts[5])
	assert.Equal(t, http.StatusForbidden, code)

	_, code = setOperator(t, ts.URL, accounts[0], dungeon.Address{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	body, code := setOperator(t, ts.URL, accounts[0], accounts[5])
	require.Equal(t, http.StatusOK, code, string(body))
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, uint32(1), receipt.Block)
	assert.Equal(t, accounts[5], getMaster(t, ts.URL).Operator)

	// the former operator lost the role
	_, code = setOperator(t, ts.URL, accounts[0], accounts[0])
	assert.Equal(t, http.StatusForbidden, code)
}
