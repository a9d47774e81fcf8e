// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonfi/dungeon/api/tokens"
	"github.com/dungeonfi/dungeon/api/utils"
	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/builtin/iron"
	"github.com/dungeonfi/dungeon/genesis"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/test/datagen"
)

var (
	alice = genesis.DevAccounts()[3]
	bob   = genesis.DevAccounts()[4]
	// an account out of the dev set, holding nothing
	nobody = datagen.RandAddress()
)

func newServer(t *testing.T) *httptest.Server {
	l, err := ledger.New(muxdb.NewMem(), genesis.NewDevnet(), ledger.Options{OnDemand: true})
	require.NoError(t, err)

	router := mux.NewRouter()
	tokens.New(l, true).Mount(router, "/tokens")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string, v any) int {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if res.StatusCode == http.StatusOK && v != nil {
		require.NoError(t, json.Unmarshal(body, v))
	}
	return res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func value(a *utils.Amount) string {
	return (*big.Int)(a.Value).String()
}

func TestGetToken(t *testing.T) {
	ts := newServer(t)

	var token tokens.Token
	require.Equal(t, http.StatusOK, httpGet(t, ts.URL+"/tokens/"+genesis.DevToken1.String(), &token))
	assert.Equal(t, genesis.DevToken1, token.Address)
	assert.Equal(t, "Dev Token 1", token.Name)
	assert.Equal(t, "DT1", token.Symbol)
	// every dev account holds a million
	assert.Equal(t, "10000000", token.TotalSupply.Formatted)

	require.Equal(t, http.StatusOK, httpGet(t, ts.URL+"/tokens/"+builtin.Iron.Address.String(), &token))
	assert.Equal(t, iron.Symbol, token.Symbol)
	assert.Equal(t, "0", value(token.TotalSupply))

	assert.Equal(t, http.StatusNotFound, httpGet(t, ts.URL+"/tokens/"+nobody.String(), nil))
	assert.Equal(t, http.StatusBadRequest, httpGet(t, ts.URL+"/tokens/0xzz", nil))
}

func TestTransferAndApprove(t *testing.T) {
	ts := newServer(t)
	tokenURL := ts.URL + "/tokens/" + genesis.DevToken2.String()

	var bal tokens.Balance
	require.Equal(t, http.StatusOK, httpGet(t, tokenURL+"/balances/"+alice.String(), &bal))
	assert.Equal(t, "1000000", bal.Balance.Formatted)
	assert.Equal(t, "1000000", bal.Allowance.Formatted)

	body, code := httpPost(t, tokenURL+"/transfer", utils.M{"caller": alice, "to": nobody, "amount": "0x64"})
	require.Equal(t, http.StatusOK, code, string(body))
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, uint32(1), receipt.Block)

	require.Equal(t, http.StatusOK, httpGet(t, tokenURL+"/balances/"+nobody.String(), &bal))
	assert.Equal(t, "100", value(bal.Balance))
	assert.Equal(t, "0", value(bal.Allowance))

	body, code = httpPost(t, tokenURL+"/approve", utils.M{"caller": nobody, "to": builtin.Master.Address, "amount": "60"})
	require.Equal(t, http.StatusOK, code, string(body))
	require.Equal(t, http.StatusOK, httpGet(t, tokenURL+"/balances/"+nobody.String(), &bal))
	assert.Equal(t, "60", value(bal.Allowance))

	// more than the balance
	body, code = httpPost(t, tokenURL+"/transfer", utils.M{"caller": nobody, "to": bob, "amount": "101"})
	assert.Equal(t, http.StatusUnprocessableEntity, code, string(body))

	body, code = httpPost(t, tokenURL+"/transfer", utils.M{"caller": nobody, "to": bob})
	assert.Equal(t, http.StatusBadRequest, code, string(body))
}
