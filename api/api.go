// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/dungeonfi/dungeon/api/blocks"
	"github.com/dungeonfi/dungeon/api/master"
	"github.com/dungeonfi/dungeon/api/middleware"
	"github.com/dungeonfi/dungeon/api/pools"
	"github.com/dungeonfi/dungeon/api/tokens"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	EnableMetrics        bool
	SoloMode             bool
	SlowQueriesThreshold time.Duration
}

// New returns the api handler.
// Mutating routes are mounted only in solo mode.
func New(l *ledger.Ledger, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pools.New(l, opts.SoloMode).
		Mount(router, "/pools")
	tokens.New(l, opts.SoloMode).
		Mount(router, "/tokens")
	blocks.New(l, opts.SoloMode).
		Mount(router, "/blocks")
	master.New(l, opts.SoloMode).
		Mount(router, "/master")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	genesisID := l.GenesisID().String()
	handler = withGenesisID(handler, genesisID)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	return middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold)(handler)
}

// withGenesisID tags responses with the genesis id and rejects requests
// aimed at another ledger.
func withGenesisID(h http.Handler, genesisID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actual := r.Header.Get("x-genesis-id"); actual != "" && !strings.EqualFold(actual, genesisID) {
			w.Header().Set("x-genesis-id", genesisID)
			http.Error(w, "genesis id mismatch", http.StatusForbidden)
			return
		}
		w.Header().Set("x-genesis-id", genesisID)
		h.ServeHTTP(w, r)
	})
}
