// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dungeonfi/dungeon/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:   "genesis",
		EnvVar: "DUNGEON_GENESIS",
		Usage:  "path to a YAML genesis file, the devnet genesis is used if not set",
	}
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		EnvVar: "DUNGEON_DATA_DIR",
		Value:  defaultDataDir(),
		Usage:  "directory for ledger databases",
	}
	persistFlag = cli.BoolFlag{
		Name:   "persist",
		EnvVar: "DUNGEON_PERSIST",
		Usage:  "ledger storage option, if set data will be saved to disk",
	}
	cacheFlag = cli.Uint64Flag{
		Name:   "cache",
		EnvVar: "DUNGEON_CACHE",
		Value:  512,
		Usage:  "megabytes of ram allocated to the database read cache",
	}
	storageCacheFlag = cli.Uint64Flag{
		Name:   "storage-cache",
		EnvVar: "DUNGEON_STORAGE_CACHE",
		Value:  65536,
		Usage:  "number of storage slots cached in memory",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		EnvVar: "DUNGEON_API_ADDR",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		EnvVar: "DUNGEON_API_CORS",
		Value:  "",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:   "api-timeout",
		EnvVar: "DUNGEON_API_TIMEOUT",
		Value:  10000,
		Usage:  "API request timeout value in milliseconds",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:   "api-slow-queries-threshold",
		EnvVar: "DUNGEON_API_SLOW_QUERIES_THRESHOLD",
		Value:  0,
		Usage:  "all queries with duration(ms) above the threshold will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		EnvVar: "DUNGEON_ENABLE_API_LOGS",
		Usage:  "enables API requests logging",
	}
	soloFlag = cli.BoolFlag{
		Name:   "solo",
		EnvVar: "DUNGEON_SOLO",
		Usage:  "serve the API endpoints invoking the ledger",
	}
	onDemandFlag = cli.BoolFlag{
		Name:   "on-demand",
		EnvVar: "DUNGEON_ON_DEMAND",
		Usage:  "seal a block after every successful invocation instead of on schedule",
	}
	blockScheduleFlag = cli.StringFlag{
		Name:   "block-schedule",
		EnvVar: "DUNGEON_BLOCK_SCHEDULE",
		Value:  "@every 10s",
		Usage:  "cron expression (seconds optional) or descriptor scheduling block production",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:   "verbosity",
		EnvVar: "DUNGEON_VERBOSITY",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		EnvVar: "DUNGEON_JSON_LOGS",
		Usage:  "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		EnvVar: "DUNGEON_ENABLE_METRICS",
		Usage:  "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		EnvVar: "DUNGEON_METRICS_ADDR",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
	}
)
