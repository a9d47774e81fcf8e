// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dungeonfi/dungeon/api"
	"github.com/dungeonfi/dungeon/ledger"
	"github.com/dungeonfi/dungeon/log"
	"github.com/dungeonfi/dungeon/metrics"
	"github.com/dungeonfi/dungeon/muxdb"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "dungeon")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("Dungeon/%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	// a missing .env leaves the environment as is
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	app := cli.App{
		Version: fullVersion(),
		Name:    "Dungeon",
		Usage:   "Staking ledger minting IRON to stakers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			storageCacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			soloFlag,
			onDemandFlag,
			blockScheduleFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	if err := initLogger(ctx); err != nil {
		return err
	}

	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	onDemand := ctx.Bool(onDemandFlag.Name)
	var schedule cron.Schedule
	if !onDemand {
		if schedule, err = parseSchedule(ctx.String(blockScheduleFlag.Name)); err != nil {
			return err
		}
	}

	var metricsURL string
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	var (
		db          *muxdb.MuxDB
		instanceDir = "Memory"
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if db, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
	} else {
		db = muxdb.NewMem()
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()

	storageCache, err := readIntFromUInt64Flag(ctx.Uint64(storageCacheFlag.Name))
	if err != nil {
		return err
	}
	l, err := ledger.New(db, gene, ledger.Options{
		StorageCacheSize: storageCache,
		OnDemand:         onDemand,
	})
	if err != nil {
		return err
	}

	enableReqLogger := &atomic.Bool{}
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))
	solo := ctx.Bool(soloFlag.Name)
	handler := api.New(l, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      enableReqLogger,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		SoloMode:             solo,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
	})
	apiURL, stopAPI, err := startAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	printStartupMessage(gene, l, instanceDir, apiURL, metricsURL, solo)

	group, groupCtx := errgroup.WithContext(exitSignal)
	if schedule != nil {
		producer := newBlockProducer(l, schedule)
		group.Go(func() error { return producer.Run(groupCtx) })
	}
	group.Go(func() error {
		<-groupCtx.Done()
		return nil
	})
	return group.Wait()
}
