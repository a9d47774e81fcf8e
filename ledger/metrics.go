// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/dungeonfi/dungeon/metrics"

var (
	metricBestBlock      = metrics.LazyLoadGauge("best_block")
	metricInvocations    = metrics.LazyLoadCounterVec("ledger_invocation_count", []string{"status"})
	metricInvokeDuration = metrics.LazyLoadHistogram("invoke_duration_ms", metrics.BucketFastMs)
)
