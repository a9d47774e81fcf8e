// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import "github.com/dungeonfi/dungeon/metrics"

var metricBatchWriteDuration = metrics.LazyLoadHistogram("muxdb_batch_write_ms", metrics.BucketFastMs)
