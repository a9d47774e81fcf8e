// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package master

import "github.com/dungeonfi/dungeon/metrics"

var (
	metricOperations = metrics.LazyLoadCounterVec("master_operations_count", []string{"op", "status"})
	metricMints      = metrics.LazyLoadCounterVec("master_mint_count", []string{"kind"})
	metricBurns      = metrics.LazyLoadCounterVec("master_burn_count", []string{"kind"})
)
