// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dungeon

import "github.com/holiman/uint256"

// Constants of the ledger.
const (
	MaxBP uint64 = 10000 // basis points denominator.

	DefaultDevFeeBP          uint64 = 500
	DefaultTreasuryFeeBP     uint64 = 500
	DefaultMultiBurnDevFeeBP uint64 = 500
	DefaultEmergencyFeeBP    uint64 = 25
)

var (
	// Precision scales the accumulated reward per share.
	Precision = uint256.NewInt(1e18)

	// BurnAddress receives burned principal of tokens that can't burn by themselves.
	BurnAddress = MustParseAddress("0x000000000000000000000000000000000000dEaD")
)
