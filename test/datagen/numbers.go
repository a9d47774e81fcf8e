// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"

	"github.com/holiman/uint256"
)

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandUint256N returns a random amount in [1, n].
func RandUint256N(n uint64) *uint256.Int {
	return uint256.NewInt(mathrand.Uint64N(n) + 1) //#nosec G404
}
