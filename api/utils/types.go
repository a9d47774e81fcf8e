// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/log"
)

var logger = log.WithContext("pkg", "api")

// Decimals of every token, for display.
const Decimals = 18

// Amount is a token amount.
type Amount struct {
	Value     *math.HexOrDecimal256 `json:"value"`
	Formatted string                `json:"formatted"` // in whole tokens
}

// NewAmount converts v.
func NewAmount(v *uint256.Int) *Amount {
	b := v.ToBig()
	return &Amount{
		Value:     (*math.HexOrDecimal256)(b),
		Formatted: decimal.NewFromBigInt(b, -Decimals).String(),
	}
}

// ToUint256 converts an amount of a request.
func ToUint256(v *math.HexOrDecimal256) (*uint256.Int, error) {
	if v == nil {
		return nil, errors.New("missing")
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative")
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("overflows 256 bits")
	}
	return u, nil
}

// ParseAddress parses a path variable as an address.
func ParseAddress(name, s string) (dungeon.Address, error) {
	addr, err := dungeon.ParseAddress(s)
	if err != nil {
		return dungeon.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseUint parses a path variable as an unsigned integer of the given bit size.
func ParseUint(name, s string, bitSize int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}

// Receipt is the response of a successful invocation.
type Receipt struct {
	Block uint32 `json:"block"` // the block the invocation ran at
}
