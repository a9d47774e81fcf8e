// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dungeon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x000000000000000000000000000000000000dEaD", false},
		{"000000000000000000000000000000000000dead", false},
		{"0X000000000000000000000000000000000000dEaD", false},
		{"1x000000000000000000000000000000000000dEaD", true},
		{"0x0000dEaD", true},
		{"0x00000000000000000000000000000000000000zz", true},
	}
	for _, tt := range tests {
		addr, err := ParseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, BurnAddress, addr)
	}
}

func TestAddressText(t *testing.T) {
	addr := BytesToAddress([]byte("bob"))

	data, err := json.Marshal(addr)
	assert.NoError(t, err)
	assert.Equal(t, `"0x0000000000000000000000000000000000626f62"`, string(data))

	var decoded Address
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x62"`), &decoded))
	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("pool"), []byte("user"))
	b := Blake2b([]byte("pooluser"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Blake2b([]byte("pool")))
	assert.False(t, a.IsZero())
}
