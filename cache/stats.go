// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts lookups of a cache. Safe for concurrent use.
type Stats struct {
	hits     atomic.Int64
	misses   atomic.Int64
	reported atomic.Int32 // permille rate at the previous Report
}

func (s *Stats) Hit()  { s.hits.Add(1) }
func (s *Stats) Miss() { s.misses.Add(1) }

// Rate is the hit rate in permille, 0 before any lookup.
func (s *Stats) Rate() int32 {
	hits, misses := s.hits.Load(), s.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return int32(hits * 1000 / (hits + misses))
}

// Report returns the counters and whether the rate moved since the previous
// Report, so callers can log only on change.
func (s *Stats) Report() (hits, misses int64, moved bool) {
	rate := s.Rate()
	return s.hits.Load(), s.misses.Load(), s.reported.Swap(rate) != rate
}
