// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	minted := Counter("minted_count")
	ops := CounterVec("operations_count", []string{"op"})
	best := Gauge("best_block")
	hist := Histogram("invoke_ms", BucketFastMs)
	histVec := HistogramVec("api_ms", []string{"path"}, BucketHTTPReqs)

	minted.Add(2)
	Counter("minted_count").Add(3) // same meter
	ops.AddWithLabel(1, map[string]string{"op": "deposit"})
	ops.AddWithLabel(4, map[string]string{"op": "collect"})
	best.Set(10)
	best.Add(2)
	hist.Observe(100)
	hist.Observe(200)
	histVec.ObserveWithLabels(5, map[string]string{"path": "pools"})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	got := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		got[mf.GetName()] = mf
	}

	assert.Equal(t, float64(5), got["dungeon_metrics_minted_count"].Metric[0].GetCounter().GetValue())
	assert.Len(t, got["dungeon_metrics_operations_count"].Metric, 2)
	assert.Equal(t, float64(12), got["dungeon_metrics_best_block"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(300), got["dungeon_metrics_invoke_ms"].Metric[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(1), got["dungeon_metrics_api_ms"].Metric[0].GetHistogram().GetSampleCount())

	ts := httptest.NewServer(HTTPHandler())
	defer ts.Close()
	res, err := ts.Client().Get(ts.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "dungeon_metrics_best_block 12")
}
