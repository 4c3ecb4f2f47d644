package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzerMetricsCollect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAnalyzerMetrics(reg)

	m.ObserveAnalysis(TierLocal)
	m.ObserveAnalysis(TierLocal)
	m.ObserveAnalysis(TierRemote)
	m.ObserveFallback(ReasonMalformed)
	m.ObserveRemoteLatency("gemini-2.5-flash", "ok", 0.25)
	m.ObserveRemoteLatency("gemini-2.5-flash", "ok", 0.5)

	samples, err := Collect(reg)
	require.NoError(t, err)

	byKey := map[string]Sample{}
	for _, s := range samples {
		key := s.Name
		for _, l := range []string{"tier", "reason", "outcome"} {
			if v, ok := s.Labels[l]; ok {
				key += "/" + v
			}
		}
		byKey[key] = s
	}

	assert.Equal(t, 2.0, byKey["symptom_check_analyzer_analyses_total/local"].Value)
	assert.Equal(t, 1.0, byKey["symptom_check_analyzer_analyses_total/remote"].Value)
	assert.Equal(t, 1.0, byKey["symptom_check_analyzer_fallbacks_total/malformed"].Value)

	hist := byKey["symptom_check_analyzer_remote_latency_seconds/ok"]
	assert.Equal(t, 2.0, hist.Value)
	assert.InDelta(t, 0.75, hist.Sum, 1e-9)
	assert.Equal(t, "gemini-2.5-flash", hist.Labels["model"])
}

func TestAnalyzerMetricsDefaultRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prev := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = reg
	t.Cleanup(func() { prometheus.DefaultRegisterer = prev })

	m := NewAnalyzerMetrics(nil)
	m.ObserveFallback(ReasonDisabled)

	samples, err := Collect(reg)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestAnalyzerMetricsNilSafe(t *testing.T) {
	var m *AnalyzerMetrics
	m.ObserveAnalysis(TierLocal)
	m.ObserveFallback(ReasonUnavailable)
	m.ObserveRemoteLatency("m", "error", 0.1)
}
