package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	TierRemote = "remote"
	TierLocal  = "local"

	ReasonUnavailable = "unavailable"
	ReasonMalformed   = "malformed"
	ReasonDisabled    = "disabled"
)

// AnalyzerMetrics exposes counters/histograms for symptom analysis.
type AnalyzerMetrics struct {
	analysesTotal  *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	remoteLatency  *prometheus.HistogramVec
}

func NewAnalyzerMetrics(reg prometheus.Registerer) *AnalyzerMetrics {
	m := &AnalyzerMetrics{
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symptom_check",
			Subsystem: "analyzer",
			Name:      "analyses_total",
			Help:      "Total analyses by the tier that produced the result",
		}, []string{"tier"}),
		fallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symptom_check",
			Subsystem: "analyzer",
			Name:      "fallbacks_total",
			Help:      "Total fallbacks to the local rule table by reason",
		}, []string{"reason"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "symptom_check",
			Subsystem: "analyzer",
			Name:      "remote_latency_seconds",
			Help:      "Latency of remote analysis calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.analysesTotal, m.fallbacksTotal, m.remoteLatency)
	return m
}

func (m *AnalyzerMetrics) ObserveAnalysis(tier string) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(tier).Inc()
}

func (m *AnalyzerMetrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(reason).Inc()
}

func (m *AnalyzerMetrics) ObserveRemoteLatency(model, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.remoteLatency.WithLabelValues(model, outcome).Observe(seconds)
}

// Sample is one flattened series from a gathered registry.
type Sample struct {
	Name   string
	Labels map[string]string
	// Value is the counter value, or the observation count for histograms.
	Value float64
	// Sum is only set for histograms.
	Sum float64
}

// Collect gathers g and flattens counters and histograms into samples, in
// the registry's name order.
func Collect(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: labelMap(metric.GetLabel())}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = metric.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Value = float64(metric.GetHistogram().GetSampleCount())
				s.Sum = metric.GetHistogram().GetSampleSum()
			case dto.MetricType_GAUGE:
				s.Value = metric.GetGauge().GetValue()
			default:
				continue
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func labelMap(pairs []*dto.LabelPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.GetName()] = p.GetValue()
	}
	return m
}
