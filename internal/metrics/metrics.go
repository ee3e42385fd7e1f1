package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments token issuance. It satisfies issuer.Observer.
type Metrics struct {
	Issued   prometheus.Counter
	Failures *prometheus.CounterVec
	Latency  prometheus.Histogram
	Expiry   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Issued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jwtgenerator_tokens_issued_total",
			Help: "Total tokens signed successfully",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jwtgenerator_issue_failures_total",
			Help: "Failed issuer constructions and signing attempts by kind",
		}, []string{"kind"}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jwtgenerator_sign_duration_seconds",
			Help:    "Time spent parsing the key and signing a token",
			Buckets: prometheus.DefBuckets,
		}),
		Expiry: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jwtgenerator_token_expiry_timestamp_seconds",
			Help: "Unix exp claim of the most recently issued token",
		}),
	}
	reg.MustRegister(m.Issued, m.Failures, m.Latency, m.Expiry)
	return m
}

func (m *Metrics) ObserveIssued(expiresAt time.Time, took time.Duration) {
	m.Issued.Inc()
	m.Latency.Observe(took.Seconds())
	m.Expiry.Set(float64(expiresAt.Unix()))
}

func (m *Metrics) ObserveFailure(kind string) {
	m.Failures.WithLabelValues(kind).Inc()
}

// WriteTextfile dumps g in the Prometheus text format for the node exporter
// textfile collector. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
