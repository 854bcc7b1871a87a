package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusMinted  = "minted"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Metrics tracks ingest outcomes per network.
type Metrics struct {
	events       *prometheus.CounterVec
	saveDuration *prometheus.HistogramVec
}

// New registers the indexer collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "mint_indexer_events_total", Help: "TokenMinted logs by outcome"},
			[]string{"network", "status"},
		),
		saveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "mint_indexer_save_duration_seconds", Help: "Map and persist latency", Buckets: prometheus.DefBuckets},
			[]string{"network"},
		),
	}
	for _, c := range []prometheus.Collector{m.events, m.saveDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveEvent counts one log with the given status. A nil Metrics is a no-op.
func (m *Metrics) ObserveEvent(network, status string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(networkLabel(network), status).Inc()
}

// ObserveSave records how long a map-and-persist call took.
func (m *Metrics) ObserveSave(network string, d time.Duration) {
	if m == nil {
		return
	}
	m.saveDuration.WithLabelValues(networkLabel(network)).Observe(d.Seconds())
}

// Handler serves the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func networkLabel(network string) string {
	if network == "" {
		return "default"
	}
	return network
}
