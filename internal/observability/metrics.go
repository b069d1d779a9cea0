package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the simulator and the favorites store.
type Metrics struct {
	Simulations           *prometheus.CounterVec // labels: result={low,elevated}, source={heuristic,model}
	FavoritesMutations    *prometheus.CounterVec // labels: op={add,remove,toggle,clear}, outcome={success,error}
	FavoritesReadDegraded prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Simulations,
		m.FavoritesMutations,
		m.FavoritesReadDegraded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbreathe",
			Name:      "simulations_total",
			Help:      "Risk simulations by result and classifier source.",
		}, []string{"result", "source"}),
		FavoritesMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbreathe",
			Name:      "favorites_mutations_total",
			Help:      "Favorites mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		FavoritesReadDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wellbreathe",
			Name:      "favorites_read_degraded_total",
			Help:      "Favorites reads that fell back to an empty list after a storage or decode failure.",
		}),
	}
}
