package fraig

import "github.com/prometheus/client_golang/prometheus"

var (
	nodeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fraig_nodes",
		Help: "Number of allocated nodes, inputs included.",
	})
	strashHitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fraig_strash_hits_total",
		Help: "Number of And constructions answered by the structural hash table.",
	})
	satQueryCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fraig_sat_queries_total",
		Help: "SAT equivalence queries by outcome.",
	}, []string{"outcome"})
	mergeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fraig_merges_total",
		Help: "Number of nodes merged into an equivalence class.",
	})
	simRoundCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fraig_simulation_rounds_total",
		Help: "Number of appended simulation columns, random and counter-example.",
	})
)

// RegisterMetrics registers the package collectors with r.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		nodeGauge,
		strashHitCounter,
		satQueryCounter,
		mergeCounter,
		simRoundCounter,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
