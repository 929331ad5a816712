package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_recompute_sweep_duration_seconds",
			Help:    "Duration of each recomputation sweep in seconds.",
			Buckets: []float64{1, 5, 30, 120, 600, 1800},
		},
	)
	PairStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "engine_pair_step_duration_seconds",
			Help:       "Duration of each step when evaluating a single pair.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	ScoredPairsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_pairs_scored_total",
			Help: "Total number of pairs that passed hard filters and were scored.",
		},
	)
	IneligiblePairsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_pairs_ineligible_total",
			Help: "Total number of pairs rejected by hard filters.",
		},
		[]string{"reason"},
	)
	StaleWriteConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_match_stale_write_conflicts_total",
			Help: "Total number of optimistic-concurrency conflicts on match writes.",
		},
	)
	CrossCurrencyOutcomes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_compensation_cross_currency_total",
			Help: "Pairs whose compensation scored zero due to currency mismatch.",
		},
	)
	RevealsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_matches_revealed_total",
			Help: "Total number of matches that reached the revealed state.",
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SweepDuration)
	prometheus.MustRegister(PairStepDuration)
	prometheus.MustRegister(ScoredPairsCounter)
	prometheus.MustRegister(IneligiblePairsCounter)
	prometheus.MustRegister(StaleWriteConflicts)
	prometheus.MustRegister(CrossCurrencyOutcomes)
	prometheus.MustRegister(RevealsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}
