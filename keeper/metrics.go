package keeper

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instrumentation for one Keeper. Unlike the
// teacher's x/dex/keeper/metrics.go, which registers its vectors once at
// package init time against the global registry (there is exactly one DEX
// module per chain process), this package builds a fresh set per Keeper:
// a host process may run many pools side by side — every test in this
// module does — and double-registering the same metric name against the
// default registry panics.
type Metrics struct {
	swapsTotal        *prometheus.CounterVec
	swapInsufficient  prometheus.Counter
	liquidityProvided *prometheus.CounterVec
	liquidityWithdraw *prometheus.CounterVec
	feesCollected     *prometheus.CounterVec
	binsCreated       prometheus.Counter
	binsSwept         prometheus.Counter
}

// NewMetrics returns a fresh, unregistered Metrics instance; nothing is
// registered against the global default registry. A host registers the
// values from Collectors with a registry of its own.
func NewMetrics(poolID uint64) *Metrics {
	constLabels := prometheus.Labels{"pool_id": strconv.FormatUint(poolID, 10)}
	return &Metrics{
		swapsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "liquiditybook_swaps_total",
			Help:        "Total number of swaps executed against this pool.",
			ConstLabels: constLabels,
		}, []string{"direction"}),
		swapInsufficient: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "liquiditybook_swap_insufficient_liquidity_total",
			Help:        "Swaps that failed with InsufficientLiquidity.",
			ConstLabels: constLabels,
		}),
		liquidityProvided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "liquiditybook_liquidity_provided_total",
			Help:        "Total amount provisioned, by side.",
			ConstLabels: constLabels,
		}, []string{"side"}),
		liquidityWithdraw: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "liquiditybook_liquidity_withdrawn_total",
			Help:        "Total amount withdrawn, by side.",
			ConstLabels: constLabels,
		}, []string{"side"}),
		feesCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "liquiditybook_fees_collected_total",
			Help:        "Total fees collected, by side.",
			ConstLabels: constLabels,
		}, []string{"side"}),
		binsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "liquiditybook_bins_created_total",
			Help:        "Total bins created on demand during provisioning.",
			ConstLabels: constLabels,
		}),
		binsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "liquiditybook_bins_swept_total",
			Help:        "Total empty bins removed by CleanEmptyBins.",
			ConstLabels: constLabels,
		}),
	}
}

// Collectors returns every metric this Keeper owns, so a host process can
// register them with whichever prometheus.Registry it already runs.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.swapsTotal,
		m.swapInsufficient,
		m.liquidityProvided,
		m.liquidityWithdraw,
		m.feesCollected,
		m.binsCreated,
		m.binsSwept,
	}
}
