package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	jobsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgersync_jobs_processed_total",
		Help: "Jobs handled by the workers, by job name and outcome",
	}, []string{"job", "outcome"})

	jobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledgersync_job_duration_seconds",
		Help:    "Time spent in a job handler",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	}, []string{"job"})

	reconcileOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgersync_reconcile_outcomes_total",
		Help: "Curation events reconciled, by outcome",
	}, []string{"outcome"})

	settlementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgersync_settlements_total",
		Help: "Transactions moved to a terminal state, by settler and state",
	}, []string{"settler", "state"})

	watcherRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgersync_watcher_runs_total",
		Help: "Chain watcher runs, by result",
	}, []string{"result"})

	watermarkBlock = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ledgersync_watermark_block",
		Help: "Last durably reconciled block per contract",
	}, []string{"chain_id", "contract"})

	chainHeadBlock = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ledgersync_chain_head_block",
		Help: "Latest block reported by the RPC provider",
	}, []string{"chain_id"})

	breakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ledgersync_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
	}, []string{"name"})
)

func init() {
	prometheus.MustRegister(
		jobsProcessedTotal,
		jobDuration,
		reconcileOutcomesTotal,
		settlementsTotal,
		watcherRunsTotal,
		watermarkBlock,
		chainHeadBlock,
		breakerState,
	)
}

// JobProcessed records a finished job delivery
func JobProcessed(job, outcome string, seconds float64) {
	jobsProcessedTotal.WithLabelValues(job, outcome).Inc()
	jobDuration.WithLabelValues(job).Observe(seconds)
}

// ReconcileOutcome counts one reconciled event
func ReconcileOutcome(outcome string) {
	reconcileOutcomesTotal.WithLabelValues(outcome).Inc()
}

// Settlement counts a transaction reaching a terminal state
func Settlement(settler, state string) {
	settlementsTotal.WithLabelValues(settler, state).Inc()
}

// WatcherRun counts a watcher run by result
func WatcherRun(result string) {
	watcherRunsTotal.WithLabelValues(result).Inc()
}

// Watermark publishes the persisted watermark of a contract
func Watermark(chainID int64, contract string, block uint64) {
	watermarkBlock.WithLabelValues(strconv.FormatInt(chainID, 10), contract).Set(float64(block))
}

// ChainHead publishes the latest observed head
func ChainHead(chainID int64, block uint64) {
	chainHeadBlock.WithLabelValues(strconv.FormatInt(chainID, 10)).Set(float64(block))
}

// BreakerState publishes a circuit breaker state
func BreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

// RegisterEndpoint exposes the default registry on /metrics
func RegisterEndpoint(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
