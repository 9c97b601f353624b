package checker

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsTimer struct {
	mu            sync.Mutex
	previousAudit *time.Time
}

func newMetricsTimer() *metricsTimer {
	return &metricsTimer{
		mu: sync.Mutex{},
	}
}

func (mt *metricsTimer) SetPreviousAudit(t *time.Time) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.previousAudit = t
}

func (mt *metricsTimer) UpdatePrometheusMetrics() {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	// nothing to report before the first audited block
	if mt.previousAudit == nil {
		return
	}

	secondsSinceLastAudit.Set(time.Since(*mt.previousAudit).Seconds())
}

var (
	metricsTimeKeeper = newMetricsTimer()

	totalBlocksAudited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cchk_total_blocks_audited",
		Help: "Total number of blocks whose compound events were audited",
	})
	totalCompoundsChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cchk_total_compounds_checked",
		Help: "Total number of Compounded events checked against their reward",
	})
	totalCompoundViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cchk_total_compound_violations",
			Help: "Total number of Compounded events that disagree with the reward and percentage",
		},
		[]string{"reason"},
	)
	failedBlockAudits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cchk_total_failed_block_audits",
		Help: "Total number of blocks that could not be audited",
	})
	lastAuditedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cchk_last_audited_block",
		Help: "Number of the last audited block",
	})
	secondsSinceLastAudit = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cchk_seconds_since_last_audit",
		Help: "Seconds since the last block was audited",
	})
	timedBlockAuditLag = promauto.NewSummary(prometheus.SummaryOpts{
		Name:       "cchk_block_audit_lag_seconds",
		Help:       "Seconds taken to audit a block",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	})
	totalScenarioRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cchk_total_scenario_runs",
			Help: "Total number of auto-compound scenario runs by result",
		},
		[]string{"result"},
	)
)

func recordScenarioRun(passed bool) {
	result := "fail"
	if passed {
		result = "pass"
	}
	totalScenarioRuns.WithLabelValues(result).Inc()
}
