package loadgen

import "github.com/prometheus/client_golang/prometheus"

var workersStarted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "directory_stress_workers_started_total",
		Help: "Total number of CPU stress workers started.",
	},
	[]string{"mode"},
)

func init() {
	prometheus.MustRegister(workersStarted)

	// Pre-initialize label combinations so they appear in /metrics with value 0.
	workersStarted.WithLabelValues(ModeProcess)
	workersStarted.WithLabelValues(ModeGoroutine)
}
