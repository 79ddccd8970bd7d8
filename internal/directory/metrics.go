package directory

import "github.com/prometheus/client_golang/prometheus"

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_scans_total",
			Help: "Total number of employee listings by outcome.",
		},
		[]string{"outcome"},
	)

	employeesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_employees_created_total",
			Help: "Total number of employees added, by whether a photo was attached.",
		},
		[]string{"photo"},
	)
)

func init() {
	prometheus.MustRegister(scansTotal)
	prometheus.MustRegister(employeesCreated)

	for _, o := range allOutcomes {
		scansTotal.WithLabelValues(string(o))
	}
	employeesCreated.WithLabelValues("true")
	employeesCreated.WithLabelValues("false")
}
