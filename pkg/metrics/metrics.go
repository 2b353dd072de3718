package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dairy",
		Name:      "report_duration_seconds",
		Help:      "Time spent computing a report.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"report"})

	reportFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dairy",
		Name:      "report_failures_total",
		Help:      "Reports that ended with an error.",
	}, []string{"report"})
)

// ObserveReport records one report computation.
func ObserveReport(report string, elapsed time.Duration, err error) {
	reportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
	if err != nil {
		reportFailures.WithLabelValues(report).Inc()
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
