package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// dispatchMetrics contains Prometheus metrics for request dispatch.
type dispatchMetrics struct {
	resolveHits  prometheus.Counter
	pathMisses   prometheus.Counter
	methodMisses prometheus.Counter
	routes       prometheus.Gauge
}

var (
	dispatchMetricsInstance *dispatchMetrics
	dispatchMetricsOnce     sync.Once
)

// getDispatchMetrics returns the singleton dispatch metrics instance.
func getDispatchMetrics() *dispatchMetrics {
	dispatchMetricsOnce.Do(func() {
		dispatchMetricsInstance = &dispatchMetrics{
			resolveHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "starhttp",
					Subsystem: "router",
					Name:      "resolve_hits_total",
					Help:      "Total number of requests resolved to a registered route",
				},
			),
			pathMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "starhttp",
					Subsystem: "router",
					Name:      "path_misses_total",
					Help:      "Total number of requests whose path matched no route",
				},
			),
			methodMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "starhttp",
					Subsystem: "router",
					Name:      "method_misses_total",
					Help:      "Total number of requests whose path matched but method did not",
				},
			),
			routes: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "starhttp",
					Subsystem: "router",
					Name:      "routes_registered",
					Help:      "Current number of registered routes",
				},
			),
		}
	})

	return dispatchMetricsInstance
}
