// Package metrics provides Prometheus metrics for the playback loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoopsTotal counts completed passes over the source (end-of-stream).
	LoopsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loopkiosk_loops_total",
		Help: "Total number of times the source played to end-of-stream.",
	})

	// ReloadsTotal counts pipeline builds by cause.
	ReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopkiosk_reloads_total",
		Help: "Total number of playback pipelines built, by cause.",
	}, []string{"cause"})

	// BusErrorsTotal counts error messages seen on any pipeline bus.
	BusErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loopkiosk_bus_errors_total",
		Help: "Total number of error messages posted on pipeline buses.",
	})

	LivePipelines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loopkiosk_live_pipelines",
		Help: "Number of playback pipelines currently alive (0 or 1).",
	})
)
