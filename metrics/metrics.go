// Package metrics collects and exposes Prometheus metrics for the scheduler
// and the delivery layer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records all crosspost metrics.
type Collector struct {
	armedPosts      prometheus.Gauge
	executions      *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency prometheus.Histogram
	registry        *prometheus.Registry
}

func NewCollector() *Collector {
	c := &Collector{
		armedPosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crosspost_armed_posts",
			Help: "Number of posts with a live delivery timer",
		}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosspost_executions_total",
			Help: "Post executions by final status",
		}, []string{"status"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosspost_deliveries_total",
			Help: "Per-platform delivery attempts by result",
		}, []string{"platform", "result"}),
		deliveryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosspost_delivery_latency_seconds",
			Help:    "Latency of a single platform delivery attempt",
			Buckets: prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(c.armedPosts, c.executions, c.deliveries, c.deliveryLatency)
	return c
}

func (c *Collector) SetArmedPosts(n int) {
	c.armedPosts.Set(float64(n))
}

func (c *Collector) RecordExecution(status string) {
	c.executions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordDelivery(platform string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.deliveries.WithLabelValues(platform, result).Inc()
}

func (c *Collector) RecordDeliveryLatency(d time.Duration) {
	c.deliveryLatency.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
