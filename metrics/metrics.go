// Package metrics exposes the live run counters as a Prometheus
// collector. Samples are read on each scrape from whatever source the
// daemon has attached, so the collector can be registered before the
// monitor exists.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Sampler returns the current cumulative packet total and the most
// recently attributed per-second delta.
type Sampler func() (total, lastDelta uint64)

// Collector implements prometheus.Collector over the live monitor
// snapshot.
type Collector struct {
	source atomic.Pointer[Sampler]
	device string

	packetsTotal     *prometheus.Desc
	packetsPerSecond *prometheus.Desc
}

// NewCollector creates a collector for one device. It reports nothing
// until SetSource attaches a sampler.
func NewCollector(device string) *Collector {
	return &Collector{
		device: device,
		packetsTotal: prometheus.NewDesc(
			"l2reflector_packets_processed_total",
			"Cumulative packets processed by the accelerator.",
			[]string{"device"}, nil,
		),
		packetsPerSecond: prometheus.NewDesc(
			"l2reflector_packets_per_second",
			"Packet delta attributed to the most recent observed second.",
			[]string{"device"}, nil,
		),
	}
}

// SetSource attaches the sample source. Safe to call concurrently
// with scrapes.
func (c *Collector) SetSource(fn Sampler) {
	c.source.Store(&fn)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.packetsTotal
	ch <- c.packetsPerSecond
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	fn := c.source.Load()
	if fn == nil {
		return
	}
	total, lastDelta := (*fn)()
	ch <- prometheus.MustNewConstMetric(c.packetsTotal, prometheus.CounterValue,
		float64(total), c.device)
	ch <- prometheus.MustNewConstMetric(c.packetsPerSecond, prometheus.GaugeValue,
		float64(lastDelta), c.device)
}
