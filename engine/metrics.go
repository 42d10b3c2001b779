// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats contains statistics about verification throughput.
type PoolStats struct {
	// Submitted is the total number of signatures accepted by VerifyAsync.
	Submitted uint64
	// Valid is the number of signatures that verified.
	Valid uint64
	// Invalid is the number of signatures that failed verification.
	Invalid uint64
	// Cancelled is the number of signatures cancelled before verification.
	Cancelled uint64
	// Errors is the number of malformed requests.
	Errors uint64
	// QueueDepth is the number of signatures waiting for a worker.
	QueueDepth int
	// StartTime is when the pool was started.
	StartTime time.Time
}

// PoolMetrics tracks metrics for a Pool.
// Uses atomic counters for thread-safe operation.
type PoolMetrics struct {
	submitted  atomic.Uint64
	valid      atomic.Uint64
	invalid    atomic.Uint64
	cancelled  atomic.Uint64
	errors     atomic.Uint64
	queueDepth atomic.Int64
	startTime  atomic.Int64
}

func NewPoolMetrics() *PoolMetrics {
	m := &PoolMetrics{}
	m.startTime.Store(time.Now().UnixNano())
	return m
}

// RecordSubmit adds n accepted signatures.
func (m *PoolMetrics) RecordSubmit(n int) {
	m.submitted.Add(uint64(n))
	m.queueDepth.Add(int64(n))
}

// RecordResult records a completed verification.
func (m *PoolMetrics) RecordResult(valid bool, err error) {
	m.queueDepth.Add(-1)
	switch {
	case err != nil:
		m.errors.Add(1)
		m.invalid.Add(1)
	case valid:
		m.valid.Add(1)
	default:
		m.invalid.Add(1)
	}
}

// RecordCancel records a signature dropped because it was cancelled.
func (m *PoolMetrics) RecordCancel() {
	m.queueDepth.Add(-1)
	m.cancelled.Add(1)
}

// RecordSkip records a signature that already had a handle and was not
// verified again.
func (m *PoolMetrics) RecordSkip() {
	m.queueDepth.Add(-1)
}

// Stats returns a snapshot of the current metrics.
func (m *PoolMetrics) Stats() PoolStats {
	return PoolStats{
		Submitted:  m.submitted.Load(),
		Valid:      m.valid.Load(),
		Invalid:    m.invalid.Load(),
		Cancelled:  m.cancelled.Load(),
		Errors:     m.errors.Load(),
		QueueDepth: int(m.queueDepth.Load()),
		StartTime:  time.Unix(0, m.startTime.Load()),
	}
}

// Reset resets all metrics.
func (m *PoolMetrics) Reset() {
	m.submitted.Store(0)
	m.valid.Store(0)
	m.invalid.Store(0)
	m.cancelled.Store(0)
	m.errors.Store(0)
	m.queueDepth.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}

var (
	descSubmitted = prometheus.NewDesc(
		"sigverify_engine_submitted_total",
		"Total number of signatures submitted for verification.",
		nil, nil,
	)
	descVerified = prometheus.NewDesc(
		"sigverify_engine_verified_total",
		"Total number of completed verifications by outcome.",
		[]string{"outcome"}, nil,
	)
	descErrors = prometheus.NewDesc(
		"sigverify_engine_errors_total",
		"Total number of malformed verification requests.",
		nil, nil,
	)
	descQueueDepth = prometheus.NewDesc(
		"sigverify_engine_queue_depth",
		"Number of signatures waiting for a worker.",
		nil, nil,
	)
)

// metricsCollector exposes PoolMetrics to Prometheus
type metricsCollector struct {
	metrics *PoolMetrics
}

func newMetricsCollector(metrics *PoolMetrics) prometheus.Collector {
	return &metricsCollector{metrics: metrics}
}

func (c *metricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descSubmitted
	ch <- descVerified
	ch <- descErrors
	ch <- descQueueDepth
}

func (c *metricsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.metrics.Stats()
	ch <- prometheus.MustNewConstMetric(
		descSubmitted, prometheus.CounterValue, float64(stats.Submitted),
	)
	ch <- prometheus.MustNewConstMetric(
		descVerified, prometheus.CounterValue, float64(stats.Valid), "valid",
	)
	ch <- prometheus.MustNewConstMetric(
		descVerified, prometheus.CounterValue, float64(stats.Invalid), "invalid",
	)
	ch <- prometheus.MustNewConstMetric(
		descVerified, prometheus.CounterValue, float64(stats.Cancelled), "cancelled",
	)
	ch <- prometheus.MustNewConstMetric(
		descErrors, prometheus.CounterValue, float64(stats.Errors),
	)
	ch <- prometheus.MustNewConstMetric(
		descQueueDepth, prometheus.GaugeValue, float64(stats.QueueDepth),
	)
}
