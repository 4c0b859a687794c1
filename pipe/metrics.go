// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogama/httpfy/request"
	"github.com/gogama/httpfy/transient"
)

// Metrics is a handler recording Prometheus request metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the request metrics and registers them with reg. A
// nil reg leaves the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "httpfy",
				Name:      "requests_total",
				Help:      "Total number of requests completed by the pipeline.",
			},
			[]string{"method", "status", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "httpfy",
				Name:      "request_duration_seconds",
				Help:      "Time from submission to completion.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "outcome"},
		),
	}
}

// Handle implements Handler.
func (m *Metrics) Handle(f *Flow, next func()) {
	method := f.Request.Method
	start := time.Now()
	f.Observe(func(res interface{}, err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			if cat := transient.Categorize(err); cat != transient.Not {
				outcome = cat.String()
			}
		}
		status := ""
		if e, ok := res.(*request.Execution); ok && e.StatusCode() > 0 {
			status = strconv.Itoa(e.StatusCode())
		}
		m.requests.WithLabelValues(method, status, outcome).Inc()
		m.duration.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
	})
	next()
}

// Requests returns the counter vector, labelled by method, status and
// outcome.
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}
