// Copyright 2025 The Rivaas Authors
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

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultDurationBuckets are histogram boundaries for exchange duration in seconds.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// DefaultSizeBuckets are histogram boundaries for response body size in bytes.
var DefaultSizeBuckets = []float64{0, 100, 1000, 10000, 100000, 1000000, 10000000}

// Failure kinds reported by HandlerFailed.
const (
	FailureError = "error"
	FailurePanic = "panic"
)

// Recorder records server metrics in a Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so callers never need to
// check whether metrics are enabled.
type Recorder struct {
	registry *prometheus.Registry

	connsActive prometheus.Gauge
	connsTotal  prometheus.Counter
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	size        *prometheus.HistogramVec
	malformed   *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// New builds a Recorder with its own registry. Go runtime and process
// collectors are registered too unless WithoutRuntimeCollectors is given.
func New(opts ...Option) (*Recorder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	if cfg.runtime {
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, err
		}
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, err
		}
	}
	f := promauto.With(reg)
	ns := cfg.namespace

	return &Recorder{
		registry: reg,
		connsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "connections_active",
			Help:      "Connections currently being served",
		}),
		connsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "connections_total",
			Help:      "Connections accepted",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "requests_total",
			Help:      "Requests dispatched, by method, route and status code",
		}, []string{"method", "route", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "request_duration_seconds",
			Help:      "Time from request line to flushed response",
			Buckets:   cfg.durationBuckets,
		}, []string{"method", "route"}),
		size: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "response_size_bytes",
			Help:      "Response body bytes written",
			Buckets:   cfg.sizeBuckets,
		}, []string{"method", "route"}),
		malformed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "malformed_requests_total",
			Help:      "Connections closed without a response because the request could not be parsed",
		}, []string{"reason"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "handler_failures_total",
			Help:      "Handler errors and panics that reached the server",
		}, []string{"route", "kind"}),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic("metrics initialization failed: " + err.Error())
	}

	return r
}

// ConnectionOpened records an accepted connection.
func (r *Recorder) ConnectionOpened() {
	if r == nil {
		return
	}
	r.connsTotal.Inc()
	r.connsActive.Inc()
}

// ConnectionClosed records a closed connection.
func (r *Recorder) ConnectionClosed() {
	if r == nil {
		return
	}
	r.connsActive.Dec()
}

// RequestServed records a finished exchange.
func (r *Recorder) RequestServed(method, route string, code int, d time.Duration, bytes int64) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.duration.WithLabelValues(method, route).Observe(d.Seconds())
	r.size.WithLabelValues(method, route).Observe(float64(bytes))
}

// MalformedRequest records a request dropped during parsing.
func (r *Recorder) MalformedRequest(reason string) {
	if r == nil {
		return
	}
	r.malformed.WithLabelValues(reason).Inc()
}

// HandlerFailed records an error or panic that escaped the handler chain.
func (r *Recorder) HandlerFailed(route, kind string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(route, kind).Inc()
}

// Registry returns the registry the metrics live in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
