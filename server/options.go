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

package server

import (
	"crypto/tls"
	"log/slog"
	"net"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	rerrors "rivaas.dev/minihttp/errors"
	"rivaas.dev/minihttp/metrics"
)

const (
	// DefaultPort is the port used when neither WithPort nor WithAddr is given.
	DefaultPort = 9000
	// DefaultShutdownTimeout bounds ListenAndServe's graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address in host:port form.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithPort listens on all interfaces at port. Port 0 picks a free port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort("", strconv.Itoa(port))
	}
}

// WithTLS serves TLS with the PEM encoded certificate and key files.
func WithTLS(certFile, keyFile string) Option {
	return func(s *Server) {
		s.certFile = certFile
		s.keyFile = keyFile
	}
}

// WithTLSConfig serves TLS with cfg. Certificate files given with WithTLS
// are added to a clone of cfg.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Server) {
		s.tlsConfig = cfg
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithErrorFormatter sets how failures that reach no exception binding are
// rendered. The default is errors.Plain.
func WithErrorFormatter(f rerrors.Formatter) Option {
	return func(s *Server) {
		s.formatter = f
	}
}

// WithMetrics records connection and request metrics on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// WithTracerProvider sets the provider for request spans. The default is
// the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithPropagator sets how trace context is read from request headers. The
// default is the global otel propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(s *Server) {
		s.propagator = p
	}
}

// WithShutdownTimeout bounds how long ListenAndServe waits for in-flight
// connections after its context is canceled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}
