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

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider names a span exporter.
type Provider string

const (
	// NoopProvider samples spans without exporting them.
	NoopProvider Provider = "noop"
	// StdoutProvider writes spans as JSON.
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports over OTLP gRPC.
	OTLPProvider Provider = "otlp"
	// OTLPHTTPProvider exports over OTLP HTTP.
	OTLPHTTPProvider Provider = "otlp-http"
)

// ErrUnknownProvider is returned for an unrecognized provider name.
var ErrUnknownProvider = errors.New("unknown tracing provider")

// ParseProvider maps a settings value to a Provider. "" means NoopProvider.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "", NoopProvider:
		return NoopProvider, nil
	case StdoutProvider, OTLPProvider, OTLPHTTPProvider:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Option configures a Tracing.
type Option func(*Tracing)

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracing) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracing) {
		t.serviceVersion = version
	}
}

// WithSampleRate samples the given fraction of new traces. Children follow
// their parent's decision.
func WithSampleRate(rate float64) Option {
	return func(t *Tracing) {
		t.sampleRate = rate
	}
}

// WithStdout exports spans as JSON to w, or to stdout when w is nil.
func WithStdout(w io.Writer) Option {
	return func(t *Tracing) {
		t.setProvider(StdoutProvider)
		t.stdout = w
	}
}

// WithOTLP exports spans over gRPC to endpoint (host:port). Set insecure
// for a collector without TLS.
func WithOTLP(endpoint string, insecure bool) Option {
	return func(t *Tracing) {
		t.setProvider(OTLPProvider)
		t.endpoint = endpoint
		t.insecure = insecure
	}
}

// WithOTLPHTTP exports spans over HTTP. An http:// endpoint disables TLS.
// Any path in the endpoint is ignored.
func WithOTLPHTTP(endpoint string) Option {
	return func(t *Tracing) {
		t.setProvider(OTLPHTTPProvider)
		t.endpoint = endpoint
		t.insecure = strings.HasPrefix(endpoint, "http://")
	}
}

// WithProvider selects the exporter by kind, for values read from settings.
// An http:// endpoint disables TLS.
func WithProvider(p Provider, endpoint string) Option {
	return func(t *Tracing) {
		t.setProvider(p)
		t.endpoint = endpoint
		t.insecure = strings.HasPrefix(endpoint, "http://")
	}
}

// WithGlobal installs the provider and a W3C trace-context propagator as
// the otel globals.
func WithGlobal() Option {
	return func(t *Tracing) {
		t.global = true
	}
}

// Tracing owns an sdk tracer provider.
type Tracing struct {
	serviceName    string
	serviceVersion string
	sampleRate     float64
	provider       Provider
	endpoint       string
	insecure       bool
	stdout         io.Writer
	global         bool
	errs           []error

	tp *sdktrace.TracerProvider
}

func (t *Tracing) setProvider(p Provider) {
	if t.provider != "" && t.provider != p {
		t.errs = append(t.errs, fmt.Errorf("provider %q already configured, cannot add %q", t.provider, p))
		return
	}
	t.provider = p
}

// New builds the exporter and tracer provider. ctx bounds exporter setup.
func New(ctx context.Context, opts ...Option) (*Tracing, error) {
	t := &Tracing{
		serviceName:    "minihttp",
		serviceVersion: "dev",
		sampleRate:     1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.provider == "" {
		t.provider = NoopProvider
	}
	if t.sampleRate < 0 || t.sampleRate > 1 {
		t.errs = append(t.errs, fmt.Errorf("sample rate %v outside [0, 1]", t.sampleRate))
	}
	if err := errors.Join(t.errs...); err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	exporter, err := t.exporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(t.serviceName),
			semconv.ServiceVersion(t.serviceVersion),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	t.tp = sdktrace.NewTracerProvider(tpOpts...)

	if t.global {
		otel.SetTracerProvider(t.tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	return t, nil
}

func (t *Tracing) exporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	switch t.provider {
	case NoopProvider:
		return nil, nil
	case StdoutProvider:
		w := t.stdout
		if w == nil {
			w = os.Stdout
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}

		return exp, nil
	case OTLPProvider:
		var opts []otlptracegrpc.Option
		if t.endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(hostPort(t.endpoint)))
		}
		if t.insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}

		return exp, nil
	case OTLPHTTPProvider:
		var opts []otlptracehttp.Option
		if t.endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(hostPort(t.endpoint)))
		}
		if t.insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp-http exporter: %w", err)
		}

		return exp, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, t.provider)
	}
}

// hostPort strips a scheme and path from endpoint.
func hostPort(endpoint string) string {
	if rest, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint = rest
	} else if rest, ok = strings.CutPrefix(endpoint, "https://"); ok {
		endpoint = rest
	}
	host, _, _ := strings.Cut(endpoint, "/")

	return host
}

// Provider returns the configured exporter kind.
func (t *Tracing) Provider() Provider {
	return t.provider
}

// TracerProvider returns the provider to hand to the server.
func (t *Tracing) TracerProvider() trace.TracerProvider {
	return t.tp
}

// ForceFlush exports all ended spans.
func (t *Tracing) ForceFlush(ctx context.Context) error {
	return t.tp.ForceFlush(ctx)
}

// Shutdown flushes pending spans and stops the exporter.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if err := t.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracing shutdown: %w", err)
	}

	return nil
}
