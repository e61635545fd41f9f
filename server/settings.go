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
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"slices"
	"strconv"
	"time"

	"rivaas.dev/minihttp/config"
	"rivaas.dev/minihttp/logging"
	"rivaas.dev/minihttp/metrics"
	"rivaas.dev/minihttp/tracing"
)

const (
	// SettingsFile is the optional file read by DefaultSources.
	SettingsFile = "minihttp.yaml"
	// EnvPrefix selects the environment variables read by DefaultSources.
	// MINIHTTP_TLS_CERT sets tls.cert.
	EnvPrefix = "MINIHTTP_"
)

// settingsSchema accepts strings wherever a number or boolean is expected,
// since environment variables are always strings.
var settingsSchema = []byte(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "host": {"type": "string"},
    "port": {
      "anyOf": [
        {"type": "integer", "minimum": 0, "maximum": 65535},
        {"type": "string", "pattern": "^[0-9]{1,5}$"}
      ]
    },
    "tls": {
      "type": "object",
      "properties": {
        "cert": {"type": "string"},
        "key": {"type": "string"}
      }
    },
    "shutdown": {
      "type": "object",
      "properties": {
        "timeout": {"type": "string"}
      }
    },
    "log": {
      "type": "object",
      "properties": {
        "level": {"type": "string"},
        "format": {"enum": ["json", "text", "console"]},
        "service": {"type": "string"}
      }
    },
    "metrics": {
      "type": "object",
      "properties": {
        "enabled": {"type": ["boolean", "string"]},
        "addr": {"type": "string"},
        "namespace": {"type": "string"}
      }
    },
    "tracing": {
      "type": "object",
      "properties": {
        "provider": {"enum": ["noop", "stdout", "otlp", "otlp-http"]},
        "endpoint": {"type": "string"},
        "rate": {
          "anyOf": [
            {"type": "number", "minimum": 0, "maximum": 1},
            {"type": "string"}
          ]
        }
      }
    }
  }
}`)

// Settings is the file and environment configuration of a server.
type Settings struct {
	Host     string           `config:"host"`
	Port     int              `config:"port" default:"9000"`
	TLS      TLSSettings      `config:"tls"`
	Shutdown ShutdownSettings `config:"shutdown"`
	Log      LogSettings      `config:"log"`
	Metrics  MetricsSettings  `config:"metrics"`
	Tracing  TracingSettings  `config:"tracing"`
}

// TLSSettings names PEM certificate and key files. Both empty means plain TCP.
type TLSSettings struct {
	Cert string `config:"cert"`
	Key  string `config:"key"`
}

// ShutdownSettings bounds graceful shutdown.
type ShutdownSettings struct {
	Timeout time.Duration `config:"timeout" default:"30s"`
}

// LogSettings configures the logger built by NewFromSettings.
type LogSettings struct {
	Level   string `config:"level" default:"info"`
	Format  string `config:"format" default:"json"`
	Service string `config:"service" default:"minihttp"`
}

// MetricsSettings configures the Prometheus recorder.
type MetricsSettings struct {
	Enabled   bool   `config:"enabled"`
	Addr      string `config:"addr" default:":9090"`
	Namespace string `config:"namespace" default:"minihttp"`
}

// TracingSettings selects the span exporter. A rate of 0 reads as unset;
// use the noop provider to stop exporting.
type TracingSettings struct {
	Provider string  `config:"provider" default:"noop"`
	Endpoint string  `config:"endpoint"`
	Rate     float64 `config:"rate" default:"1"`
}

// Validate checks values the schema cannot express.
func (st *Settings) Validate() error {
	var errs []error
	if st.Port < 0 || st.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", st.Port))
	}
	if (st.TLS.Cert == "") != (st.TLS.Key == "") {
		errs = append(errs, fmt.Errorf("tls: %w", ErrNoTLSCertificate))
	}
	if st.Shutdown.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown.timeout must be positive, got %v", st.Shutdown.Timeout))
	}
	if _, err := logging.ParseLevel(st.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseHandlerType(st.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if _, err := tracing.ParseProvider(st.Tracing.Provider); err != nil {
		errs = append(errs, fmt.Errorf("tracing.provider: %w", err))
	}
	if st.Tracing.Rate < 0 || st.Tracing.Rate > 1 {
		errs = append(errs, fmt.Errorf("tracing.rate %v outside [0, 1]", st.Tracing.Rate))
	}

	return errors.Join(errs...)
}

// Addr returns host:port.
func (st *Settings) Addr() string {
	return net.JoinHostPort(st.Host, strconv.Itoa(st.Port))
}

// DefaultSources reads SettingsFile when it exists, then EnvPrefix
// variables, later sources overriding earlier ones.
func DefaultSources() []config.Option {
	return []config.Option{
		config.WithOptionalFile(SettingsFile),
		config.WithEnv(EnvPrefix),
	}
}

// LoadSettings loads Settings from sources, or from DefaultSources when none
// are given.
func LoadSettings(ctx context.Context, sources ...config.Option) (*Settings, error) {
	if len(sources) == 0 {
		sources = DefaultSources()
	}

	var st Settings
	opts := append(slices.Clone(sources), config.WithJSONSchema(settingsSchema), config.WithBinding(&st))
	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err = cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	return &st, nil
}

// NewLogger builds the logger described by the log settings, writing to w.
func (st *Settings) NewLogger(w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(st.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseHandlerType(st.Log.Format)
	if err != nil {
		return nil, err
	}

	return logging.New(
		logging.WithHandlerType(format),
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithServiceName(st.Log.Service),
	)
}

// NewMetrics builds a recorder when metrics are enabled and returns nil
// otherwise.
func (st *Settings) NewMetrics() (*metrics.Recorder, error) {
	if !st.Metrics.Enabled {
		return nil, nil
	}

	return metrics.New(metrics.WithNamespace(st.Metrics.Namespace))
}

// NewTracing builds the tracer provider described by the tracing settings
// and installs it as the otel global. The caller owns its Shutdown.
func (st *Settings) NewTracing(ctx context.Context) (*tracing.Tracing, error) {
	provider, err := tracing.ParseProvider(st.Tracing.Provider)
	if err != nil {
		return nil, err
	}

	return tracing.New(ctx,
		tracing.WithServiceName(st.Log.Service),
		tracing.WithProvider(provider, st.Tracing.Endpoint),
		tracing.WithSampleRate(st.Tracing.Rate),
		tracing.WithGlobal(),
	)
}

// NewFromSettings builds a Server, logging to stderr, from st. opts are
// applied after the ones derived from st.
func NewFromSettings(st *Settings, opts ...Option) (*Server, error) {
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	logger, err := st.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	rec, err := st.NewMetrics()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithAddr(st.Addr()),
		WithLogger(logger.Logger()),
		WithShutdownTimeout(st.Shutdown.Timeout),
	}
	if st.TLS.Cert != "" {
		base = append(base, WithTLS(st.TLS.Cert, st.TLS.Key))
	}
	if rec != nil {
		base = append(base, WithMetrics(rec))
	}

	return New(append(base, opts...)...)
}

// Metrics returns the recorder given with WithMetrics, or nil.
func (s *Server) Metrics() *metrics.Recorder {
	return s.metrics
}
