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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// HandlerType selects the output format.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "***REDACTED***"

var defaultRedactKeys = []string{"password", "token", "secret", "api_key", "authorization", "cookie"}

// Logger owns a configured *slog.Logger.
//
// All methods are safe for concurrent use.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	serviceName    string
	serviceVersion string
	environment    string

	addSource   bool
	redactKeys  map[string]bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	registerGlobal bool

	slogger  *slog.Logger
	shutdown atomic.Bool
}

// Option configures a Logger.
type Option func(*Logger)

// New builds a Logger. It does not touch the global slog default unless
// WithGlobalLogger is given.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
		redactKeys:  make(map[string]bool, len(defaultRedactKeys)),
	}
	l.level.Set(LevelInfo)
	for _, k := range defaultRedactKeys {
		l.redactKeys[k] = true
	}

	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	h, err := l.newHandler()
	if err != nil {
		return nil, err
	}
	l.slogger = slog.New(h).With(l.serviceAttrs()...)
	if l.registerGlobal {
		slog.SetDefault(l.slogger)
	}

	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

// Validate checks the configuration.
func (l *Logger) Validate() error {
	if l.output == nil {
		return ErrNilOutput
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHandler, l.handlerType)
	}
}

func (l *Logger) newHandler() (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:       &l.level,
		AddSource:   l.addSource,
		ReplaceAttr: l.buildReplaceAttr(),
	}

	var h slog.Handler
	switch l.handlerType {
	case JSONHandler:
		h = slog.NewJSONHandler(l.output, opts)
	case TextHandler:
		h = slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		h = newConsoleHandler(l.output, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandler, l.handlerType)
	}

	return &gateHandler{next: &traceHandler{next: h}, closed: &l.shutdown}, nil
}

func (l *Logger) serviceAttrs() []any {
	var attrs []any
	if l.serviceName != "" {
		attrs = append(attrs, "service", l.serviceName)
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, "version", l.serviceVersion)
	}
	if l.environment != "" {
		attrs = append(attrs, "env", l.environment)
	}

	return attrs
}

func (l *Logger) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if l.redactKeys[strings.ToLower(a.Key)] {
			return slog.String(a.Key, Redacted)
		}
		if l.replaceAttr != nil {
			return l.replaceAttr(groups, a)
		}

		return a
	}
}

// Logger returns the underlying *slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// With returns a *slog.Logger with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.With(args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.slogger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slogger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slogger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slogger.Error(msg, args...) }

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ServiceName returns the service name attached to every record.
func (l *Logger) ServiceName() string {
	return l.serviceName
}

// Shutdown stops all output from this logger and flushes the writer when it
// buffers. Records logged afterwards are dropped.
func (l *Logger) Shutdown(_ context.Context) error {
	if l.shutdown.Swap(true) {
		return nil
	}
	if f, ok := l.output.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush log output: %w", err)
		}
	}

	return nil
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return lvl, nil
}

// ParseHandlerType maps "json", "text" and "console" to a HandlerType.
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(s)); t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}
