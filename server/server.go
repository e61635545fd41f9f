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
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	rerrors "rivaas.dev/minihttp/errors"
	"rivaas.dev/minihttp/metrics"
	"rivaas.dev/minihttp/router"
)

const tracerName = "rivaas.dev/minihttp/server"

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Server accepts connections and serves one request per connection through
// the registered routes and filters.
//
// Routes, filters and exception bindings are registered before Start or
// Serve. Starting composes them once; any later registration panics with
// ErrServerStarted.
type Server struct {
	addr            string
	certFile        string
	keyFile         string
	tlsConfig       *tls.Config
	logger          *slog.Logger
	formatter       rerrors.Formatter
	metrics         *metrics.Recorder
	tracerProvider  trace.TracerProvider
	tracer          trace.Tracer
	propagator      propagation.TextMapPropagator
	shutdownTimeout time.Duration

	routes     *router.Table
	before     *router.FilterChain
	after      *router.FilterChain
	exceptions *router.ExceptionBindings

	composeOnce sync.Once
	handlers    *router.Table

	mu        sync.Mutex
	frozen    bool
	ln        net.Listener
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
	serveErr  error
	conns     sync.WaitGroup
}

// New creates a Server listening on DefaultPort unless configured otherwise.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		addr:            net.JoinHostPort("", strconv.Itoa(DefaultPort)),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		formatter:       rerrors.NewPlain(),
		shutdownTimeout: DefaultShutdownTimeout,
		routes:          router.NewTable(),
		before:          router.NewFilterChain(),
		after:           router.NewFilterChain(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}
	s.tracer = s.tracerProvider.Tracer(tracerName)
	if s.propagator == nil {
		s.propagator = otel.GetTextMapPropagator()
	}
	s.exceptions = router.NewExceptionBindings(s.formatter)

	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Server {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Server) validate() error {
	var errs []error

	_, port, err := net.SplitHostPort(s.addr)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: address %q: %w", ErrInvalidOption, s.addr, err))
	} else if n, convErr := strconv.Atoi(port); convErr != nil || n < 0 || n > 65535 {
		errs = append(errs, fmt.Errorf("%w: port %q out of range", ErrInvalidOption, port))
	}
	if s.logger == nil {
		errs = append(errs, fmt.Errorf("%w: nil logger", ErrInvalidOption))
	}
	if s.formatter == nil {
		errs = append(errs, fmt.Errorf("%w: nil error formatter", ErrInvalidOption))
	}
	if s.shutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: shutdown timeout must be positive, got %v", ErrInvalidOption, s.shutdownTimeout))
	}
	if (s.certFile == "") != (s.keyFile == "") {
		errs = append(errs, fmt.Errorf("%w: both certificate and key files are required", ErrNoTLSCertificate))
	}

	return errors.Join(errs...)
}

// Get registers h for GET requests matching pattern.
func (s *Server) Get(pattern string, h router.HandlerFunc) { s.Bind(router.MethodGet, pattern, h) }

// Post registers h for POST requests matching pattern.
func (s *Server) Post(pattern string, h router.HandlerFunc) { s.Bind(router.MethodPost, pattern, h) }

// Put registers h for PUT requests matching pattern.
func (s *Server) Put(pattern string, h router.HandlerFunc) { s.Bind(router.MethodPut, pattern, h) }

// Delete registers h for DELETE requests matching pattern.
func (s *Server) Delete(pattern string, h router.HandlerFunc) {
	s.Bind(router.MethodDelete, pattern, h)
}

// Patch registers h for PATCH requests matching pattern.
func (s *Server) Patch(pattern string, h router.HandlerFunc) { s.Bind(router.MethodPatch, pattern, h) }

// Options registers h for OPTIONS requests matching pattern.
func (s *Server) Options(pattern string, h router.HandlerFunc) {
	s.Bind(router.MethodOptions, pattern, h)
}

// Head registers h for HEAD requests matching pattern.
func (s *Server) Head(pattern string, h router.HandlerFunc) { s.Bind(router.MethodHead, pattern, h) }

// Trace registers h for TRACE requests matching pattern.
func (s *Server) Trace(pattern string, h router.HandlerFunc) { s.Bind(router.MethodTrace, pattern, h) }

// Connect registers h for CONNECT requests matching pattern.
func (s *Server) Connect(pattern string, h router.HandlerFunc) {
	s.Bind(router.MethodConnect, pattern, h)
}

// Bind registers h for method and pattern. The pattern matches a path
// literally or, failing that, as a regular expression anchored at both ends.
// Binding the same method and pattern again replaces the handler.
func (s *Server) Bind(method router.Method, pattern string, h router.HandlerFunc) {
	s.mustBeOpen()
	s.routes.Register(method, pattern, h)
}

// Before runs h ahead of every route whose pattern is matched by pattern.
func (s *Server) Before(pattern string, h router.HandlerFunc) {
	s.mustBeOpen()
	s.before.Add(pattern, h)
}

// BeforeAll runs h ahead of every route.
func (s *Server) BeforeAll(h router.HandlerFunc) {
	s.mustBeOpen()
	s.before.AddGlobal(h)
}

// After runs h behind every route whose pattern is matched by pattern.
func (s *Server) After(pattern string, h router.HandlerFunc) {
	s.mustBeOpen()
	s.after.Add(pattern, h)
}

// AfterAll runs h behind every route.
func (s *Server) AfterAll(h router.HandlerFunc) {
	s.mustBeOpen()
	s.after.AddGlobal(h)
}

// Exception runs h instead of the default 500 response for failures
// matching target under errors.Is.
func (s *Server) Exception(target error, h router.HandlerFunc) {
	s.mustBeOpen()
	s.exceptions.Bind(target, h)
}

// ExceptionType runs h instead of the default 500 response for failures
// whose chain holds an error of type E.
func ExceptionType[E error](s *Server, h router.HandlerFunc) {
	s.mustBeOpen()
	router.BindType[E](s.exceptions, h)
}

// Routes lists the registered routes.
func (s *Server) Routes() []router.RouteInfo {
	return s.routes.Routes()
}

func (s *Server) mustBeOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		panic(ErrServerStarted)
	}
}

// compose freezes registration and builds the filtered handler table the
// first time it is called.
func (s *Server) compose() *router.Table {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()

	s.composeOnce.Do(func() {
		s.handlers = router.Compose(s.routes, s.before, s.after, s.exceptions)
		s.logger.Debug("routes composed",
			"routes", s.routes.Len(),
			"before_filters", s.before.Len(),
			"after_filters", s.after.Len(),
			"exception_bindings", s.exceptions.Len(),
		)
	})

	return s.handlers
}

// Start binds the listener and runs the accept loop on its own goroutine.
// Bind failures are returned before Start returns. ctx bounds the bind and
// is the parent of every connection's context; canceling it later does not
// stop the server, Shutdown does.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.ln != nil {
		s.mu.Unlock()
		return ErrServerStarted
	}
	ln, err := s.listen(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.attach(ln)
	done := s.done
	s.mu.Unlock()

	handlers := s.compose()
	s.logger.Info("server starting", "address", ln.Addr().String(), "protocol", s.protocol())

	go func() {
		defer close(done)
		if err := s.acceptLoop(context.WithoutCancel(ctx), ln, handlers); err != nil {
			s.logger.Error("accept loop stopped", "error", err)
			s.mu.Lock()
			s.serveErr = err
			s.mu.Unlock()
		}
	}()

	return nil
}

// Serve accepts connections on ln until ln is closed, Shutdown is called or
// ctx is canceled. A closed listener is a clean stop and returns nil.
// When TLS is configured, ln is wrapped in a TLS listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.secure() {
		cfg, err := s.buildTLSConfig()
		if err != nil {
			return err
		}
		ln = tls.NewListener(ln, cfg)
	}

	s.mu.Lock()
	if s.ln != nil {
		s.mu.Unlock()
		return ErrServerStarted
	}
	s.attach(ln)
	done := s.done
	s.mu.Unlock()
	defer close(done)

	handlers := s.compose()
	stop := context.AfterFunc(ctx, func() { _ = s.closeListener() })
	defer stop()

	s.logger.Info("server starting", "address", ln.Addr().String(), "protocol", s.protocol())

	return s.acceptLoop(context.WithoutCancel(ctx), ln, handlers)
}

// ListenAndServe starts the server and blocks until ctx is canceled, then
// shuts down, waiting up to the shutdown timeout for in-flight connections.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		s.mu.Lock()
		err := s.serveErr
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("%s server failed: %w", s.protocol(), err)
		}

		return nil
	case <-ctx.Done():
		s.logger.Info("server shutting down", "protocol", s.protocol(), "reason", ctx.Err())
	}

	// ctx is already canceled; the timeout needs a fresh parent.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server forced to shutdown: %w", s.protocol(), err)
	}
	s.logger.Info("server exited", "protocol", s.protocol())

	return nil
}

// Shutdown closes the listener and waits for in-flight connections to
// finish or ctx to be done. Connections are never interrupted.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	ln, done := s.ln, s.done
	s.mu.Unlock()
	if ln == nil {
		return ErrServerNotStarted
	}

	if err := s.closeListener(); err != nil {
		s.logger.Warn("close listener", "error", err)
	}

	// No connection is added once the accept loop has returned.
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	idle := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the listener's address, or nil before Start or Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

// ServeConn serves a single request on c and closes it. It freezes
// registration like Start does, and Shutdown waits for it.
func (s *Server) ServeConn(ctx context.Context, c net.Conn) {
	s.conns.Add(1)
	defer s.conns.Done()
	s.serveConn(ctx, c, s.compose())
}

// attach must be called with s.mu held.
func (s *Server) attach(ln net.Listener) {
	s.ln = ln
	s.done = make(chan struct{})
}

func (s *Server) closeListener() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.closeErr = err
		}
	})

	return s.closeErr
}

func (s *Server) protocol() string {
	if s.secure() {
		return "https"
	}

	return "http"
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener, handlers *router.Table) error {
	var delay time.Duration
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			if isTemporary(err) {
				delay = min(max(2*delay, minAcceptDelay), maxAcceptDelay)
				s.logger.Warn("accept failed, retrying", "error", err, "delay", delay)
				time.Sleep(delay)

				continue
			}
			_ = s.closeListener()

			return fmt.Errorf("accept: %w", err)
		}
		delay = 0

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.serveConn(ctx, c, handlers)
		}()
	}
}

func isTemporary(err error) bool {
	var te interface{ Temporary() bool }
	return errors.As(err, &te) && te.Temporary()
}
