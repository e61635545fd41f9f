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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/minihttp/metrics"
	"rivaas.dev/minihttp/router"
)

// Reasons reported to metrics.Recorder.MalformedRequest.
const (
	malformedRequestLine = "request_line"
	malformedMethod      = "method"
)

// Bounds on reading an unread request body before close. Larger bodies are
// left unread and the connection is closed as is.
const (
	maxDrainBytes = 4 << 20
	drainTimeout  = 5 * time.Second
)

// stateFn is one step of a connection's life. It returns the next step, or
// nil once the connection is closed.
type stateFn func(*conn) stateFn

// conn is the state of one accepted connection. It is owned by a single
// goroutine.
type conn struct {
	srv      *Server
	handlers *router.Table
	rwc      net.Conn
	r        *bufio.Reader
	ctx      context.Context
	logger   *slog.Logger
	start    time.Time

	method  router.Method
	path    string
	version string
	header  *router.Header

	route string
	req   *router.Request
	res   *router.Response
	span  trace.Span
	err   error

	closeOnce sync.Once
}

func (s *Server) serveConn(ctx context.Context, rwc net.Conn, handlers *router.Table) {
	c := &conn{
		srv:      s,
		handlers: handlers,
		rwc:      rwc,
		r:        bufio.NewReader(rwc),
		ctx:      ctx,
		logger:   s.logger.With("conn_id", uuid.NewString(), "remote", remoteAddr(rwc)),
		start:    time.Now(),
	}

	s.metrics.ConnectionOpened()
	defer s.metrics.ConnectionClosed()

	for state := readRequestLine; state != nil; {
		state = state(c)
	}
}

func remoteAddr(c net.Conn) string {
	if addr := c.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return ""
}

// readLine returns the next line without its line ending. A final line cut
// short by EOF is returned as is.
func (c *conn) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func readRequestLine(c *conn) stateFn {
	line, err := c.readLine()
	if err != nil {
		c.err = fmt.Errorf("read request line: %w", err)
		return closeConn
	}

	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		c.malformed(malformedRequestLine, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line))
		return closeConn
	}

	method, err := router.ParseMethod(parts[0])
	if err != nil {
		c.malformed(malformedMethod, err)
		return closeConn
	}

	c.method, c.path, c.version = method, parts[1], parts[2]
	c.header = router.NewHeader()

	return readHeaders
}

func readHeaders(c *conn) stateFn {
	for {
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			return dispatch
		}
		if err != nil {
			c.err = fmt.Errorf("read headers: %w", err)
			return closeConn
		}
		if strings.TrimSpace(line) == "" {
			return dispatch
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		c.header.Set(key, strings.TrimSpace(value))
	}
}

func dispatch(c *conn) stateFn {
	h, route, _ := c.handlers.Lookup(c.method, c.path)
	c.route = route

	ctx := c.srv.propagator.Extract(c.ctx, headerCarrier{c.header})
	ctx, span := c.srv.tracer.Start(ctx, string(c.method)+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", string(c.method)),
			attribute.String("http.target", c.path),
			attribute.String("http.route", route),
			attribute.String("http.flavor", c.version),
		),
	)
	c.ctx, c.span = ctx, span

	req := router.NewRequest(c.method, c.path, c.version, c.header, c.r)
	c.req = req
	c.res = router.NewResponse(c.rwc)

	v, err := router.Protect(h)(req, c.res)
	if err != nil {
		c.handlerFailed(err)
		if c.res.Sent() {
			return flush
		}
		if err = router.WriteError(c.res, c.srv.formatter, c.path, err); err != nil {
			c.err = fmt.Errorf("write error response: %w", err)
			return closeConn
		}

		return flush
	}

	if err = router.Reply(c.res, v); err != nil {
		c.err = fmt.Errorf("write reply: %w", err)
		return closeConn
	}

	return flush
}

// headerCarrier reads propagation fields from request headers, which keep
// the case they were sent with.
type headerCarrier struct{ h *router.Header }

func (hc headerCarrier) Get(key string) string {
	if v, ok := hc.h.Lookup(key); ok {
		return v
	}
	for k, v := range hc.h.All() {
		if strings.EqualFold(k, key) {
			return v
		}
	}

	return ""
}

func (hc headerCarrier) Set(key, value string) { hc.h.Set(key, value) }

func (hc headerCarrier) Keys() []string { return hc.h.Keys() }

// flush writes a bare status line when nothing was sent, so every
// dispatched request gets exactly one response.
func flush(c *conn) stateFn {
	if !c.res.Sent() {
		if err := c.res.Send(""); err != nil {
			c.err = fmt.Errorf("write empty response: %w", err)
			return closeConn
		}
	}
	if err := c.res.Flush(); err != nil {
		c.err = fmt.Errorf("flush: %w", err)
	}

	return closeConn
}

func closeConn(c *conn) stateFn {
	c.drain()
	c.close()
	c.finish()

	return nil
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		if err := c.rwc.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			c.logger.Debug("close connection", "error", err)
		}
	})
}

// drain reads the unread part of a declared body, up to maxDrainBytes, so
// closing does not reset the connection before the peer reads the response.
func (c *conn) drain() {
	if c.req == nil {
		return
	}
	if err := c.rwc.SetReadDeadline(time.Now().Add(drainTimeout)); err != nil {
		c.logger.Debug("set drain deadline", "error", err)
	}
	if n, err := c.req.Discard(maxDrainBytes); err != nil {
		c.logger.Debug("drain request body", "discarded", n, "error", err)
	}
}

func (c *conn) malformed(reason string, err error) {
	c.srv.metrics.MalformedRequest(reason)
	c.logger.Debug("malformed request", "reason", reason, "error", err)
}

func (c *conn) handlerFailed(err error) {
	kind := metrics.FailureError
	var pe *router.PanicError
	if errors.As(err, &pe) {
		kind = metrics.FailurePanic
		c.logger.ErrorContext(c.ctx, "handler panicked",
			"route", c.route,
			"panic", pe.Value,
			"stack", string(pe.Stack),
		)
	}
	c.srv.metrics.HandlerFailed(c.route, kind)

	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, err.Error())
}

// finish records the outcome of the exchange once the connection is closed.
func (c *conn) finish() {
	if c.err != nil {
		c.logger.DebugContext(c.ctx, "connection error", "error", c.err)
	}
	if c.res == nil {
		return
	}

	code := c.res.StatusCode()
	duration := time.Since(c.start)

	c.srv.metrics.RequestServed(string(c.method), c.route, code, duration, c.res.Size())

	c.span.SetAttributes(
		attribute.Int("http.status_code", code),
		attribute.Int64("http.response_size", c.res.Size()),
	)
	switch {
	case c.err != nil:
		c.span.SetStatus(codes.Error, c.err.Error())
	case code >= 500:
		c.span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", code))
	}
	c.span.End()

	fields := []any{
		"method", string(c.method),
		"path", c.path,
		"route", c.route,
		"status", code,
		"bytes", c.res.Size(),
		"duration", duration,
	}
	switch {
	case code >= 500:
		c.logger.ErrorContext(c.ctx, "access", fields...)
	case code >= 400:
		c.logger.WarnContext(c.ctx, "access", fields...)
	default:
		c.logger.InfoContext(c.ctx, "access", fields...)
	}
}
