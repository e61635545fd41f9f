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

package router

import (
	"bufio"
	"io"
	"strconv"

	"rivaas.dev/minihttp/status"
)

// Version is the protocol version written on every status line.
const Version = "HTTP/1.1"

// Response writes a single response to a connection.
//
// The status line and headers are written by the first Send or Write and
// never again; the Sent guard records that this happened. Every call writes
// its content, so later sends append to the body.
type Response struct {
	w      *bufio.Writer
	status status.Status
	sent   bool
	code   int
	size   int64
}

// NewResponse returns a response that writes to w with status 200 OK.
func NewResponse(w io.Writer) *Response {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}

	return &Response{w: bw, status: status.OK}
}

// SendOption customizes a single Send or Write call.
type SendOption func(*sendConfig)

type sendConfig struct {
	status  status.Status
	headers *Header
}

// WithStatus overrides the response status for this send.
// It only has an effect on the first send.
func WithStatus(s status.Status) SendOption {
	return func(c *sendConfig) {
		c.status = s
	}
}

// WithHeader adds a header field to this send.
// Headers are written in the order they are given, and only on the first send.
func WithHeader(key, value string) SendOption {
	return func(c *sendConfig) {
		if c.headers == nil {
			c.headers = NewHeader()
		}
		c.headers.Set(key, value)
	}
}

// WithHeaders adds every field of h to this send, in order.
func WithHeaders(h *Header) SendOption {
	return func(c *sendConfig) {
		for k, v := range h.All() {
			WithHeader(k, v)(c)
		}
	}
}

// Send writes content, preceded by the status line and headers on the first call.
func (r *Response) Send(content string, opts ...SendOption) error {
	if err := r.writeHead(opts); err != nil {
		return err
	}
	n, err := r.w.WriteString(content)
	r.size += int64(n)

	return err
}

// Write implements io.Writer with the same semantics as Send.
func (r *Response) Write(p []byte) (int, error) {
	if err := r.writeHead(nil); err != nil {
		return 0, err
	}
	n, err := r.w.Write(p)
	r.size += int64(n)

	return n, err
}

func (r *Response) writeHead(opts []SendOption) error {
	cfg := sendConfig{status: r.status}
	for _, opt := range opts {
		opt(&cfg)
	}
	if r.sent {
		return nil
	}
	r.status = cfg.status
	r.sent = true
	r.code = cfg.status.Code

	line := make([]byte, 0, 64)
	line = append(line, Version...)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(cfg.status.Code), 10)
	line = append(line, ' ')
	line = append(line, cfg.status.Reason...)
	line = append(line, "\r\n"...)
	if _, err := r.w.Write(line); err != nil {
		return err
	}
	for k, v := range cfg.headers.All() {
		if _, err := r.w.WriteString(k + ": " + v + "\r\n"); err != nil {
			return err
		}
	}
	_, err := r.w.WriteString("\r\n")

	return err
}

// SetStatus changes the status used by the first send.
func (r *Response) SetStatus(s status.Status) {
	if !r.sent {
		r.status = s
	}
}

// Status returns the current status.
func (r *Response) Status() status.Status {
	return r.status
}

// Sent reports whether the status line has been written.
func (r *Response) Sent() bool {
	return r.sent
}

// StatusCode returns the code that was written on the status line, or 0
// when nothing has been sent.
func (r *Response) StatusCode() int {
	return r.code
}

// Size returns the number of body bytes written.
func (r *Response) Size() int64 {
	return r.size
}

// Flush flushes buffered output to the underlying writer.
func (r *Response) Flush() error {
	return r.w.Flush()
}
