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

package errors

import (
	"encoding/json"
	"errors"

	"rivaas.dev/minihttp/status"
)

// Formatter decides how a handler failure is rendered as a response.
//
// path is the request path of the failed exchange; formatters that report an
// instance URI use it.
type Formatter interface {
	Format(path string, err error) Response
}

// Response is a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is written as the Content-Type header when non-empty.
	ContentType string

	// Body is written as-is when it is a string or []byte and JSON-encoded otherwise.
	Body any
}

// Bytes encodes the body.
func (r Response) Bytes() ([]byte, error) {
	switch b := r.Body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(b)
	}
}

// ErrorType allows errors to declare their own HTTP status code.
//
//	type ValidationError struct{ Message string }
//
//	func (e ValidationError) Error() string   { return e.Message }
//	func (e ValidationError) HTTPStatus() int { return 400 }
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails allows errors to provide additional structured information.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode allows errors to provide a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// NewPlain returns the Plain formatter.
func NewPlain() *Plain {
	return &Plain{}
}

// NewSimple returns a Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// NewRFC9457 returns an RFC9457 formatter.
// baseURL is prepended to error codes to build problem type URIs.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// WithStatus wraps err with an explicit status code.
// A nil err is allowed; the reason phrase of the status becomes the message.
//
//	return nil, errors.WithStatus(err, 404)
func WithStatus(err error, code int) error {
	return &statusError{err: err, status: code}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return status.FromCode(e.status).Reason
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// resolveStatus applies resolver, then ErrorType, then falls back to 500.
func resolveStatus(resolver func(error) int, err error) int {
	if resolver != nil {
		return resolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return status.InternalServerError.Code
}
