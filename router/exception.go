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
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	rerrors "rivaas.dev/minihttp/errors"
	"rivaas.dev/minihttp/status"
)

// PanicError is a recovered handler panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}

	return fmt.Sprint(e.Value)
}

// Unwrap returns the panic value when it is an error, so a panic with a
// bound error kind is handled like a returned one.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Protect returns a handler that converts a panic in h into a *PanicError.
func Protect(h HandlerFunc) HandlerFunc {
	return func(req *Request, res *Response) (v any, err error) {
		defer func() {
			if r := recover(); r != nil {
				v, err = nil, &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()

		return h(req, res)
	}
}

type binding struct {
	key     any
	match   func(error) bool
	handler HandlerFunc
}

// ExceptionBindings maps error kinds to recovery handlers.
//
// When at least one binding exists, Compose wraps every route in a boundary
// that runs the first binding, in registration order, whose kind matches the
// failure. Failures nothing matches are rendered by the formatter.
type ExceptionBindings struct {
	bindings  []*binding
	formatter rerrors.Formatter
}

// NewExceptionBindings returns an empty set that renders unmatched failures
// with f. A nil f selects errors.Plain.
func NewExceptionBindings(f rerrors.Formatter) *ExceptionBindings {
	if f == nil {
		f = rerrors.NewPlain()
	}

	return &ExceptionBindings{formatter: f}
}

// Bind runs h for failures that satisfy errors.Is(err, target).
// Binding an equal target again replaces the handler. A target holding
// uncomparable values, such as a slice behind an interface field, is never
// equal to another target and matches errors in the chain that are deeply
// equal to it.
func (b *ExceptionBindings) Bind(target error, h HandlerFunc) {
	var key any = new(byte)
	match := func(err error) bool { return isDeep(err, target) }
	if target != nil && reflect.ValueOf(target).Comparable() {
		key = target
		match = func(err error) bool { return errors.Is(err, target) }
	}
	b.add(&binding{
		key:     key,
		match:   match,
		handler: h,
	})
}

// isDeep is errors.Is with reflect.DeepEqual in place of ==.
func isDeep(err, target error) bool {
	for err != nil {
		if reflect.TypeOf(err) == reflect.TypeOf(target) && reflect.DeepEqual(err, target) {
			return true
		}
		if x, ok := err.(interface{ Is(error) bool }); ok && x.Is(target) {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if isDeep(e, target) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}

	return false
}

// BindType runs h for failures whose chain holds an error of type E.
func BindType[E error](b *ExceptionBindings, h HandlerFunc) {
	b.add(&binding{
		key: reflect.TypeFor[E](),
		match: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
		handler: h,
	})
}

func (b *ExceptionBindings) add(nb *binding) {
	if nb.handler == nil {
		panic("router: nil exception handler")
	}
	for _, existing := range b.bindings {
		if existing.key == nb.key {
			existing.handler = nb.handler
			return
		}
	}
	b.bindings = append(b.bindings, nb)
}

// Len returns the number of bindings.
func (b *ExceptionBindings) Len() int {
	if b == nil {
		return 0
	}

	return len(b.bindings)
}

// Match returns the handler bound to the first kind matching err.
func (b *ExceptionBindings) Match(err error) (HandlerFunc, bool) {
	if b == nil || err == nil {
		return nil, false
	}
	for _, bd := range b.bindings {
		if bd.match(err) {
			return bd.handler, true
		}
	}

	return nil, false
}

// Formatter returns the formatter used for unmatched failures.
func (b *ExceptionBindings) Formatter() rerrors.Formatter {
	if b == nil || b.formatter == nil {
		return rerrors.NewPlain()
	}

	return b.formatter
}

func (b *ExceptionBindings) boundary(h HandlerFunc) HandlerFunc {
	guarded := Protect(h)

	return func(req *Request, res *Response) (any, error) {
		v, err := guarded(req, res)
		if err == nil {
			return v, nil
		}
		if bound, ok := b.Match(err); ok {
			return bound(req, res)
		}

		return nil, WriteError(res, b.Formatter(), req.Path, err)
	}
}

// WriteError renders err with f and sends it on res. A nil f selects
// errors.Plain.
func WriteError(res *Response, f rerrors.Formatter, path string, err error) error {
	if f == nil {
		f = rerrors.NewPlain()
	}
	out := f.Format(path, err)
	body, encErr := out.Bytes()
	if encErr != nil {
		return fmt.Errorf("encode error response: %w", encErr)
	}

	opts := []SendOption{WithStatus(status.FromCode(out.Status))}
	if out.ContentType != "" {
		opts = append(opts, WithHeader("Content-Type", out.ContentType))
	}

	return res.Send(string(body), opts...)
}
