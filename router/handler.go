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
	"fmt"

	"rivaas.dev/minihttp/status"
)

// NotFoundBody is the body written for requests that match no route.
const NotFoundBody = "Resource not found"

// HandlerFunc handles a request.
//
// A handler either writes to res directly or returns a value. A nil value
// means "nothing to send"; any other value is written by Reply once the
// handler chain has finished, unless the response was already sent.
type HandlerFunc func(req *Request, res *Response) (any, error)

// NotFound sends 404 with NotFoundBody.
func NotFound(_ *Request, res *Response) (any, error) {
	return nil, res.Send(NotFoundBody, WithStatus(status.NotFound))
}

// Reply sends v on res when v is non-nil and nothing has been sent yet.
// Byte slices are written raw, everything else is formatted with fmt.Sprint.
func Reply(res *Response, v any) error {
	if v == nil || res.Sent() {
		return nil
	}
	switch v := v.(type) {
	case []byte:
		_, err := res.Write(v)
		return err
	case string:
		return res.Send(v)
	default:
		return res.Send(fmt.Sprint(v))
	}
}

// Chain returns a handler that runs a and then b.
//
// An error from a is returned without running b. The result is b's value
// when it is non-nil and a's value otherwise, so a value returned by a route
// survives any number of filters that return nil.
func Chain(a, b HandlerFunc) HandlerFunc {
	return func(req *Request, res *Response) (any, error) {
		va, err := a(req, res)
		if err != nil {
			return nil, err
		}
		vb, err := b(req, res)
		if err != nil {
			return nil, err
		}
		if vb != nil {
			return vb, nil
		}

		return va, nil
	}
}
