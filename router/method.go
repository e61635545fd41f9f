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

import "fmt"

// Method is an HTTP request method as it appears on the wire.
type Method string

// Supported request methods.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
	MethodPatch   Method = "PATCH"
)

var methods = [...]Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodTrace,
	MethodConnect,
	MethodPatch,
}

// Methods returns every supported method in declaration order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods[:])

	return out
}

// ParseMethod maps a request-line token to a Method.
// Matching is case-sensitive.
func ParseMethod(s string) (Method, error) {
	for _, m := range methods {
		if string(m) == s {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	_, err := ParseMethod(string(m))
	return err == nil
}

func (m Method) String() string {
	return string(m)
}
