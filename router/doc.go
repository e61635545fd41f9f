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

// Package router holds the request model and dispatch logic of the server:
// methods, headers, requests, responses, the route table, filters and the
// exception boundary.
//
// # Resolution
//
// A Table maps a method and a pattern to a HandlerFunc. A request path is
// resolved by exact pattern match first, then by the first pattern, in
// registration order, that fully matches the path as a regular expression.
// Anything else resolves to NotFound:
//
//	t := router.NewTable()
//	t.Register(router.MethodGet, "/hello", hello)
//	t.Register(router.MethodGet, "/users/[0-9]+", user)
//	h := t.Resolve(router.MethodGet, "/users/42") // user
//
// # Filters
//
// Before and after filters are registered by pattern in a FilterChain. A
// filter pattern is matched against route patterns, not request paths, so
// the filter for "/users/.*" wraps the route "/users/[0-9]+" whatever the
// request. Compose builds the wrapped table once:
//
//	composed := router.Compose(routes, before, after, exceptions)
//
// Filters cannot stop a request. A failing filter aborts the chain with its
// error, which the exception boundary or the server renders.
//
// # Handlers
//
// A HandlerFunc writes to the Response or returns a value. Returned values
// are sent by Reply when nothing has been written yet:
//
//	func hello(req *router.Request, res *router.Response) (any, error) {
//		return "Hello", nil
//	}
//
// The first write on a Response emits the status line and headers; later
// writes only append body bytes.
package router
