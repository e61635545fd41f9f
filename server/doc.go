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

// Package server runs a minimal HTTP/1.x server: one request per connection,
// routes resolved by literal or regular expression pattern, before and after
// filters, and error bindings.
//
//	srv := server.MustNew(server.WithPort(8080))
//	srv.Get("/hello", func(req *router.Request, res *router.Response) (any, error) {
//		return "Hello", nil
//	})
//	srv.Before("/hello", func(req *router.Request, res *router.Response) (any, error) {
//		return nil, res.Send("before ")
//	})
//	if err := srv.ListenAndServe(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Each accepted connection runs on its own goroutine through four steps:
// read the request line, read headers, dispatch, flush. The connection is
// always closed afterwards. A request line that is not "METHOD PATH VERSION"
// or names an unknown method closes the connection without a response.
//
// Handler failures are rendered by the error formatter, 500 with the error
// message by default, unless an Exception binding matches. Panics are
// recovered the same way.
//
// Every exchange gets a server span from the configured tracer provider,
// parented on any trace context found in the request headers, and an access
// log line.
//
// Settings can be loaded from minihttp.yaml and MINIHTTP_ environment
// variables with LoadSettings and turned into a server with
// NewFromSettings.
package server
