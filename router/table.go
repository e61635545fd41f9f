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

// NotFoundRoute is the route label reported by Lookup for unmatched requests.
const NotFoundRoute = "_not_found"

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  Method
	Pattern string
}

// Table maps (method, pattern) pairs to handlers.
//
// Resolution tries an exact pattern match first, then the patterns of the
// method in registration order as full-match regular expressions.
// A Table is not safe for concurrent registration; once registration is
// over, concurrent resolution is safe.
type Table struct {
	methods map[Method]*entries
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{methods: make(map[Method]*entries, len(methods))}
}

// Register binds h to pattern for method. Registering the same pattern
// twice replaces the handler and keeps the original position.
//
// Register panics if h is nil.
func (t *Table) Register(method Method, pattern string, h HandlerFunc) {
	l, ok := t.methods[method]
	if !ok {
		l = &entries{}
		t.methods[method] = l
	}
	l.set(pattern, h)
}

// Resolve returns the handler for method and path, or NotFound.
func (t *Table) Resolve(method Method, path string) HandlerFunc {
	h, _, _ := t.Lookup(method, path)
	return h
}

// Lookup is like Resolve but also reports the matched pattern.
// Unmatched requests report NotFoundRoute and false.
func (t *Table) Lookup(method Method, path string) (HandlerFunc, string, bool) {
	if l, ok := t.methods[method]; ok {
		if e, ok := l.find(path); ok {
			return e.handler, e.pattern, true
		}
	}

	return NotFound, NotFoundRoute, false
}

// Routes lists registered routes by method declaration order, then
// registration order.
func (t *Table) Routes() []RouteInfo {
	var out []RouteInfo
	for _, m := range methods {
		l, ok := t.methods[m]
		if !ok {
			continue
		}
		for _, e := range l.order {
			out = append(out, RouteInfo{Method: m, Pattern: e.pattern})
		}
	}

	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	n := 0
	for _, l := range t.methods {
		n += l.len()
	}

	return n
}
