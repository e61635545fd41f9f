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

// Compose returns a new table whose handlers are the routes of routes
// wrapped by the matching filters and, when exceptions has bindings, by the
// exception boundary.
//
// For each route, before-filters are applied in registration order as
// Chain(filter, current), so the last registered before-filter runs first.
// After-filters are then applied in registration order as
// Chain(current, filter). routes is not modified; composing the same inputs
// twice yields equivalent tables.
//
// Compose is meant to run once, when the server starts. Filters, chains and
// bindings may be nil.
func Compose(routes *Table, before, after *FilterChain, exceptions *ExceptionBindings) *Table {
	out := NewTable()
	for m, l := range routes.methods {
		for _, e := range l.order {
			h := e.handler
			for _, f := range before.matching(e.pattern) {
				h = Chain(f, h)
			}
			for _, f := range after.matching(e.pattern) {
				h = Chain(h, f)
			}
			if exceptions.Len() > 0 {
				h = exceptions.boundary(h)
			}
			out.Register(m, e.pattern, h)
		}
	}

	return out
}
