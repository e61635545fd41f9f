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

// AllPaths is the pattern under which global filters are registered.
// It matches every route pattern.
const AllPaths = ".*"

// FilterChain is an ordered set of filters keyed by pattern.
//
// A filter pattern is compared against route patterns, not request paths:
// it applies to a route when it equals the route's pattern or, read as a
// regular expression, fully matches the route's pattern string. Adding a
// pattern twice replaces the filter in place.
type FilterChain struct {
	list entries
}

// NewFilterChain returns an empty chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Add registers h under pattern. Add panics if h is nil.
func (c *FilterChain) Add(pattern string, h HandlerFunc) {
	c.list.set(pattern, h)
}

// AddGlobal registers h under AllPaths.
func (c *FilterChain) AddGlobal(h HandlerFunc) {
	c.Add(AllPaths, h)
}

// Len returns the number of filters.
func (c *FilterChain) Len() int {
	if c == nil {
		return 0
	}

	return c.list.len()
}

// Patterns returns the filter patterns in registration order.
func (c *FilterChain) Patterns() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, c.list.len())
	for _, e := range c.list.order {
		out = append(out, e.pattern)
	}

	return out
}

// matching returns the filters that apply to routePattern, in registration order.
func (c *FilterChain) matching(routePattern string) []HandlerFunc {
	if c == nil {
		return nil
	}
	var out []HandlerFunc
	for _, e := range c.list.order {
		if e.matches(routePattern) {
			out = append(out, e.handler)
		}
	}

	return out
}
