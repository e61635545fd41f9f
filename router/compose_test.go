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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects handler invocations in order.
type recorder struct {
	calls []string
}

func (r *recorder) handler(name string, v any, err error) HandlerFunc {
	return func(*Request, *Response) (any, error) {
		r.calls = append(r.calls, name)
		return v, err
	}
}

func invoke(t *testing.T, tb *Table, m Method, path string) (any, string, error) {
	t.Helper()

	var buf bytes.Buffer
	res := NewResponse(&buf)
	v, err := tb.Resolve(m, path)(NewRequest(m, path, "HTTP/1.1", nil, nil), res)
	require.NoError(t, res.Flush())

	return v, buf.String(), err
}

func TestChain(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")

	tests := []struct {
		name      string
		a, b      func(*recorder) HandlerFunc
		wantCalls []string
		wantValue any
		wantErr   error
	}{
		{
			name:      "runs a then b",
			a:         func(r *recorder) HandlerFunc { return r.handler("a", nil, nil) },
			b:         func(r *recorder) HandlerFunc { return r.handler("b", nil, nil) },
			wantCalls: []string{"a", "b"},
		},
		{
			name:      "error in a skips b",
			a:         func(r *recorder) HandlerFunc { return r.handler("a", nil, errA) },
			b:         func(r *recorder) HandlerFunc { return r.handler("b", "b", nil) },
			wantCalls: []string{"a"},
			wantErr:   errA,
		},
		{
			name:      "value of a survives nil b",
			a:         func(r *recorder) HandlerFunc { return r.handler("a", "from a", nil) },
			b:         func(r *recorder) HandlerFunc { return r.handler("b", nil, nil) },
			wantCalls: []string{"a", "b"},
			wantValue: "from a",
		},
		{
			name:      "value of b wins",
			a:         func(r *recorder) HandlerFunc { return r.handler("a", "from a", nil) },
			b:         func(r *recorder) HandlerFunc { return r.handler("b", "from b", nil) },
			wantCalls: []string{"a", "b"},
			wantValue: "from b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			v, err := Chain(tt.a(rec), tt.b(rec))(nil, nil)
			assert.Equal(t, tt.wantCalls, rec.calls)
			assert.Equal(t, tt.wantValue, v)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCompose_Order(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	routes := NewTable()
	routes.Register(MethodGet, "/x", rec.handler("R", nil, nil))

	before := NewFilterChain()
	before.Add("/x", rec.handler("B1", nil, nil))
	before.Add("/x", rec.handler("B1", nil, nil))
	before.Add(".*", rec.handler("B2", nil, nil))

	after := NewFilterChain()
	after.Add("/x", rec.handler("A1", nil, nil))
	after.AddGlobal(rec.handler("A2", nil, nil))

	composed := Compose(routes, before, after, nil)
	_, _, err := invoke(t, composed, MethodGet, "/x")
	require.NoError(t, err)

	assert.Equal(t, []string{"B2", "B1", "R", "A1", "A2"}, rec.calls)
}

func TestCompose_FilterPatternMatchesRoutePattern(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	routes := NewTable()
	routes.Register(MethodGet, "/users/[0-9]+", rec.handler("users", nil, nil))
	routes.Register(MethodGet, "/other", rec.handler("other", nil, nil))

	before := NewFilterChain()
	before.Add("/users/.*", rec.handler("users-filter", nil, nil))
	// Matches request paths like /users/1 but not the pattern string.
	before.Add("/users/1", rec.handler("path-filter", nil, nil))

	composed := Compose(routes, before, nil, nil)

	_, _, err := invoke(t, composed, MethodGet, "/users/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"users-filter", "users"}, rec.calls)

	rec.calls = nil
	_, _, err = invoke(t, composed, MethodGet, "/other")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, rec.calls)
}

func TestCompose_DoesNotMutateInputAndIsIdempotent(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	routes := NewTable()
	routes.Register(MethodGet, "/x", rec.handler("R", nil, nil))
	before := NewFilterChain()
	before.AddGlobal(rec.handler("B", nil, nil))

	first := Compose(routes, before, nil, nil)
	second := Compose(routes, before, nil, nil)

	_, _, err := invoke(t, routes, MethodGet, "/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"R"}, rec.calls)

	rec.calls = nil
	_, _, err = invoke(t, first, MethodGet, "/x")
	require.NoError(t, err)
	_, _, err = invoke(t, second, MethodGet, "/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "R", "B", "R"}, rec.calls)
	assert.Equal(t, routes.Routes(), first.Routes())
}

func TestCompose_NotFoundIsNotFiltered(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	before := NewFilterChain()
	before.AddGlobal(rec.handler("B", nil, nil))

	composed := Compose(NewTable(), before, nil, nil)
	_, out, err := invoke(t, composed, MethodGet, "/nothing")
	require.NoError(t, err)
	assert.Empty(t, rec.calls)
	assert.Contains(t, out, "404 Not Found")
}

func TestCompose_ValuePropagatesThroughFilters(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	routes := NewTable()
	routes.Register(MethodGet, "/hello", rec.handler("R", "Hello", nil))
	before := NewFilterChain()
	before.AddGlobal(rec.handler("B", nil, nil))
	after := NewFilterChain()
	after.AddGlobal(rec.handler("A", nil, nil))

	v, _, err := invoke(t, Compose(routes, before, after, nil), MethodGet, "/hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", v)
}

func TestCompose_FilterErrorAbortsChain(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rec := &recorder{}
	routes := NewTable()
	routes.Register(MethodGet, "/x", rec.handler("R", nil, nil))
	before := NewFilterChain()
	before.AddGlobal(rec.handler("B", nil, boom))

	_, _, err := invoke(t, Compose(routes, before, nil, nil), MethodGet, "/x")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"B"}, rec.calls)
}
