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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader_OrderAndOverwrite(t *testing.T) {
	t.Parallel()

	h := NewHeader()
	h.Set("Host", "a")
	h.Set("Accept", "*/*")
	h.Set("Host", "b")

	assert.Equal(t, []string{"Host", "Accept"}, h.Keys())
	assert.Equal(t, "b", h.Get("Host"))
	assert.Equal(t, 2, h.Len())

	var pairs []string
	for k, v := range h.All() {
		pairs = append(pairs, k+"="+v)
	}
	assert.Equal(t, []string{"Host=b", "Accept=*/*"}, pairs)
}

func TestHeader_KeysAreCaseSensitive(t *testing.T) {
	t.Parallel()

	h := NewHeader()
	h.Set("content-length", "3")

	assert.True(t, h.Has("content-length"))
	assert.False(t, h.Has("Content-Length"))
}

func TestHeader_NilAndZero(t *testing.T) {
	t.Parallel()

	var nilHeader *Header
	assert.Equal(t, "", nilHeader.Get("x"))
	assert.Zero(t, nilHeader.Len())
	assert.Nil(t, nilHeader.Keys())
	for range nilHeader.All() {
		t.Fatal("nil header must not yield")
	}

	var zero Header
	zero.Set("k", "v")
	v, ok := zero.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestHeader_Clone(t *testing.T) {
	t.Parallel()

	h := NewHeader()
	h.Set("a", "1")
	c := h.Clone()
	c.Set("a", "2")
	c.Set("b", "3")

	assert.Equal(t, "1", h.Get("a"))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}
