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
	"iter"
	"slices"
)

// Header is an ordered string map of header fields.
//
// Keys are kept exactly as received. Setting a key that is already present
// replaces its value but keeps the position of the first occurrence, so the
// iteration order is the order in which distinct keys were first seen.
//
// The zero value is ready to use. A nil *Header behaves as an empty header
// for reads.
type Header struct {
	keys   []string
	values map[string]string
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{values: make(map[string]string)}
}

// Set stores value under key. The last value set for a key wins.
func (h *Header) Set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Get returns the value stored under key, or "" when it is absent.
func (h *Header) Get(key string) string {
	v, _ := h.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether it was present.
func (h *Header) Lookup(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h.values[key]

	return v, ok
}

// Has reports whether key is present.
func (h *Header) Has(key string) bool {
	_, ok := h.Lookup(key)
	return ok
}

// Len returns the number of distinct keys.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}

	return len(h.keys)
}

// Keys returns the keys in insertion order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}

	return slices.Clone(h.keys)
}

// All iterates over key/value pairs in insertion order.
func (h *Header) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil {
			return
		}
		for _, k := range h.keys {
			if !yield(k, h.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of h.
func (h *Header) Clone() *Header {
	out := NewHeader()
	for k, v := range h.All() {
		out.Set(k, v)
	}

	return out
}
