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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   int
		reason string
	}{
		{100, "Continue"},
		{200, "OK"},
		{201, "Created"},
		{226, "IM Used"},
		{306, "Switch Proxy"},
		{404, "Not Found"},
		{418, "I'm a teapot"},
		{451, "Unavailable For Legal Reasons"},
		{500, "Internal Server Error"},
		{511, "Network Authentication Required"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			t.Parallel()

			s, ok := Lookup(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.code, s.Code)
			assert.Equal(t, tt.reason, s.Reason)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	t.Parallel()

	_, ok := Lookup(299)
	assert.False(t, ok)

	s := FromCode(299)
	assert.Equal(t, 299, s.Code)
	assert.Empty(t, s.Reason)
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "404 Not Found", NotFound.String())
	assert.Equal(t, "200 OK", OK.String())
}

func TestIsError(t *testing.T) {
	t.Parallel()

	assert.False(t, OK.IsError())
	assert.False(t, PermanentRedirect.IsError())
	assert.True(t, BadRequest.IsError())
	assert.True(t, InternalServerError.IsError())
}

func TestAllIsSortedAndUnique(t *testing.T) {
	t.Parallel()

	all := All()
	require.NotEmpty(t, all)

	seen := make(map[int]bool, len(all))
	for i, s := range all {
		assert.False(t, seen[s.Code], "duplicate code %d", s.Code)
		seen[s.Code] = true
		if i > 0 {
			assert.Less(t, all[i-1].Code, s.Code)
		}
		assert.NotEmpty(t, s.Reason)
	}

	// Mutating the copy must not affect the table.
	all[0] = Status{}
	s, ok := Lookup(100)
	require.True(t, ok)
	assert.Equal(t, "Continue", s.Reason)
}
