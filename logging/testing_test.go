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

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestHelper(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithServiceName("orders"))
	th.Logger.Debug("warming up", "n", 1)
	th.Logger.Info("served", "path", "/a")
	th.Logger.Info("served", "path", "/b")

	entries, err := th.Logs()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Equal(t, "orders", entries[0].Attrs["service"])

	served := th.Find(t, "served")
	require.Len(t, served, 2)
	assert.Equal(t, "/b", served[1].Attrs["path"])
	assert.False(t, th.ContainsLog("missing"))

	th.Reset()
	entries, err = th.Logs()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseJSONLogEntries_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseJSONLogEntries([]byte("{\"msg\":\"ok\"}\nnot json\n"))
	require.Error(t, err)
}
