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
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

// LogEntry is one decoded JSON record.
type LogEntry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

// lockedBuffer lets connection goroutines log while a test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return bytes.Clone(b.buf.Bytes())
}

func (b *lockedBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// TestHelper captures JSON log output at debug level.
type TestHelper struct {
	Logger *Logger
	out    *lockedBuffer
}

// NewTestHelper builds a debug-level JSON logger writing to memory. opts
// are applied after those defaults.
func NewTestHelper(t testing.TB, opts ...Option) *TestHelper {
	t.Helper()

	out := &lockedBuffer{}
	logger, err := New(append([]Option{WithJSONHandler(), WithOutput(out), WithLevel(LevelDebug)}, opts...)...)
	if err != nil {
		t.Fatalf("logging: %v", err)
	}

	return &TestHelper{Logger: logger, out: out}
}

// ParseJSONLogEntries decodes one JSON record per line.
func ParseJSONLogEntries(data []byte) ([]LogEntry, error) {
	var entries []LogEntry
	for line := range bytes.Lines(data) {
		var m map[string]any
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("decode log line %q: %w", line, err)
		}

		e := LogEntry{Attrs: make(map[string]any, len(m))}
		for k, v := range m {
			switch k {
			case "time":
			case "level":
				e.Level, _ = v.(string)
			case "msg":
				e.Message, _ = v.(string)
			default:
				e.Attrs[k] = v
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Logs returns every record written so far.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.out.snapshot())
}

// Find returns the records with message msg, failing t on a decode error.
func (th *TestHelper) Find(t testing.TB, msg string) []LogEntry {
	t.Helper()

	entries, err := th.Logs()
	if err != nil {
		t.Fatalf("logging: %v", err)
	}
	var found []LogEntry
	for _, e := range entries {
		if e.Message == msg {
			found = append(found, e)
		}
	}

	return found
}

// ContainsLog reports whether any record has message msg.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Message == msg {
			return true
		}
	}

	return false
}

// Reset discards captured output.
func (th *TestHelper) Reset() {
	th.out.reset()
}
