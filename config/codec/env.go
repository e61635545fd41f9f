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

package codec

import (
	"bytes"
	"fmt"
	"strings"
)

// TypeEnvVar identifies newline-separated KEY=value lines.
const TypeEnvVar Type = "env_var"

func init() {
	Register(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec decodes KEY=value lines into a nested map. Keys are lowercased
// and every underscore starts a nesting level, so SHUTDOWN_TIMEOUT=5s becomes
// {"shutdown": {"timeout": "5s"}}. Values stay strings.
type EnvVarCodec struct{}

func (EnvVarCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("env decoder: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		key, value, found := strings.Cut(string(line), "=")
		if !found {
			continue
		}

		var parts []string
		for p := range strings.SplitSeq(strings.ToLower(strings.TrimSpace(key)), "_") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, p := range parts[:len(parts)-1] {
			next, ok := current[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[p] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	*ptr = conf

	return nil
}
