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
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Type identifies a configuration format.
type Type string

// ErrUnknownType is returned for formats with no registered decoder.
var ErrUnknownType = errors.New("no decoder registered")

// Decoder turns encoded configuration into a map.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

var (
	mu       sync.RWMutex
	decoders = make(map[Type]Decoder)
)

var extensions = map[string]Type{
	".yaml": TypeYAML,
	".yml":  TypeYAML,
	".json": TypeJSON,
	".toml": TypeTOML,
}

// Register makes d available under name, replacing any previous decoder.
func Register(name Type, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[name] = d
}

// Get returns the decoder registered under name.
func Get(name Type) (Decoder, error) {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w for type %q", ErrUnknownType, name)
	}

	return d, nil
}

// TypeForPath detects the format from the file extension.
func TypeForPath(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensions[ext]; ok {
		return t, nil
	}

	return "", fmt.Errorf("%w: cannot detect format from extension %q", ErrUnknownType, ext)
}
