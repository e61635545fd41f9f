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

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"rivaas.dev/minihttp/config/codec"
)

// File loads configuration from a file or from in-memory content.
type File struct {
	path     string
	data     []byte
	optional bool
	decoder  codec.Decoder
}

// NewFile returns a source that reads path on every Load.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder}
}

// NewOptionalFile is like NewFile but a missing file loads as empty.
func NewOptionalFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder, optional: true}
}

// NewContent returns a source that decodes data.
func NewContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// Load decodes the file or content into a map.
func (f *File) Load(context.Context) (map[string]any, error) {
	data := f.data
	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			if f.optional && errors.Is(err, fs.ErrNotExist) {
				return map[string]any{}, nil
			}
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
	}

	var conf map[string]any
	if err := f.decoder.Decode(data, &conf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.name(), err)
	}

	return conf, nil
}

func (f *File) name() string {
	if f.path != "" {
		return f.path
	}

	return "content"
}
