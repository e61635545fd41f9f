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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/minihttp/config/codec"
	"rivaas.dev/minihttp/config/source"
)

// WithSource appends a custom source.
func WithSource(s Source) Option {
	return func(c *Config) error {
		if s == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, s)
		return nil
	}
}

// WithFile reads a file whose format is detected from its extension.
// $VAR and ${VAR} in path are expanded.
func WithFile(path string) Option {
	return withFile(path, false)
}

// WithOptionalFile is like WithFile but a missing file is skipped.
func WithOptionalFile(path string) Option {
	return withFile(path, true)
}

func withFile(path string, optional bool) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		t, err := codec.TypeForPath(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return WithFileAs(path, t, optional)(c)
	}
}

// WithFileAs reads a file in an explicit format.
func WithFileAs(path string, t codec.Type, optional bool) Option {
	return func(c *Config) error {
		dec, err := codec.Get(t)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		if optional {
			c.sources = append(c.sources, source.NewOptionalFile(path, dec))
		} else {
			c.sources = append(c.sources, source.NewFile(path, dec))
		}
		return nil
	}
}

// WithContent decodes in-memory data.
func WithContent(data []byte, t codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Get(t)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewContent(data, dec))
		return nil
	}
}

// WithEnv reads environment variables starting with prefix.
// APP_LOG_LEVEL with prefix "APP_" becomes log.level.
func WithEnv(prefix string) Option {
	return WithSource(source.NewOSEnvVar(prefix))
}

// WithBinding decodes the merged values into v, which must be a pointer to a
// struct, on every successful Load.
func WithBinding(v any) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("binding target cannot be nil")
		}
		t := reflect.TypeOf(v)
		if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
			return errors.New("binding target must be a pointer to a struct")
		}
		c.binding = v
		return nil
	}
}

// WithTag sets the struct tag used for binding (default "config").
func WithTag(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return errors.New("tag name cannot be empty")
		}
		c.tagName = name
		return nil
	}
}

var schemaSeq atomic.Int64

// WithJSONSchema validates the merged values against schema before binding.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}

		name := fmt.Sprintf("inline_%d.json", schemaSeq.Add(1))
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(name, doc); err != nil {
			return NewError("json-schema", "compile", err)
		}
		s, err := compiler.Compile(name)
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		c.schema = s
		return nil
	}
}

// WithValidator adds a check over the merged values.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.New("validator cannot be nil")
		}
		c.validators = append(c.validators, fn)
		return nil
	}
}
