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
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Option configures a Config.
type Option func(c *Config) error

// Config merges configuration from ordered sources. Later sources override
// earlier ones key by key. Keys are case-insensitive.
//
// Config is safe for concurrent use.
type Config struct {
	sources    []Source
	binding    any
	tagName    string
	schema     *jsonschema.Schema
	validators []func(map[string]any) error

	mu     sync.RWMutex
	values map[string]any
}

// Validator is implemented by binding targets that check themselves after
// defaults are applied.
type Validator interface {
	Validate() error
}

// New applies options and collects every option error.
func New(options ...Option) (*Config, error) {
	c := &Config{
		tagName: "config",
		values:  map[string]any{},
	}

	var errs error
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(options ...Option) *Config {
	c, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}

	return c
}

// Load reads every source, validates the merged result and, when a binding
// target is set, decodes into it. The previous values are kept if any step
// fails.
func (c *Config) Load(ctx context.Context) error {
	merged := make(map[string]any)
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if err = mergo.Map(&merged, lowerKeys(conf), mergo.WithOverride); err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	if c.schema != nil {
		if err := c.schema.Validate(merged); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}

	for i, fn := range c.validators {
		if err := fn(merged); err != nil {
			return NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	if c.binding != nil {
		if err := c.bind(merged); err != nil {
			return NewError("binding", "bind", err)
		}
	}

	c.mu.Lock()
	c.values = merged
	c.mu.Unlock()

	return nil
}

// bind decodes into a fresh value first so a failure leaves the target untouched.
func (c *Config) bind(values map[string]any) error {
	target := reflect.New(reflect.TypeOf(c.binding).Elem())

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          c.tagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           target.Interface(),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err = dec.Decode(values); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err = applyDefaults(target.Interface()); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if v, ok := target.Interface().(Validator); ok {
		if err = v.Validate(); err != nil {
			return err
		}
	}

	reflect.ValueOf(c.binding).Elem().Set(target.Elem())

	return nil
}

// Values returns a shallow copy of the merged values.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.values)
}

// lookup resolves a dot-separated, case-insensitive path.
func (c *Config) lookup(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path = strings.ToLower(path)
	if v, ok := c.values[path]; ok {
		return v, true
	}

	current := c.values
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		v, ok := current[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		if current, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}

	return nil, false
}

func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = lowerKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}

	return out
}
