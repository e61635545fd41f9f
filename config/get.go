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
	"time"

	"github.com/spf13/cast"
)

// Get returns the raw value at key, or nil.
func (c *Config) Get(key string) any {
	v, _ := c.lookup(key)
	return v
}

// Has reports whether key is set.
func (c *Config) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

func (c *Config) Int(key string) int {
	return cast.ToInt(c.Get(key))
}

func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

func (c *Config) Duration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

func (c *Config) StringSlice(key string) []string {
	return cast.ToStringSlice(c.Get(key))
}

// StringOr returns the value at key, or def when the key is missing or
// cannot be converted.
func (c *Config) StringOr(key, def string) string {
	return getOr(c, key, def, cast.ToStringE)
}

// IntOr is like StringOr for ints.
func (c *Config) IntOr(key string, def int) int {
	return getOr(c, key, def, cast.ToIntE)
}

// BoolOr is like StringOr for bools.
func (c *Config) BoolOr(key string, def bool) bool {
	return getOr(c, key, def, cast.ToBoolE)
}

// DurationOr is like StringOr for durations.
func (c *Config) DurationOr(key string, def time.Duration) time.Duration {
	return getOr(c, key, def, cast.ToDurationE)
}

func getOr[T any](c *Config, key string, def T, conv func(any) (T, error)) T {
	raw, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := conv(raw)
	if err != nil {
		return def
	}

	return v
}
