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

package metrics

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ErrInvalidConfig is returned by New for unusable options.
var ErrInvalidConfig = errors.New("invalid metrics configuration")

type config struct {
	namespace       string
	durationBuckets []float64
	sizeBuckets     []float64
	runtime         bool
}

func defaultConfig() *config {
	return &config{
		namespace:       "minihttp",
		durationBuckets: DefaultDurationBuckets,
		sizeBuckets:     DefaultSizeBuckets,
		runtime:         true,
	}
}

func (c *config) validate() error {
	if !namespacePattern.MatchString(c.namespace) {
		return fmt.Errorf("%w: namespace %q", ErrInvalidConfig, c.namespace)
	}
	for name, b := range map[string][]float64{"duration": c.durationBuckets, "size": c.sizeBuckets} {
		if len(b) == 0 || !slices.IsSorted(b) {
			return fmt.Errorf("%w: %s buckets must be non-empty and ascending", ErrInvalidConfig, name)
		}
	}

	return nil
}

// Option configures a Recorder.
type Option func(*config)

// WithNamespace prefixes every metric name (default "minihttp").
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithDurationBuckets sets the request duration histogram boundaries.
func WithDurationBuckets(b ...float64) Option {
	return func(c *config) { c.durationBuckets = b }
}

// WithSizeBuckets sets the response size histogram boundaries.
func WithSizeBuckets(b ...float64) Option {
	return func(c *config) { c.sizeBuckets = b }
}

// WithoutRuntimeCollectors skips the Go runtime and process collectors.
func WithoutRuntimeCollectors() Option {
	return func(c *config) { c.runtime = false }
}
