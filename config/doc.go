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

// Package config loads layered configuration.
//
// Sources are read in order and merged key by key, later sources winning.
// Files are decoded by extension (YAML, TOML, JSON); environment variables
// are selected by prefix and nested on underscores. Keys are
// case-insensitive and addressed with dots:
//
//	cfg := config.MustNew(
//	    config.WithOptionalFile("minihttp.yaml"),
//	    config.WithEnv("MINIHTTP_"),
//	)
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	port := cfg.IntOr("port", 9000)
//
// # Binding
//
// WithBinding decodes the merged values into a struct through mapstructure
// using `config` tags. Zero-valued fields then take their `default` tag, and
// the struct's Validate method runs if it has one:
//
//	type Settings struct {
//	    Port    int           `config:"port" default:"9000"`
//	    Timeout time.Duration `config:"timeout" default:"5s"`
//	}
//
// # Validation
//
// WithJSONSchema checks the merged map before binding; WithValidator adds
// arbitrary checks. Failures are reported as *Error.
package config
