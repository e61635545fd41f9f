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

// Package errors renders handler failures as responses.
//
// A Formatter turns an error into a status code, an optional content type
// and a body. Three formatters are provided:
//   - Plain: the error message as the body, no headers (the server default)
//   - Simple: a small JSON object (application/json)
//   - RFC9457: RFC 9457 problem details (application/problem+json)
//
// Errors control their rendering through optional interfaces:
//
//   - ErrorType: declare the status code
//   - ErrorDetails: expose structured details
//   - ErrorCode: expose a machine-readable code
//
// WithStatus attaches a status to any error:
//
//	return nil, errors.WithStatus(ErrNoSuchUser, 404)
//
// Without a declared status every formatter falls back to 500.
package errors
