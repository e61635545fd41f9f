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

package server

import "errors"

var (
	// ErrMalformedRequestLine reports a request line that is not exactly
	// "METHOD PATH VERSION".
	ErrMalformedRequestLine = errors.New("server: malformed request line")
	// ErrServerStarted is returned by Start and Serve on a running server, and
	// is the panic value of registrations made after start.
	ErrServerStarted = errors.New("server: already started")
	// ErrServerNotStarted is returned by Shutdown before Start or Serve.
	ErrServerNotStarted = errors.New("server: not started")
	// ErrNoTLSCertificate reports a TLS setup without a usable certificate.
	ErrNoTLSCertificate = errors.New("server: no TLS certificate")
	// ErrInvalidOption reports an option value New rejects.
	ErrInvalidOption = errors.New("server: invalid option")
)
