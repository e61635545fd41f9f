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

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
)

// secure reports whether the server was configured for TLS.
func (s *Server) secure() bool {
	return s.tlsConfig != nil || s.certFile != "" || s.keyFile != ""
}

// buildTLSConfig clones the configured tls.Config, or starts from a TLS 1.2
// minimum, and adds the certificate files.
func (s *Server) buildTLSConfig() (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if s.tlsConfig != nil {
		cfg = s.tlsConfig.Clone()
	}

	if s.certFile != "" || s.keyFile != "" {
		if s.certFile == "" || s.keyFile == "" {
			return nil, fmt.Errorf("%w: both certificate and key files are required", ErrNoTLSCertificate)
		}
		cert, err := tls.LoadX509KeyPair(s.certFile, s.keyFile)
		if err != nil {
			return nil, fmt.Errorf("load key pair: %w", err)
		}
		cfg.Certificates = append(cfg.Certificates, cert)
	}

	if len(cfg.Certificates) == 0 && cfg.GetCertificate == nil && cfg.GetConfigForClient == nil {
		return nil, ErrNoTLSCertificate
	}

	return cfg, nil
}

// listen binds the configured address, wrapping the socket in TLS when the
// server is secure.
func (s *Server) listen(ctx context.Context) (net.Listener, error) {
	var tlsConfig *tls.Config
	if s.secure() {
		cfg, err := s.buildTLSConfig()
		if err != nil {
			return nil, err
		}
		tlsConfig = cfg
	}

	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	if tlsConfig != nil {
		ln = tls.NewListener(ln, tlsConfig)
	}

	return ln, nil
}
