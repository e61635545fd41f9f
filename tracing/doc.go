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

// Package tracing builds the OpenTelemetry tracer provider handed to
// server.WithTracerProvider.
//
// A Tracing owns an sdk provider and its exporter. Pick one exporter with
// WithStdout, WithOTLP or WithOTLPHTTP; with none, spans are sampled and
// ended but never exported.
//
//	tr, err := tracing.New(ctx,
//	    tracing.WithServiceName("orders"),
//	    tracing.WithOTLPHTTP("http://collector:4318"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	srv, err := server.New(server.WithTracerProvider(tr.TracerProvider()))
package tracing
