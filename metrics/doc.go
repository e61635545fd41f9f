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

// Package metrics records server activity as Prometheus metrics.
//
//	rec := metrics.MustNew(metrics.WithNamespace("api"))
//	srv := server.MustNew(server.WithMetrics(rec))
//	go http.ListenAndServe(":9090", rec.Handler())
//
// Exposed series (with the default namespace):
//
//	minihttp_connections_active
//	minihttp_connections_total
//	minihttp_requests_total{method,route,code}
//	minihttp_request_duration_seconds{method,route}
//	minihttp_response_size_bytes{method,route}
//	minihttp_malformed_requests_total{reason}
//	minihttp_handler_failures_total{route,kind}
//
// The route label is the matched route pattern, never the raw path, so
// cardinality is bounded by the route table.
package metrics
