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

// Package logging builds the structured loggers used by the server.
//
// A Logger wraps a *slog.Logger with a JSON, text or console handler, a
// runtime-adjustable level, service metadata and redaction of sensitive
// attributes:
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithServiceName("rest-api"),
//	    logging.WithDebugLevel(),
//	)
//	defer logger.Shutdown(context.Background())
//	logger.Info("server starting", "addr", ":9000")
//
// The values of password, token, secret, api_key, authorization and cookie
// attributes are always replaced by Redacted. WithRedactKeys extends the list.
//
// Records logged with a context that carries an OpenTelemetry span get
// trace_id and span_id attributes:
//
//	logger.Logger().InfoContext(ctx, "request served")
package logging
