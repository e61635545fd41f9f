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

package logging_test

import (
	"fmt"
	"log/slog"
	"os"

	"rivaas.dev/minihttp/logging"
)

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return a
}

func ExampleNew() {
	logger := logging.MustNew(
		logging.WithTextHandler(),
		logging.WithOutput(os.Stdout),
		logging.WithServiceName("orders"),
		logging.WithReplaceAttr(dropTime),
	)
	logger.Info("server starting", "address", ":9000", "password", "hunter2")
	// Output:
	// level=INFO msg="server starting" service=orders address=:9000 password=***REDACTED***
}

func ExampleParseLevel() {
	for _, s := range []string{"debug", "WARN", "loud"} {
		lvl, err := logging.ParseLevel(s)
		fmt.Println(lvl, err != nil)
	}
	// Output:
	// DEBUG false
	// WARN false
	// INFO true
}
