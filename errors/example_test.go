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

package errors_test

import (
	"fmt"

	"rivaas.dev/minihttp/errors"
)

func ExamplePlain() {
	f := errors.NewPlain()
	resp := f.Format("/users/42", fmt.Errorf("user 42: %w", errors.WithStatus(nil, 404)))

	body, _ := resp.Bytes()
	fmt.Println(resp.Status, string(body))
	// Output: 404 user 42: Not Found
}

func ExampleSimple() {
	f := errors.NewSimple()
	resp := f.Format("/", fmt.Errorf("storage unavailable"))

	body, _ := resp.Bytes()
	fmt.Println(resp.Status, resp.ContentType)
	fmt.Println(string(body))
	// Output:
	// 500 application/json; charset=utf-8
	// {"error":"storage unavailable"}
}
