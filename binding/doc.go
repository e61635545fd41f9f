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

// Package binding decodes request bodies into Go values by Content-Type.
//
// JSON, XML, YAML, TOML, MessagePack and protobuf are supported out of the
// box; Register adds other media types. A request without a Content-Type is
// decoded as JSON.
//
//	func create(req *router.Request, res *router.Response) (any, error) {
//		u, err := binding.Body[User](req)
//		if err != nil {
//			return nil, err // 400 or 415 through the error formatter
//		}
//		...
//	}
//
// Decoding failures are *BindError values and report 400 Bad Request through
// HTTPStatus; unknown media types report 415 Unsupported Media Type and
// match ErrUnsupportedContentType.
package binding
