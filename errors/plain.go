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

package errors

// DefaultMessage is the body written for failures whose message is empty.
const DefaultMessage = "Error"

// Plain writes the error message as the response body with no extra headers.
// It is the default formatter of the server.
type Plain struct {
	// StatusResolver determines the status from the error.
	// If nil, ErrorType is consulted and 500 is the fallback.
	StatusResolver func(err error) int
}

// Format renders err as its message, or DefaultMessage when the message is empty.
func (f *Plain) Format(_ string, err error) Response {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = DefaultMessage
	}

	return Response{
		Status: resolveStatus(f.StatusResolver, err),
		Body:   msg,
	}
}
