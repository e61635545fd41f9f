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

package binding

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnsupportedContentType reports a Content-Type with no decoder.
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrOutMustBePointer reports a destination that is not a non-nil pointer.
	ErrOutMustBePointer = errors.New("out must be a non-nil pointer")
	// ErrNotProtoMessage reports a protobuf body bound to a non-message value.
	ErrNotProtoMessage = errors.New("out must implement proto.Message")
)

// BindError is a body that could not be decoded. Error formatters render it
// as 400 Bad Request.
type BindError struct {
	ContentType string
	Err         error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("binding %s body: %v", e.ContentType, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 400.
func (e *BindError) HTTPStatus() int {
	return http.StatusBadRequest
}

// unsupportedError is rendered as 415 Unsupported Media Type.
type unsupportedError struct {
	contentType string
}

func (e *unsupportedError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedContentType, e.contentType)
}

func (e *unsupportedError) Is(target error) bool {
	return target == ErrUnsupportedContentType
}

func (e *unsupportedError) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}
