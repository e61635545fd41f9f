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

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"rivaas.dev/minihttp/status"
)

// RFC9457 formats errors as RFC 9457 problem details with Content-Type
// "application/problem+json".
type RFC9457 struct {
	// BaseURL is prepended to error codes to build the problem type URI.
	BaseURL string

	// TypeResolver maps an error to a problem type URI.
	// If nil, ErrorCode is used and "about:blank" is the fallback.
	TypeResolver func(err error) string

	// StatusResolver determines the status from the error.
	// If nil, ErrorType is consulted and 500 is the fallback.
	StatusResolver func(err error) int

	// ErrorIDGenerator generates the error_id extension.
	// If nil, a random UUID is used.
	ErrorIDGenerator func() string

	// DisableErrorID omits the error_id extension.
	DisableErrorID bool
}

// ProblemDetail is an RFC 9457 problem detail. Extensions are marshaled inline.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

var reservedProblemFields = map[string]bool{
	"type":     true,
	"title":    true,
	"status":   true,
	"detail":   true,
	"instance": true,
}

// MarshalJSON merges extensions into the object. Extensions never override
// the standard members.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if !reservedProblemFields[k] {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Format converts err into a problem detail. path becomes the instance member.
func (f *RFC9457) Format(path string, err error) Response {
	code := resolveStatus(f.StatusResolver, err)

	p := ProblemDetail{
		Type:       f.determineType(err),
		Title:      status.FromCode(code).Reason,
		Status:     code,
		Detail:     err.Error(),
		Instance:   path,
		Extensions: make(map[string]any),
	}

	if !f.DisableErrorID {
		if f.ErrorIDGenerator != nil {
			p.Extensions["error_id"] = f.ErrorIDGenerator()
		} else {
			p.Extensions["error_id"] = "err-" + uuid.NewString()
		}
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		p.Extensions["errors"] = detailed.Details()
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		p.Extensions["code"] = coded.Code()
	}

	return Response{
		Status:      code,
		ContentType: "application/problem+json; charset=utf-8",
		Body:        p,
	}
}

func (f *RFC9457) determineType(err error) string {
	if f.TypeResolver != nil {
		return f.TypeResolver(err)
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		if f.BaseURL != "" {
			return f.BaseURL + "/" + coded.Code()
		}
		return coded.Code()
	}

	return "about:blank"
}
