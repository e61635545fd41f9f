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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		formatter  *Plain
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "message becomes body",
			formatter:  NewPlain(),
			err:        &testError{message: "boom"},
			wantStatus: 500,
			wantBody:   "boom",
		},
		{
			name:       "empty message",
			formatter:  NewPlain(),
			err:        &testError{},
			wantStatus: 500,
			wantBody:   DefaultMessage,
		},
		{
			name:       "nil error",
			formatter:  NewPlain(),
			err:        nil,
			wantStatus: 500,
			wantBody:   DefaultMessage,
		},
		{
			name:       "declared status",
			formatter:  NewPlain(),
			err:        &testErrorWithStatus{message: "gone", status: 410},
			wantStatus: 410,
			wantBody:   "gone",
		},
		{
			name:       "wrapped status",
			formatter:  NewPlain(),
			err:        fmt.Errorf("lookup: %w", WithStatus(&testError{message: "missing"}, 404)),
			wantStatus: 404,
			wantBody:   "lookup: missing",
		},
		{
			name:       "custom resolver",
			formatter:  &Plain{StatusResolver: func(error) int { return 418 }},
			err:        &testError{message: "tea"},
			wantStatus: 418,
			wantBody:   "tea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := tt.formatter.Format("/x", tt.err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Empty(t, resp.ContentType)

			body, err := resp.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestSimple_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKeys   []string
	}{
		{
			name:       "simple error",
			err:        &testError{message: "something went wrong"},
			wantStatus: 500,
			wantKeys:   []string{"error"},
		},
		{
			name:       "error with code",
			err:        &testErrorWithCode{message: "validation failed", code: "validation_error"},
			wantStatus: 500,
			wantKeys:   []string{"error", "code"},
		},
		{
			name:       "error with status",
			err:        &testErrorWithStatus{message: "not found", status: 404},
			wantStatus: 404,
			wantKeys:   []string{"error"},
		},
		{
			name:       "error with details",
			err:        &testErrorWithDetails{message: "bad", details: map[string]any{"field": "name"}},
			wantStatus: 500,
			wantKeys:   []string{"error", "details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := NewSimple().Format("/test", tt.err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)

			raw, err := resp.Bytes()
			require.NoError(t, err)

			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Len(t, body, len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, body, k)
			}
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestRFC9457_Format(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		resp := NewRFC9457("").Format("/users/7", &testError{message: "db down"})
		assert.Equal(t, 500, resp.Status)
		assert.Equal(t, "application/problem+json; charset=utf-8", resp.ContentType)

		raw, err := resp.Bytes()
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "about:blank", body["type"])
		assert.Equal(t, "Internal Server Error", body["title"])
		assert.InDelta(t, 500, body["status"], 0)
		assert.Equal(t, "db down", body["detail"])
		assert.Equal(t, "/users/7", body["instance"])
		assert.Regexp(t, `^err-[0-9a-f-]{36}$`, body["error_id"])
	})

	t.Run("code builds type URI", func(t *testing.T) {
		t.Parallel()

		f := NewRFC9457("https://example.com/problems")
		f.DisableErrorID = true
		resp := f.Format("/", &testErrorWithCode{message: "nope", code: "quota"})

		p, ok := resp.Body.(ProblemDetail)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/problems/quota", p.Type)
		assert.Equal(t, "quota", p.Extensions["code"])
		assert.NotContains(t, p.Extensions, "error_id")
	})

	t.Run("custom generator and details", func(t *testing.T) {
		t.Parallel()

		f := &RFC9457{ErrorIDGenerator: func() string { return "fixed" }}
		resp := f.Format("/", &testErrorWithDetails{message: "bad", details: map[string]any{"a": 1}})

		p, ok := resp.Body.(ProblemDetail)
		require.True(t, ok)
		assert.Equal(t, "fixed", p.Extensions["error_id"])
		assert.Equal(t, map[string]any{"a": 1}, p.Extensions["errors"])
	})
}

func TestProblemDetail_MarshalJSON_ProtectsReservedFields(t *testing.T) {
	t.Parallel()

	p := ProblemDetail{
		Type:   "about:blank",
		Title:  "Bad Request",
		Status: 400,
		Extensions: map[string]any{
			"status": 999,
			"trace":  "abc",
		},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.InDelta(t, 400, body["status"], 0)
	assert.Equal(t, "abc", body["trace"])
}

func TestWithStatus(t *testing.T) {
	t.Parallel()

	inner := &testError{message: "inner"}
	err := WithStatus(inner, 404)

	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)

	var typed ErrorType
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, 404, typed.HTTPStatus())

	assert.Equal(t, "No Content", WithStatus(nil, 204).Error())
}

func TestResponse_Bytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "nil", body: nil, want: ""},
		{name: "string", body: "text", want: "text"},
		{name: "bytes", body: []byte("raw"), want: "raw"},
		{name: "json", body: map[string]int{"n": 1}, want: `{"n":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Response{Body: tt.body}.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
