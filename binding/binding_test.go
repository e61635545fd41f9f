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
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	rerrors "rivaas.dev/minihttp/errors"
	"rivaas.dev/minihttp/router"
)

type user struct {
	Name  string `json:"name" xml:"name" yaml:"name" toml:"name" msgpack:"name"`
	Email string `json:"email" xml:"email" yaml:"email" toml:"email" msgpack:"email"`
}

func request(contentType, body string) *router.Request {
	h := router.NewHeader()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set(router.HeaderContentLength, strconv.Itoa(len(body)))

	return router.NewRequest(router.MethodPost, "/users", "HTTP/1.1", h, strings.NewReader(body))
}

func TestBind_ContentTypes(t *testing.T) {
	t.Parallel()

	want := user{Name: "Ada", Email: "ada@example.com"}
	packed, err := msgpack.Marshal(want)
	require.NoError(t, err)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"default json", "", `{"name":"Ada","email":"ada@example.com"}`},
		{"json with charset", "application/json; charset=utf-8", `{"name":"Ada","email":"ada@example.com","extra":1}`},
		{"xml", MIMEXML, `<user><name>Ada</name><email>ada@example.com</email></user>`},
		{"text xml", MIMETextXML, `<user><name>Ada</name><email>ada@example.com</email></user>`},
		{"yaml", MIMEYAML, "name: Ada\nemail: ada@example.com\n"},
		{"x-yaml", "Application/X-YAML", "name: Ada\nemail: ada@example.com\n"},
		{"toml", MIMETOML, "name = \"Ada\"\nemail = \"ada@example.com\"\n"},
		{"msgpack", MIMEMsgPack, string(packed)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Body[user](request(tt.contentType, tt.body))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestBind_Proto(t *testing.T) {
	t.Parallel()

	body, err := proto.Marshal(wrapperspb.String("hello"))
	require.NoError(t, err)

	var msg wrapperspb.StringValue
	require.NoError(t, Bind(request(MIMEXProtobuf, string(body)), &msg))
	assert.Equal(t, "hello", msg.GetValue())

	var notProto user
	err = Bind(request(MIMEProtobuf, string(body)), &notProto)
	require.ErrorIs(t, err, ErrNotProtoMessage)
}

func TestBind_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		_, err := Body[user](request(MIMEJSON, `{"name":`))
		var be *BindError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, MIMEJSON, be.ContentType)
		assert.Equal(t, http.StatusBadRequest, rerrors.NewPlain().Format("/users", err).Status)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		t.Parallel()

		_, err := Body[user](request("text/csv", "a,b"))
		require.ErrorIs(t, err, ErrUnsupportedContentType)
		assert.Equal(t, http.StatusUnsupportedMediaType, rerrors.NewPlain().Format("/users", err).Status)
	})

	t.Run("unparsable content type", func(t *testing.T) {
		t.Parallel()

		_, err := Body[user](request("application/json; =", "{}"))
		require.ErrorIs(t, err, ErrUnsupportedContentType)
	})

	t.Run("short body", func(t *testing.T) {
		t.Parallel()

		h := router.NewHeader()
		h.Set(router.HeaderContentLength, "50")
		req := router.NewRequest(router.MethodPost, "/", "HTTP/1.1", h, strings.NewReader(`{"name":"Ada"}`))

		_, err := Body[user](req)
		var be *BindError
		require.ErrorAs(t, err, &be)
		assert.ErrorIs(t, err, router.ErrIncompleteBody)
	})

	t.Run("destination not a pointer", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, Decode(MIMEJSON, []byte(`{}`), user{}), ErrOutMustBePointer)
		require.ErrorIs(t, Decode(MIMEJSON, []byte(`{}`), (*user)(nil)), ErrOutMustBePointer)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	errCSV := errors.New("csv rejected")
	Register("text/x-test-csv", func(body []byte, out any) error {
		if string(body) == "bad" {
			return errCSV
		}
		u, ok := out.(*user)
		if !ok {
			return errors.New("unexpected destination")
		}
		u.Name, u.Email, _ = strings.Cut(string(body), ",")
		return nil
	})

	got, err := Body[user](request("text/x-test-csv", "Ada,ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, user{Name: "Ada", Email: "ada@example.com"}, got)

	_, err = Body[user](request("text/x-test-csv", "bad"))
	require.ErrorIs(t, err, errCSV)

	assert.Panics(t, func() { Register("text/nil", nil) })
}
