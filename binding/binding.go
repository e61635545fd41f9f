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
	"fmt"
	"mime"
	"reflect"
	"strings"
	"sync"

	"rivaas.dev/minihttp/router"
)

// Media types with a built-in decoder.
const (
	MIMEJSON          = "application/json"
	MIMEXML           = "application/xml"
	MIMETextXML       = "text/xml"
	MIMEYAML          = "application/yaml"
	MIMEXYAML         = "application/x-yaml"
	MIMETOML          = "application/toml"
	MIMEMsgPack       = "application/msgpack"
	MIMEXMsgPack      = "application/x-msgpack"
	MIMEProtobuf      = "application/protobuf"
	MIMEXProtobuf     = "application/x-protobuf"
	headerContentType = "Content-Type"
)

// DecodeFunc decodes body into out.
type DecodeFunc func(body []byte, out any) error

var (
	mu       sync.RWMutex
	decoders = map[string]DecodeFunc{
		MIMEJSON:      JSON,
		MIMEXML:       XML,
		MIMETextXML:   XML,
		MIMEYAML:      YAML,
		MIMEXYAML:     YAML,
		MIMETOML:      TOML,
		MIMEMsgPack:   MsgPack,
		MIMEXMsgPack:  MsgPack,
		MIMEProtobuf:  Proto,
		MIMEXProtobuf: Proto,
	}
)

// Register adds or replaces the decoder for mediaType.
func Register(mediaType string, fn DecodeFunc) {
	if fn == nil {
		panic("binding: nil decoder for " + mediaType)
	}
	mu.Lock()
	defer mu.Unlock()
	decoders[strings.ToLower(mediaType)] = fn
}

func lookup(contentType string) (DecodeFunc, string, error) {
	mediaType := MIMEJSON
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, contentType, &unsupportedError{contentType: contentType}
		}
		mediaType = mt
	}

	mu.RLock()
	fn, ok := decoders[mediaType]
	mu.RUnlock()
	if !ok {
		return nil, mediaType, &unsupportedError{contentType: mediaType}
	}

	return fn, mediaType, nil
}

// Decode decodes body according to contentType. An empty contentType is
// treated as JSON.
func Decode(contentType string, body []byte, out any) error {
	if v := reflect.ValueOf(out); v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w, got %T", ErrOutMustBePointer, out)
	}

	fn, mediaType, err := lookup(contentType)
	if err != nil {
		return err
	}
	if err = fn(body, out); err != nil {
		return &BindError{ContentType: mediaType, Err: err}
	}

	return nil
}

// Bind reads the request content and decodes it into out according to the
// request's Content-Type.
func Bind(req *router.Request, out any) error {
	content, err := req.Content()
	if err != nil {
		return &BindError{ContentType: req.Header.Get(headerContentType), Err: err}
	}

	return Decode(req.Header.Get(headerContentType), []byte(content), out)
}

// Body is the generic form of Bind.
func Body[T any](req *router.Request) (T, error) {
	var out T
	err := Bind(req, &out)

	return out, err
}
