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
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"
)

// JSON decodes a JSON body into out. Unknown fields are ignored.
func JSON(body []byte, out any) error {
	return json.Unmarshal(body, out)
}

// XML decodes an XML body into out.
func XML(body []byte, out any) error {
	return xml.Unmarshal(body, out)
}

// YAML decodes a YAML body into out.
func YAML(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	return yaml.Unmarshal(body, out)
}

// TOML decodes a TOML body into out.
func TOML(body []byte, out any) error {
	_, err := toml.Decode(string(body), out)
	return err
}

// MsgPack decodes a MessagePack body into out.
func MsgPack(body []byte, out any) error {
	return msgpack.Unmarshal(body, out)
}

// Proto decodes a protobuf body into out, which must be a proto.Message.
func Proto(body []byte, out any) error {
	msg, ok := out.(proto.Message)
	if !ok {
		return fmt.Errorf("%w, got %T", ErrNotProtoMessage, out)
	}

	return proto.Unmarshal(body, msg)
}
