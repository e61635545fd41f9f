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

package router

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// HeaderContentLength is the header field that sizes the request body.
const HeaderContentLength = "Content-Length"

// Request is a parsed inbound request.
//
// The request line and headers are read eagerly by the connection handler.
// The body stays on the connection until Content is called.
type Request struct {
	Method  Method
	Path    string
	Version string
	Header  *Header

	body *bufio.Reader

	once    sync.Once
	content string
	err     error
}

// NewRequest builds a request whose body, if any, is read from body.
// A nil body is treated as empty.
func NewRequest(method Method, path, version string, header *Header, body io.Reader) *Request {
	if header == nil {
		header = NewHeader()
	}
	var br *bufio.Reader
	if body != nil {
		if b, ok := body.(*bufio.Reader); ok {
			br = b
		} else {
			br = bufio.NewReader(body)
		}
	}

	return &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Header:  header,
		body:    br,
	}
}

// ContentLength returns the declared body length.
// A missing, non-numeric or negative Content-Length counts as zero.
func (r *Request) ContentLength() int {
	raw, ok := r.Header.Lookup(HeaderContentLength)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// Content reads exactly ContentLength bytes from the connection on the first
// call and returns them as a string. Later calls return the same string and
// error without touching the connection.
//
// When the peer sends fewer bytes than declared, the bytes that did arrive are
// returned together with an error wrapping ErrIncompleteBody and
// io.ErrUnexpectedEOF.
func (r *Request) Content() (string, error) {
	r.once.Do(func() {
		r.content, r.err = r.readContent()
	})

	return r.content, r.err
}

// Discard consumes a body that Content has not read, when its declared length
// is at most limit, and returns the number of bytes dropped. After Discard,
// Content returns an empty string. Bodies over limit are left unread.
func (r *Request) Discard(limit int64) (int64, error) {
	var (
		n   int64
		err error
	)
	r.once.Do(func() {
		size := int64(r.ContentLength())
		if size == 0 || size > limit || r.body == nil {
			return
		}
		n, err = io.CopyN(io.Discard, r.body, size)
		if err != nil {
			err = fmt.Errorf("%w: dropped %d of %d bytes: %w", ErrIncompleteBody, n, size, err)
		}
	})

	return n, err
}

func (r *Request) readContent() (string, error) {
	n := r.ContentLength()
	if n == 0 || r.body == nil {
		if n > 0 {
			return "", fmt.Errorf("%w: got 0 of %d bytes: %w", ErrIncompleteBody, n, io.ErrUnexpectedEOF)
		}
		return "", nil
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(r.body, buf)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return string(buf[:read]), fmt.Errorf("%w: got %d of %d bytes: %w", ErrIncompleteBody, read, n, err)
	}

	return string(buf), nil
}

func (r *Request) String() string {
	return string(r.Method) + " " + r.Path + " " + r.Version
}
