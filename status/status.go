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

// Package status holds the table of HTTP response statuses known to the server.
//
// A [Status] pairs the numeric code written on the status line with its reason
// phrase. The table is fixed; [Lookup] resolves a code back to its entry.
package status

import (
	"strconv"
)

// Status is an HTTP response status: the numeric code and the reason phrase
// written after it on the status line.
type Status struct {
	Code   int
	Reason string
}

// String returns the code and reason as they appear on the status line,
// for example "404 Not Found".
func (s Status) String() string {
	return strconv.Itoa(s.Code) + " " + s.Reason
}

// IsError reports whether the status is a client or server error (4xx or 5xx).
func (s Status) IsError() bool {
	return s.Code >= 400
}

// Informational 1xx.
var (
	Continue           = Status{100, "Continue"}
	SwitchingProtocols = Status{101, "Switching Protocols"}
	Processing         = Status{102, "Processing"}
)

// Successful 2xx.
var (
	OK                          = Status{200, "OK"}
	Created                     = Status{201, "Created"}
	Accepted                    = Status{202, "Accepted"}
	NonAuthoritativeInformation = Status{203, "Non-Authoritative Information"}
	NoContent                   = Status{204, "No Content"}
	ResetContent                = Status{205, "Reset Content"}
	PartialContent              = Status{206, "Partial Content"}
	MultiStatus                 = Status{207, "Multi-Status"}
	AlreadyReported             = Status{208, "Already Reported"}
	IMUsed                      = Status{226, "IM Used"}
)

// Redirection 3xx.
var (
	MultipleChoices   = Status{300, "Multiple Choices"}
	MovedPermanently  = Status{301, "Moved Permanently"}
	Found             = Status{302, "Found"}
	SeeOther          = Status{303, "See Other"}
	NotModified       = Status{304, "Not Modified"}
	UseProxy          = Status{305, "Use Proxy"}
	SwitchProxy       = Status{306, "Switch Proxy"}
	TemporaryRedirect = Status{307, "Temporary Redirect"}
	PermanentRedirect = Status{308, "Permanent Redirect"}
)

// Client errors 4xx.
var (
	BadRequest                  = Status{400, "Bad Request"}
	Unauthorized                = Status{401, "Unauthorized"}
	PaymentRequired             = Status{402, "Payment Required"}
	Forbidden                   = Status{403, "Forbidden"}
	NotFound                    = Status{404, "Not Found"}
	MethodNotAllowed            = Status{405, "Method Not Allowed"}
	NotAcceptable               = Status{406, "Not Acceptable"}
	ProxyAuthenticationRequired = Status{407, "Proxy Authentication Required"}
	RequestTimeout              = Status{408, "Request Timeout"}
	Conflict                    = Status{409, "Conflict"}
	Gone                        = Status{410, "Gone"}
	LengthRequired              = Status{411, "Length Required"}
	PreconditionFailed          = Status{412, "Precondition Failed"}
	PayloadTooLarge             = Status{413, "Payload Too Large"}
	URITooLong                  = Status{414, "URI Too Long"}
	UnsupportedMediaType        = Status{415, "Unsupported Media Type"}
	RangeNotSatisfiable         = Status{416, "Range Not Satisfiable"}
	ExpectationFailed           = Status{417, "Expectation Failed"}
	ImATeapot                   = Status{418, "I'm a teapot"}
	MisdirectedRequest          = Status{421, "Misdirected Request"}
	UnprocessableEntity         = Status{422, "Unprocessable Entity"}
	Locked                      = Status{423, "Locked"}
	FailedDependency            = Status{424, "Failed Dependency"}
	UpgradeRequired             = Status{426, "Upgrade Required"}
	PreconditionRequired        = Status{428, "Precondition Required"}
	TooManyRequests             = Status{429, "Too Many Requests"}
	RequestHeaderFieldsTooLarge = Status{431, "Request Header Fields Too Large"}
	UnavailableForLegalReasons  = Status{451, "Unavailable For Legal Reasons"}
)

// Server errors 5xx.
var (
	InternalServerError           = Status{500, "Internal Server Error"}
	NotImplemented                = Status{501, "Not Implemented"}
	BadGateway                    = Status{502, "Bad Gateway"}
	ServiceUnavailable            = Status{503, "Service Unavailable"}
	GatewayTimeout                = Status{504, "Gateway Timeout"}
	HTTPVersionNotSupported       = Status{505, "HTTP Version Not Supported"}
	VariantAlsoNegotiates         = Status{506, "Variant Also Negotiates"}
	InsufficientStorage           = Status{507, "Insufficient Storage"}
	LoopDetected                  = Status{508, "Loop Detected"}
	NotExtended                   = Status{510, "Not Extended"}
	NetworkAuthenticationRequired = Status{511, "Network Authentication Required"}
)

// table lists every known status in ascending code order.
var table = []Status{
	Continue, SwitchingProtocols, Processing,
	OK, Created, Accepted, NonAuthoritativeInformation, NoContent, ResetContent,
	PartialContent, MultiStatus, AlreadyReported, IMUsed,
	MultipleChoices, MovedPermanently, Found, SeeOther, NotModified, UseProxy,
	SwitchProxy, TemporaryRedirect, PermanentRedirect,
	BadRequest, Unauthorized, PaymentRequired, Forbidden, NotFound,
	MethodNotAllowed, NotAcceptable, ProxyAuthenticationRequired, RequestTimeout,
	Conflict, Gone, LengthRequired, PreconditionFailed, PayloadTooLarge,
	URITooLong, UnsupportedMediaType, RangeNotSatisfiable, ExpectationFailed,
	ImATeapot, MisdirectedRequest, UnprocessableEntity, Locked, FailedDependency,
	UpgradeRequired, PreconditionRequired, TooManyRequests,
	RequestHeaderFieldsTooLarge, UnavailableForLegalReasons,
	InternalServerError, NotImplemented, BadGateway, ServiceUnavailable,
	GatewayTimeout, HTTPVersionNotSupported, VariantAlsoNegotiates,
	InsufficientStorage, LoopDetected, NotExtended, NetworkAuthenticationRequired,
}

var byCode = func() map[int]Status {
	m := make(map[int]Status, len(table))
	for _, s := range table {
		m[s.Code] = s
	}
	return m
}()

// Lookup returns the status registered for code.
// The second result is false when the code is not in the table.
func Lookup(code int) (Status, bool) {
	s, ok := byCode[code]
	return s, ok
}

// FromCode returns the status for code, or a Status carrying the code and an
// empty reason phrase when the code is unknown.
func FromCode(code int) Status {
	if s, ok := byCode[code]; ok {
		return s
	}
	return Status{Code: code}
}

// All returns a copy of the status table in ascending code order.
func All() []Status {
	out := make([]Status, len(table))
	copy(out, table)
	return out
}
