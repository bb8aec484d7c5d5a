// Package httptest builds raw HTTP/1.x request wire bytes for feeding
// into transport/dummy.Transport, the way the teacher's
// internal/httptest/serialize package turns a structured request into
// wire bytes for its own tests — regrounded here on the opposite
// direction (building bytes to parse, rather than dumping a parsed
// request back to bytes) since conn's tests exercise the read side.
package httptest

import (
	"strconv"

	"github.com/indigo-web/utils/strcomp"
)

// Header is a single (name, value) pair to render into a request.
type Header struct {
	Name, Value string
}

// Request renders a Content-Length-framed HTTP/1.1 request: the request
// line, each header, then the body. A Content-Length header is appended
// automatically unless the caller already supplied one.
func Request(method, path string, headers []Header, body string) []byte {
	buf := requestLine(method, path)

	hasContentLength := false
	for _, h := range headers {
		buf = appendHeader(buf, h.Name, h.Value)
		if strcomp.EqualFold(h.Name, "content-length") {
			hasContentLength = true
		}
	}
	if !hasContentLength {
		buf = appendHeader(buf, "Content-Length", strconv.Itoa(len(body)))
	}

	buf = append(buf, '\r', '\n')
	buf = append(buf, body...)

	return buf
}

// Chunked renders a Transfer-Encoding: chunked HTTP/1.1 request whose
// body is split into one wire chunk per element of chunks, followed by
// the terminating zero-size chunk and, if trailers is non-empty, a
// trailer section.
func Chunked(method, path string, headers []Header, chunks []string, trailers []Header) []byte {
	buf := requestLine(method, path)

	for _, h := range headers {
		buf = appendHeader(buf, h.Name, h.Value)
	}
	buf = appendHeader(buf, "Transfer-Encoding", "chunked")
	buf = append(buf, '\r', '\n')

	for _, c := range chunks {
		buf = append(buf, strconv.FormatInt(int64(len(c)), 16)...)
		buf = append(buf, '\r', '\n')
		buf = append(buf, c...)
		buf = append(buf, '\r', '\n')
	}

	buf = append(buf, '0', '\r', '\n')
	for _, h := range trailers {
		buf = appendHeader(buf, h.Name, h.Value)
	}
	buf = append(buf, '\r', '\n')

	return buf
}

func requestLine(method, path string) []byte {
	buf := []byte(method)
	buf = append(buf, ' ')
	buf = append(buf, path...)
	buf = append(buf, " HTTP/1.1\r\n"...)
	return buf
}

func appendHeader(buf []byte, name, value string) []byte {
	buf = append(buf, name...)
	buf = append(buf, ':', ' ')
	buf = append(buf, value...)
	return append(buf, '\r', '\n')
}
