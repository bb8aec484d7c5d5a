package httptest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequest_AddsContentLength(t *testing.T) {
	raw := Request("POST", "/x", []Header{{"Host", "h"}}, "hello")
	require.Equal(t, "POST /x HTTP/1.1\r\nHost: h\r\nContent-Length: 5\r\n\r\nhello", string(raw))
}

func TestRequest_KeepsExplicitContentLength(t *testing.T) {
	raw := Request("GET", "/", []Header{{"Content-Length", "0"}}, "")
	require.Equal(t, "GET / HTTP/1.1\r\nContent-Length: 0\r\n\r\n", string(raw))
}

func TestChunked_RendersChunksAndTrailers(t *testing.T) {
	raw := Chunked("POST", "/", nil, []string{"ab", "cdef"}, []Header{{"X-Checksum", "42"}})
	want := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"2\r\nab\r\n4\r\ncdef\r\n0\r\nX-Checksum: 42\r\n\r\n"
	require.Equal(t, want, string(raw))
}
