package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder accumulates callback fragments into whole values, the way
// conn.ParserCallbackBridge would, without pulling in the conn package —
// keeping parser tests focused on grammar, not on message mutation.
type recorder struct {
	began       bool
	url         []byte
	headers     map[string][]string
	body        []byte
	bodyFinal   bool
	complete    bool
}

func newRecorder() *recorder {
	return &recorder{headers: map[string][]string{}}
}

func (r *recorder) callbacks() Callbacks {
	var curName, curValue []byte

	flush := func() {
		if len(curName) == 0 {
			return
		}
		r.headers[string(curName)] = append(r.headers[string(curName)], string(curValue))
		curName, curValue = nil, nil
	}

	return Callbacks{
		OnMessageBegin: func() { r.began = true },
		OnURL: func(f []byte) {
			r.url = append(r.url, f...)
		},
		OnHeaderField: func(f []byte) {
			if len(curValue) > 0 || len(curName) == 0 {
				flush()
			}
			curName = append(curName, f...)
		},
		OnHeaderValue: func(f []byte) {
			curValue = append(curValue, f...)
		},
		OnHeadersComplete: func() {
			flush()
		},
		OnBody: func(f []byte, final bool) {
			r.body = append(r.body, f...)
			r.bodyFinal = final
		},
		OnMessageComplete: func() {
			flush()
			r.complete = true
		},
	}
}

func TestParser_SimpleGET(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	done, rest, err := p.Execute([]byte("GET /x HTTP/1.1\r\nHost: h\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, done)
	require.Empty(t, rest)

	require.True(t, r.began)
	require.Equal(t, "GET", methodMustName(t, p.Method))
	require.Equal(t, "/x", string(r.url))
	require.Equal(t, 1, p.HTTPMajor)
	require.Equal(t, 1, p.HTTPMinor)
	require.True(t, p.KeepAlive())
	require.Equal(t, []string{"h"}, r.headers["Host"])
	require.True(t, r.complete)
}

func TestParser_HTTP10NoKeepAlive(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	done, _, err := p.Execute([]byte("GET / HTTP/1.0\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, done)
	require.False(t, p.KeepAlive())
}

func TestParser_VersionRejected(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	done, _, err := p.Execute([]byte("GET / HTTP/2.0\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, p.VersionRejected)
}

func TestParser_ContentLengthBody(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	raw := "POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	done, rest, err := p.Execute([]byte(raw))
	require.NoError(t, err)
	require.True(t, done)
	require.Empty(t, rest)
	require.Equal(t, "hello", string(r.body))
	require.True(t, r.bodyFinal)
}

func TestParser_ChunkedBodyWithTrailers(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	raw := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"2\r\nab\r\n4\r\ncdef\r\n0\r\nX-Checksum: 42\r\n\r\n"
	done, rest, err := p.Execute([]byte(raw))
	require.NoError(t, err)
	require.True(t, done)
	require.Empty(t, rest)
	require.Equal(t, "abcdef", string(r.body))
	require.Equal(t, []string{"42"}, r.headers["X-Checksum"])
}

func TestParser_PipelinedRequestsStopAtBoundary(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 0)

	raw := "GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"
	done, rest, err := p.Execute([]byte(raw))
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "GET /b HTTP/1.1\r\n\r\n", string(rest))

	r2 := newRecorder()
	p2 := New(r2.callbacks(), 0)
	done, rest, err = p2.Execute(rest)
	require.NoError(t, err)
	require.True(t, done)
	require.Empty(t, rest)
	require.Equal(t, "/b", string(r2.url))
}

func TestParser_MaxChunkSizeRejected(t *testing.T) {
	r := newRecorder()
	p := New(r.callbacks(), 1)

	raw := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\nff\r\n"
	_, _, err := p.Execute([]byte(raw))
	require.ErrorIs(t, err, ErrChunkTooLarge)
}

func methodMustName(t *testing.T, idx int) string {
	t.Helper()
	name, ok := MethodName(idx)
	require.True(t, ok)
	return name
}
