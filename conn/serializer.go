package conn

import (
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/yourusername/httpconn/httperr"
	"github.com/yourusername/httpconn/internal/hexconv"
	"github.com/yourusername/httpconn/kv"
	"github.com/yourusername/httpconn/transport"
)

const (
	crlf    = "\r\n"
	colonsp = ": "
)

var (
	continueResponse = []byte("HTTP/1.1 100 Continue\r\n\r\n")
	endOfMessage     = []byte("0\r\n\r\n")
)

// WriteContinue implements spec.md §4.2's async_write_response_continue:
// the literal 100 Continue line, unconditionally. Does not affect is_open
// or KEEP_ALIVE.
func (c *Connection) WriteContinue() (int, error) {
	if err := c.applyWrite(opContinue); err != nil {
		return 0, err
	}

	return transport.WriteAll(c.transport, continueResponse)
}

// WriteResponse implements spec.md §4.2's async_write_response: a
// known-length-body response computed entirely from Message().Headers()
// and Message().Body(), following the implicit_content_length predicate
// and the synthetic connection: close rule bit-exactly.
func (c *Connection) WriteResponse(statusCode int, reason string) (int, error) {
	if err := c.applyWrite(opMessage); err != nil {
		return 0, err
	}

	headers := c.message.Headers()
	hasClose := containsCloseToken(headers)
	if hasClose {
		c.flags &^= flagKeepAlive
	}
	keepAlive := c.flags.has(flagKeepAlive)
	useSyntheticClose := !keepAlive && !hasClose
	implicit := c.implicitContentLength(statusCode)

	buf := c.outBuf[:0]
	buf = c.renderStatusLine(buf, statusCode, reason)

	if useSyntheticClose {
		buf = append(buf, "connection: close"...)
		buf = append(buf, crlf...)
	}

	if !implicit {
		buf = append(buf, "content-length: "...)
		buf = c.appendScratchInt(buf, int64(len(c.message.Body())))
		buf = append(buf, crlf...)
	}

	buf = appendHeaders(buf, headers)
	buf = append(buf, crlf...)

	if !implicit {
		buf = append(buf, c.message.Body()...)
	}

	c.outBuf = buf
	n, err := transport.WriteAll(c.transport, buf)
	c.finishWrite()

	return n, err
}

// WriteMetadata implements spec.md §4.2's async_write_response_metadata:
// entry into chunked response streaming. Requires HTTP/1.1; on an
// HTTP/1.0 connection the write-state transition never happens and the
// operation fails with ErrNativeStreamUnsupported, leaving the state
// exactly as it was.
func (c *Connection) WriteMetadata(statusCode int, reason string) (int, error) {
	if !c.flags.has(flagHTTP11) {
		return 0, httperr.ErrNativeStreamUnsupported
	}

	if err := c.applyWrite(opMetadata); err != nil {
		return 0, err
	}

	headers := c.message.Headers()
	hasClose := containsCloseToken(headers)
	if hasClose {
		c.flags &^= flagKeepAlive
	}
	keepAlive := c.flags.has(flagKeepAlive)
	useSyntheticClose := !keepAlive && !hasClose

	buf := c.outBuf[:0]
	buf = c.renderStatusLine(buf, statusCode, reason)

	if useSyntheticClose {
		buf = append(buf, "connection: close"...)
		buf = append(buf, crlf...)
	}

	buf = appendHeaders(buf, headers)
	buf = append(buf, "transfer-encoding: chunked"...)
	buf = append(buf, crlf...)
	buf = append(buf, crlf...)

	c.outBuf = buf
	return transport.WriteAll(c.transport, buf)
}

// Write implements spec.md §4.2's async_write, a single chunk of a
// streamed response body. A zero-length chunk completes successfully
// without touching the transport.
func (c *Connection) Write(chunk []byte) (int, error) {
	if err := c.applyWrite(opChunk); err != nil {
		return 0, err
	}

	if len(chunk) == 0 {
		return 0, nil
	}

	buf := c.outBuf[:0]
	buf = c.appendScratchHex(buf, uint64(len(chunk)))
	buf = append(buf, crlf...)
	buf = append(buf, chunk...)
	buf = append(buf, crlf...)

	c.outBuf = buf
	return transport.WriteAll(c.transport, buf)
}

// WriteTrailers implements spec.md §4.2's async_write_trailers, closing
// the chunked stream with a trailer section instead of a bare terminator.
func (c *Connection) WriteTrailers() (int, error) {
	if err := c.applyWrite(opTrailers); err != nil {
		return 0, err
	}

	buf := c.outBuf[:0]
	buf = append(buf, '0')
	buf = append(buf, crlf...)
	buf = appendHeaders(buf, c.message.Trailers())
	buf = append(buf, crlf...)

	c.outBuf = buf
	n, err := transport.WriteAll(c.transport, buf)
	c.finishWrite()

	return n, err
}

// WriteEndOfMessage implements spec.md §4.2's async_write_end_of_message:
// the bare chunked-stream terminator, for streams with no trailers.
func (c *Connection) WriteEndOfMessage() (int, error) {
	if err := c.applyWrite(opEnd); err != nil {
		return 0, err
	}

	n, err := transport.WriteAll(c.transport, endOfMessage)
	c.finishWrite()

	return n, err
}

// finishWrite applies the keep-alive lifecycle side effect spec.md §7
// requires of every write-path operation that completes a response or
// response stream: is_open follows KEEP_ALIVE, closing the transport when
// it comes out false.
func (c *Connection) finishWrite() {
	c.isOpen = c.flags.has(flagKeepAlive)
	if !c.isOpen {
		_ = c.transport.Close()
	}
}

func (c *Connection) renderStatusLine(buf []byte, statusCode int, reason string) []byte {
	if c.flags.has(flagHTTP11) {
		buf = append(buf, "HTTP/1.1 "...)
	} else {
		buf = append(buf, "HTTP/1.0 "...)
	}

	buf = c.appendScratchInt(buf, int64(statusCode))
	buf = append(buf, ' ')
	buf = append(buf, reason...)
	buf = append(buf, crlf...)

	return buf
}

// implicitContentLength implements spec.md §4.2 step 4 and §9's directive
// to centralize this predicate in one helper rather than reinventing it
// per response phase.
func (c *Connection) implicitContentLength(statusCode int) bool {
	if c.message.Headers().Has("content-length") {
		return true
	}
	if statusCode/100 == 1 {
		return true
	}
	if statusCode == 204 {
		return true
	}
	if c.connectRequest && statusCode/100 == 2 {
		return true
	}

	return false
}

// appendScratchInt and appendScratchHex both format through the
// connection-scoped scratch buffer before splicing into buf, implementing
// spec.md §4.2's scratch-buffer-reuse note: the decimal status/
// content-length prefix and the chunk-size hex text share one small
// reused buffer, safe because responses are never pipelined (spec.md §5).
func (c *Connection) appendScratchInt(dst []byte, n int64) []byte {
	c.scratch = strconv.AppendInt(c.scratch[:0], n, 10)
	return append(dst, c.scratch...)
}

func (c *Connection) appendScratchHex(dst []byte, n uint64) []byte {
	c.scratch = hexconv.AppendUint(c.scratch[:0], n)
	return append(dst, c.scratch...)
}

func appendHeaders(buf []byte, h *kv.Storage) []byte {
	for _, pair := range h.Expose() {
		buf = append(buf, pair.Key...)
		buf = append(buf, colonsp...)
		buf = append(buf, pair.Value...)
		buf = append(buf, crlf...)
	}

	return buf
}

// containsCloseToken implements spec.md §4.2 step 1: true iff any value
// stored under the case-insensitive connection header contains the token
// close within a comma-separated list.
func containsCloseToken(h *kv.Storage) bool {
	for _, v := range h.Values("connection") {
		if containsToken(v, "close") {
			return true
		}
	}

	return false
}

func containsToken(value, token string) bool {
	for _, part := range strings.Split(value, ",") {
		if strcomp.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}

	return false
}
