// Package conn implements the embeddable HTTP/1.x connection engine
// (spec.md §2): the five collaborating concerns — WriteStateMachine,
// ResponseSerializer, ParserCallbackBridge, ReadDriver, ConnectionCore —
// composed into a single Connection type driven one goroutine per
// connection, blocking on the transport at each suspension point, the way
// the teacher's internal/server/http goroutine-per-connection loop drives
// internal/transport/http1's codec.
package conn

import (
	"github.com/yourusername/httpconn/httperr"
	"github.com/yourusername/httpconn/kv"
	"github.com/yourusername/httpconn/parser"
	"github.com/yourusername/httpconn/transport"
)

// Message is the capability set spec.md §6 requires of application-supplied
// message values: a headers multimap, an appendable body, and a trailers
// multimap of the same shape as headers. message.Message is the engine's
// own default implementation; applications may supply their own type
// satisfying this interface instead.
type Message interface {
	Headers() *kv.Storage
	Trailers() *kv.Storage
	Body() []byte
	AppendBody([]byte)
	SetBody([]byte)
	Reset()
}

// headerScratch is the parser callback bridge's (name, value) scratchpad
// for the header currently being accumulated (spec.md §3's last_header).
type headerScratch struct {
	name, value []byte
}

func (h *headerScratch) reset() {
	h.name = h.name[:0]
	h.value = h.value[:0]
}

// Connection is the engine's single exported type: one per transport,
// driving exactly one request/response exchange at a time.
//
// Connection is NOT safe for concurrent use. Its scratch buffer and input
// buffer are reused across the keep-alive lifetime of the connection on
// the assumption that only one response is ever in flight at once (spec.md
// §4.2, §5) — invoking two overlapping operations on the same Connection
// from different goroutines corrupts both.
//
// Response headers and body are staged on the same Message value the
// preceding request was parsed into: after reading a request, populate
// Message().Headers() / SetBody with the response before calling
// WriteResponse (or WriteMetadata for a streamed response). This mirrors
// spec.md §4.2's repeated references to "the message's header container"
// rather than a second, response-specific type.
type Connection struct {
	transport transport.Transport

	inputBuffer []byte
	used        int

	parser *parser.Parser

	isOpen bool

	readState  readState
	writeState writeState
	flags      flags

	connectRequest bool
	useTrailers    bool
	lastHeader     headerScratch

	scratch []byte
	outBuf  []byte

	message Message
	method  string
	path    []byte

	bridge bridge
}

// New constructs a Connection over t, using buf as the fixed-capacity input
// buffer (must be non-empty — spec.md §4.5's synchronous construction-time
// rejection) and msg as the destination for parsed requests and the
// staging area for outbound responses. maxChunkSize bounds a single
// chunked-transfer-encoding chunk (config.Body.MaxChunkSize; 0 = unbounded).
func New(t transport.Transport, buf []byte, msg Message, maxChunkSize uint32) (*Connection, error) {
	if len(buf) == 0 {
		return nil, httperr.ErrInvalidBuffer
	}

	c := &Connection{
		transport:   t,
		inputBuffer: buf,
		message:     msg,
		writeState:  wsFinished,
	}
	c.bridge = bridge{conn: c}
	c.parser = parser.New(c.bridge.callbacks(), maxChunkSize)

	return c, nil
}

// Open arms the Connection for use. Until Open is called, IsOpen reports
// false (spec.md §3's lifecycle: "open() arms it").
func (c *Connection) Open() {
	c.isOpen = true
}

// IsOpen reports whether the engine still considers the connection usable.
// It becomes false once a response completes with keep-alive unset, after
// Close, or once the transport itself reports that it is no longer open. A
// failed transport read does not change it by itself.
func (c *Connection) IsOpen() bool {
	return c.isOpen && c.transport.IsOpen()
}

// Close tears down the underlying transport and marks the connection
// closed, idempotently.
func (c *Connection) Close() error {
	if !c.isOpen {
		return nil
	}

	c.isOpen = false
	return c.transport.Close()
}

// Transport exposes the wrapped transport ("next layer"), for owners who
// need to perform out-of-band operations (e.g. a TLS handshake) on it
// before the engine ever reads from it (spec.md §4.5).
func (c *Connection) Transport() transport.Transport {
	return c.transport
}

// Message returns the destination the in-flight (or most recently
// completed) request was parsed into, and the staging area for the next
// response.
func (c *Connection) Message() Message {
	return c.message
}

// Method returns the canonical uppercase method token of the most recently
// parsed request, valid from headers-complete onward.
func (c *Connection) Method() string {
	return c.method
}

// Path returns the raw request-target bytes of the most recently parsed
// request, valid from headers-complete onward. The returned slice is
// reused across requests; copy it if it must outlive the next read.
func (c *Connection) Path() []byte {
	return c.path
}

// ReadState reports the read-side state (spec.md §3).
func (c *Connection) ReadState() string {
	switch c.readState {
	case rsMessageReady:
		return "message_ready"
	case rsBodyReady:
		return "body_ready"
	default:
		return "empty"
	}
}

// IsUpgrade reports whether the most recently parsed request asked to
// switch protocols (flags.UPGRADE). The engine records this but never
// implements the switch itself (spec.md's GLOSSARY entry for Upgrade).
func (c *Connection) IsUpgrade() bool {
	return c.flags.has(flagUpgrade)
}

// IsHTTP11 reports flags.HTTP_1_1 for the in-flight exchange — the same
// query write_response_native_stream exposes in spec.md §4.5.
func (c *Connection) IsHTTP11() bool {
	return c.flags.has(flagHTTP11)
}

// IsConnect reports whether the in-flight request's method is CONNECT
// (spec.md §3's connect_request).
func (c *Connection) IsConnect() bool {
	return c.connectRequest
}
