package conn

import (
	"fmt"

	"github.com/yourusername/httpconn/httperr"
	"github.com/yourusername/httpconn/transport"
)

// versionRejectedResponse is the canned response spec.md §4.4 mandates be
// written verbatim when a request declares an HTTP major version other
// than 1, emitted outside any parser callback per the version-rejection
// design note in spec.md §9.
var versionRejectedResponse = []byte(
	"HTTP/1.1 505 HTTP Version Not Supported\r\n" +
		"Content-Length: 48\r\n" +
		"Connection: close\r\n\r\n" +
		"This server only supports HTTP/1.0 and HTTP/1.1\n",
)

// milestone names the three read targets ReadDriver's public entry points
// drive toward (spec.md §4.4's GLOSSARY entry).
type milestone uint8

const (
	milestoneReady milestone = iota
	milestoneData
	milestoneEnd
)

func (c *Connection) reached(m milestone) bool {
	switch m {
	case milestoneReady:
		return c.flags.has(flagREADY)
	case milestoneData:
		return c.flags.has(flagDATA) || c.flags.has(flagEND)
	case milestoneEnd:
		return c.flags.has(flagEND)
	default:
		return false
	}
}

func (c *Connection) clearMilestone(m milestone) {
	switch m {
	case milestoneReady:
		c.flags &^= flagREADY
	case milestoneData:
		c.flags &^= flagREADY | flagDATA
	case milestoneEnd:
		c.flags &^= flagREADY | flagDATA | flagEND
	}
}

// ReadRequest implements spec.md §4.4's async_read_request: parses up to
// and including the request headers. Requires read_state == empty.
// Clears the previously parsed method/path (done as a side effect of the
// parser's message-begin event, see bridge.onMessageBegin) and forces
// write_state to finished, so only a completed headers parse re-enables
// writing a response.
func (c *Connection) ReadRequest() error {
	if c.readState != rsEmpty {
		return httperr.ErrOutOfOrder
	}

	c.writeState = wsFinished
	return c.drive(milestoneReady)
}

// ReadSome implements spec.md §4.4's async_read_some: delivers the next
// body fragment (or the final one) to the message. Requires
// read_state == message_ready.
func (c *Connection) ReadSome() error {
	if c.readState != rsMessageReady {
		return httperr.ErrOutOfOrder
	}

	return c.drive(milestoneData)
}

// ReadTrailers implements spec.md §4.4's async_read_trailers: consumes any
// chunked-transfer-encoding trailer section through to message-complete.
// Requires read_state == body_ready.
func (c *Connection) ReadTrailers() error {
	if c.readState != rsBodyReady {
		return httperr.ErrOutOfOrder
	}

	return c.drive(milestoneEnd)
}

// drive is the read loop shared by all three entry points (spec.md §4.4
// steps 1–7): fill the input buffer, feed the parser, compact unconsumed
// bytes, and return once the target milestone is reached, the buffer is
// exhausted, or a transport/parsing error occurs.
func (c *Connection) drive(target milestone) error {
	first := true

	for {
		if !(first && c.used > 0) {
			n, err := c.transport.ReadSome(c.inputBuffer[c.used:])
			if err != nil {
				c.resetOnTransportError()
				return fmt.Errorf("%w: %w", httperr.ErrCloseConnection, err)
			}
			c.used += n
		}
		first = false

		done, rest, perr := c.parser.Execute(c.inputBuffer[:c.used])
		nparsed := c.used - len(rest)

		if perr != nil {
			c.used = 0
			c.message.Reset()
			c.readState = rsEmpty
			c.writeState = wsEmpty
			c.parser.Reset()
			return httperr.ErrParsing
		}

		if done && c.parser.VersionRejected {
			c.used = 0
			c.message.Reset()
			_, _ = transport.WriteAll(c.transport, versionRejectedResponse)
			c.readState = rsEmpty
			c.writeState = wsEmpty
			c.parser.Reset()
			return httperr.ErrParsing
		}

		copy(c.inputBuffer, c.inputBuffer[nparsed:c.used])
		c.used -= nparsed

		if done {
			// The message-complete "stop" sentinel (spec.md §9's open
			// question): not an error, just reinitialize for the next
			// request and fall through to the milestone check.
			c.parser.Reset()
		}

		if c.reached(target) {
			c.clearMilestone(target)
			return nil
		}

		if c.used == len(c.inputBuffer) {
			return httperr.ErrBufferExhausted
		}
	}
}

func (c *Connection) resetOnTransportError() {
	c.readState = rsEmpty
	c.writeState = wsEmpty
	c.used = 0
	c.parser.Reset()
}
