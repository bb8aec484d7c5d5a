package transport

import (
	"net"
	"time"
)

// netTransport adapts a net.Conn to Transport, applying a read deadline the
// way the teacher's transport.Client does — grounded on that type's
// Read/Conn/Close shape, narrowed down to the surface the connection
// engine actually needs: the engine owns its own input buffer and
// pipelined-byte handling (conn.ReadDriver), so the teacher's
// Pushback/Pending pair has no counterpart here.
type netTransport struct {
	conn    net.Conn
	timeout time.Duration
	open    bool
}

// NewNet wraps conn as a Transport. A zero timeout disables read deadlines.
func NewNet(conn net.Conn, timeout time.Duration) Transport {
	return &netTransport{conn: conn, timeout: timeout, open: true}
}

func (t *netTransport) IsOpen() bool {
	return t.open
}

func (t *netTransport) Close() error {
	t.open = false
	return t.conn.Close()
}

func (t *netTransport) ReadSome(p []byte) (int, error) {
	if t.timeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
			return 0, err
		}
	}
	return t.conn.Read(p)
}

func (t *netTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}
