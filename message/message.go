// Package message provides the default implementation of the Message
// concept spec.md §6 requires of application-supplied values: a headers
// multimap, an appendable body, and a trailers multimap of the same shape
// as headers. Applications embedding the engine may supply their own type
// instead, as long as it satisfies conn.Message.
package message

import "github.com/yourusername/httpconn/kv"

// Message is the engine's own Message implementation. It is reset in place
// between requests (see Reset) rather than reallocated, mirroring the
// teacher's per-connection reuse of *http.Request across the keep-alive
// lifecycle.
type Message struct {
	headers  *kv.Storage
	trailers *kv.Storage
	body     []byte
}

// New returns an empty Message ready for use.
func New() *Message {
	return &Message{
		headers:  kv.New(),
		trailers: kv.New(),
	}
}

// Headers returns the request/response header multimap.
func (m *Message) Headers() *kv.Storage {
	return m.headers
}

// Trailers returns the trailer multimap, populated only once the body has
// been fully consumed (spec.md §4.3, message-complete).
func (m *Message) Trailers() *kv.Storage {
	return m.trailers
}

// Body returns the accumulated body bytes read so far.
func (m *Message) Body() []byte {
	return m.body
}

// AppendBody appends bytes to the body, implementing the appendable byte
// sequence spec.md §6 requires (end-insertion of a byte range).
func (m *Message) AppendBody(b []byte) {
	m.body = append(m.body, b...)
}

// SetBody replaces the body outright — used by the application when
// preparing an outbound response rather than accumulating an inbound one.
func (m *Message) SetBody(b []byte) {
	m.body = b
}

// Reset clears headers, trailers and body, implementing spec.md §4.3's
// message-begin behavior (clear the caller's message).
func (m *Message) Reset() {
	m.headers.Clear()
	m.trailers.Clear()
	m.body = m.body[:0]
}
