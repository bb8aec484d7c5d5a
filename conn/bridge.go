package conn

import "github.com/yourusername/httpconn/parser"

// bridge implements spec.md §4.3's ParserCallbackBridge: it translates
// parser.Callbacks events into mutations of the owning Connection's state
// and message, the same role the original Boost.Http socket's
// on_header_field/on_headers_complete/etc. handlers play over a typed
// visitor instead of a C-style void* (spec.md §9's "callback-oriented
// parser bridged to typed messages").
type bridge struct {
	conn *Connection
}

func (b *bridge) callbacks() parser.Callbacks {
	return parser.Callbacks{
		OnMessageBegin:    b.onMessageBegin,
		OnURL:             b.onURL,
		OnHeaderField:     b.onHeaderField,
		OnHeaderValue:     b.onHeaderValue,
		OnHeadersComplete: b.onHeadersComplete,
		OnBody:            b.onBody,
		OnMessageComplete: b.onMessageComplete,
	}
}

// http11 reports the in-flight request's declared version directly from
// the parser, rather than from Connection.flags — the HTTP/1.0
// suppression rule (suppressedOnHTTP10) must be applied to headers
// flushed mid-stream, before headers-complete ever sets flags.HTTP_1_1.
func (b *bridge) http11() bool {
	p := b.conn.parser
	return p.HTTPMajor == 1 && p.HTTPMinor != 0
}

func (b *bridge) onMessageBegin() {
	c := b.conn
	c.flags = 0
	c.useTrailers = false
	c.connectRequest = false
	c.method = ""
	c.path = c.path[:0]
	c.lastHeader.reset()
	c.message.Reset()
}

func (b *bridge) onURL(fragment []byte) {
	b.conn.path = append(b.conn.path, fragment...)
}

// onHeaderField implements spec.md §4.3's header-field event. Whether this
// fragment continues the name currently being accumulated or starts a new
// header is decided by whether last_header.value is non-empty yet — the
// original source's own heuristic, preserved exactly including its
// known quirk with empty-valued headers (see the Open Question on
// preserving idiosyncratic-but-consistent behavior in spec.md §9).
func (b *bridge) onHeaderField(fragment []byte) {
	lh := &b.conn.lastHeader

	if len(lh.value) > 0 {
		b.flushPendingHeader()
		lh.value = lh.value[:0]
		lh.name = appendLower(lh.name[:0], fragment)
		return
	}

	lh.name = appendLower(lh.name, fragment)
}

func (b *bridge) onHeaderValue(fragment []byte) {
	b.conn.lastHeader.value = append(b.conn.lastHeader.value, fragment...)
}

func (b *bridge) onHeadersComplete() {
	c := b.conn
	p := c.parser

	if name, ok := parser.MethodName(p.Method); ok {
		c.method = name
	}
	c.connectRequest = p.Method == parser.ConnectMethod

	if p.HTTPMajor != 1 {
		// ReadDriver interprets parser.VersionRejected and issues the
		// canned 505 response; nothing below matters once that happens.
		return
	}

	if p.HTTPMinor != 0 {
		c.flags |= flagHTTP11
	}

	b.flushPendingHeader()
	c.lastHeader.reset()

	c.useTrailers = true
	c.readState = rsMessageReady
	c.flags |= flagREADY
	c.writeState = wsEmpty

	if c.message.Headers().Count("expect") > 1 {
		c.message.Headers().DeleteAll("expect")
	}

	if p.KeepAlive() {
		c.flags |= flagKeepAlive
	}
}

func (b *bridge) onBody(fragment []byte, final bool) {
	c := b.conn
	c.message.AppendBody(fragment)
	c.flags |= flagDATA
	if final {
		c.readState = rsBodyReady
	}
}

func (b *bridge) onMessageComplete() {
	c := b.conn

	b.flushPendingHeader()
	c.lastHeader.reset()

	c.readState = rsEmpty
	c.useTrailers = false
	c.flags |= flagEND

	if c.parser.Upgrade {
		c.flags |= flagUpgrade
	}
}

// flushPendingHeader commits last_header into the message's headers or
// trailers, right-trimming the value and applying the HTTP/1.0
// expect/upgrade suppression rule — the same predicate applied both here
// (mid-stream, via onHeaderField) and at headers-complete/message-complete
// (spec.md §9's open question on the suppression rule's two call sites).
func (b *bridge) flushPendingHeader() {
	c := b.conn
	lh := &c.lastHeader

	if len(lh.name) == 0 {
		return
	}

	name := string(lh.name)
	if suppressedOnHTTP10(name, b.http11()) {
		return
	}

	value := string(rtrimSPHT(lh.value))

	if c.useTrailers {
		c.message.Trailers().Add(name, value)
	} else {
		c.message.Headers().Add(name, value)
	}
}

// suppressedOnHTTP10 implements spec.md §9's open question: expect and
// upgrade headers are dropped entirely on HTTP/1.0, since neither feature
// exists below HTTP/1.1.
func suppressedOnHTTP10(name string, http11 bool) bool {
	if http11 {
		return false
	}

	return name == "expect" || name == "upgrade"
}

// appendLower appends src to dst with each appended byte lowercased,
// implementing spec.md §4.3's "lowercase the newly appended region".
func appendLower(dst, src []byte) []byte {
	for _, c := range src {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		dst = append(dst, c)
	}

	return dst
}

// rtrimSPHT right-trims spaces and horizontal tabs, the exact trim rule
// spec.md §4.3 and §8 require of header values.
func rtrimSPHT(b []byte) []byte {
	n := len(b)
	for n > 0 && (b[n-1] == ' ' || b[n-1] == '\t') {
		n--
	}

	return b[:n]
}
