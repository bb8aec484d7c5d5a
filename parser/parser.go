// Package parser implements the incremental, callback-driven HTTP/1.x
// grammar parser that conn.ParserCallbackBridge sits on top of. It is a
// grammar parser only: it recognizes request-line and header-block syntax
// and drives Callbacks, but never touches the application's message value
// directly — that translation is the bridge's job, exactly as spec.md §1
// requires of the parser it treats as an external collaborator.
//
// A Parser is reused across the keep-alive lifetime of a connection; call
// Reset between requests.
package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

const (
	maxMethodLen = 16
	maxProtoLen  = 16
)

const (
	hNone = iota
	hContentLength
	hTransferEncoding
	hConnection
	hUpgrade
)

// Parser is a single-message-at-a-time incremental HTTP/1.x grammar
// scanner. It is not safe for concurrent use.
type Parser struct {
	cb           Callbacks
	maxChunkSize uint32

	state state
	began bool

	methodAcc []byte
	protoAcc  []byte

	curName      []byte
	curValue     []byte
	curKind      int
	wantValue    bool
	valueStarted bool
	trailer      bool

	// Method is the table index (see methods.go) of the request's method,
	// valid once the request line has been fully scanned.
	Method int

	// HTTPMajor and HTTPMinor are the request's declared version,
	// populated once the request line has been fully scanned.
	HTTPMajor, HTTPMinor int

	// Upgrade is set when an Upgrade header carrying a non-empty value was
	// present.
	Upgrade bool

	// VersionRejected is set by Execute, immediately after firing
	// OnHeadersComplete, when HTTPMajor != 1. Execute stops at that point
	// without attempting to parse a body — see the design note on
	// checking this flag right after Execute returns rather than
	// threading a callback error code through the parser.
	VersionRejected bool

	hasContentLength bool
	contentLength    int64
	chunked          bool

	connectionClose          bool
	connectionKeepAliveToken bool

	remaining int64
	chunkLen  uint64
}

// New returns a Parser bound to cb. maxChunkSize bounds an individual
// chunk's declared size (0 means unbounded) — see config.Body.MaxChunkSize.
func New(cb Callbacks, maxChunkSize uint32) *Parser {
	p := &Parser{cb: cb, maxChunkSize: maxChunkSize}
	p.Reset()
	return p
}

// Reset prepares the Parser for the next request. Callers must invoke it
// after Execute signals done (whether by message completion, version
// rejection, or error) before feeding it more bytes.
func (p *Parser) Reset() {
	p.state = sMethod
	p.began = false
	p.methodAcc = p.methodAcc[:0]
	p.protoAcc = p.protoAcc[:0]
	p.curName = p.curName[:0]
	p.curValue = p.curValue[:0]
	p.curKind = hNone
	p.wantValue = false
	p.valueStarted = false
	p.trailer = false
	p.Method = -1
	p.HTTPMajor, p.HTTPMinor = 0, 0
	p.Upgrade = false
	p.VersionRejected = false
	p.hasContentLength = false
	p.contentLength = 0
	p.chunked = false
	p.connectionClose = false
	p.connectionKeepAliveToken = false
	p.remaining = 0
	p.chunkLen = 0
}

// KeepAlive implements the should_keep_alive query spec.md §2 expects of
// the parser: HTTP/1.1 defaults to keep-alive, HTTP/1.0 requires an
// explicit Connection: keep-alive token, and an explicit Connection: close
// overrides either.
func (p *Parser) KeepAlive() bool {
	if p.connectionClose {
		return false
	}
	if p.HTTPMajor == 1 && p.HTTPMinor >= 1 {
		return true
	}
	return p.connectionKeepAliveToken
}

// Execute feeds data into the scanner. done reports whether a stop point
// was reached (message complete, version rejected, or a grammar error);
// rest is whatever suffix of data was left unconsumed at that point
// (possibly containing a pipelined next request). When done is false,
// every byte of data was consumed and Execute wants more.
func (p *Parser) Execute(data []byte) (done bool, rest []byte, err error) {
	if !p.began {
		if p.cb.OnMessageBegin != nil {
			p.cb.OnMessageBegin()
		}
		p.began = true
	}

	switch p.state {
	case sMethod, sURL, sProto:
		return p.execRequestLine(data)
	case sHeaderKey, sHeaderKeyCR, sHeaderValue:
		return p.execHeaders(data)
	case sBodyPlain:
		return p.execBodyPlain(data)
	case sChunkSize, sChunkExt, sChunkSizeCR, sChunkData, sChunkDataDone, sChunkDataCRLF:
		return p.execChunk(data)
	default:
		return true, nil, ErrMalformed
	}
}

func (p *Parser) execRequestLine(data []byte) (bool, []byte, error) {
	switch p.state {
	case sURL:
		goto url
	case sProto:
		goto proto
	}

method:
	for i := 0; i < len(data); i++ {
		if data[i] != ' ' {
			continue
		}

		var tok string
		if len(p.methodAcc) == 0 {
			tok = string(data[:i])
		} else {
			p.methodAcc = append(p.methodAcc, data[:i]...)
			tok = string(p.methodAcc)
		}

		idx := lookupMethod(tok)
		if idx < 0 {
			return true, nil, ErrMalformed
		}

		p.Method = idx
		p.methodAcc = p.methodAcc[:0]
		data = data[i+1:]
		goto url
	}

	p.methodAcc = append(p.methodAcc, data...)
	if len(p.methodAcc) > maxMethodLen {
		return true, nil, ErrMalformed
	}

	p.state = sMethod
	return false, nil, nil

url:
	{
		sp := bytes.IndexByte(data, ' ')
		if sp == -1 {
			if p.cb.OnURL != nil && len(data) > 0 {
				p.cb.OnURL(data)
			}
			p.state = sURL
			return false, nil, nil
		}

		if p.cb.OnURL != nil && sp > 0 {
			p.cb.OnURL(data[:sp])
		}

		data = data[sp+1:]
		goto proto
	}

proto:
	{
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if len(p.protoAcc)+len(data) > maxProtoLen {
				return true, nil, ErrMalformed
			}
			p.protoAcc = append(p.protoAcc, data...)
			p.state = sProto
			return false, nil, nil
		}

		var tok []byte
		if len(p.protoAcc) == 0 {
			tok = data[:lf]
		} else {
			p.protoAcc = append(p.protoAcc, data[:lf]...)
			tok = p.protoAcc
		}
		if len(tok) > 0 && tok[len(tok)-1] == '\r' {
			tok = tok[:len(tok)-1]
		}

		major, minor, ok := parseVersion(tok)
		if !ok {
			return true, nil, ErrMalformed
		}

		p.HTTPMajor, p.HTTPMinor = major, minor
		p.protoAcc = p.protoAcc[:0]
		p.curName = p.curName[:0]
		p.state = sHeaderKey
		return p.execHeaders(data[lf+1:])
	}
}

func parseVersion(b []byte) (major, minor int, ok bool) {
	if len(b) != 8 {
		return 0, 0, false
	}
	if string(b[:5]) != "HTTP/" {
		return 0, 0, false
	}
	if b[6] != '.' || b[5] < '0' || b[5] > '9' || b[7] < '0' || b[7] > '9' {
		return 0, 0, false
	}
	return int(b[5] - '0'), int(b[7] - '0'), true
}

func (p *Parser) execHeaders(data []byte) (bool, []byte, error) {
	switch p.state {
	case sHeaderKeyCR:
		goto headerKeyCR
	case sHeaderValue:
		goto headerValue
	}

headerKey:
	if len(data) == 0 {
		p.state = sHeaderKey
		return false, nil, nil
	}

	switch data[0] {
	case '\n':
		return p.finishHeaderSection(data[1:])
	case '\r':
		if len(data) == 1 {
			p.state = sHeaderKeyCR
			return false, nil, nil
		}
		if data[1] != '\n' {
			return true, nil, ErrMalformed
		}
		return p.finishHeaderSection(data[2:])
	}

	{
		colon := bytes.IndexByte(data, ':')
		if colon == -1 {
			if p.cb.OnHeaderField != nil {
				p.cb.OnHeaderField(data)
			}
			p.curName = append(p.curName, data...)
			p.state = sHeaderKey
			return false, nil, nil
		}

		if p.cb.OnHeaderField != nil {
			p.cb.OnHeaderField(data[:colon])
		}
		p.curName = append(p.curName, data[:colon]...)
		p.classifyHeaderName()
		data = data[colon+1:]
		p.valueStarted = false
		goto headerValue
	}

headerKeyCR:
	if len(data) == 0 {
		p.state = sHeaderKeyCR
		return false, nil, nil
	}
	if data[0] != '\n' {
		return true, nil, ErrMalformed
	}
	return p.finishHeaderSection(data[1:])

headerValue:
	if !p.valueStarted {
		for len(data) > 0 && (data[0] == ' ' || data[0] == '\t') {
			data = data[1:]
		}
		if len(data) == 0 {
			p.state = sHeaderValue
			return false, nil, nil
		}
		p.valueStarted = true
	}

	{
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if p.cb.OnHeaderValue != nil {
				p.cb.OnHeaderValue(data)
			}
			if p.wantValue {
				p.curValue = append(p.curValue, data...)
			}
			p.state = sHeaderValue
			return false, nil, nil
		}

		frag := data[:lf]
		if len(frag) > 0 && frag[len(frag)-1] == '\r' {
			frag = frag[:len(frag)-1]
		}
		if p.cb.OnHeaderValue != nil {
			p.cb.OnHeaderValue(frag)
		}
		if p.wantValue {
			p.curValue = append(p.curValue, frag...)
			p.finalizeFramingHeader()
		}

		p.curName = p.curName[:0]
		p.curValue = p.curValue[:0]
		p.wantValue = false
		data = data[lf+1:]
		p.state = sHeaderKey
		goto headerKey
	}
}

// finishHeaderSection is reached on the blank line ending either the main
// header block or, when p.trailer is set, a chunked message's trailer
// section — spec.md §4.3's headers-complete and message-complete events
// share this single grammar boundary.
func (p *Parser) finishHeaderSection(rest []byte) (bool, []byte, error) {
	if p.trailer {
		if p.cb.OnMessageComplete != nil {
			p.cb.OnMessageComplete()
		}
		return true, rest, nil
	}

	if p.cb.OnHeadersComplete != nil {
		p.cb.OnHeadersComplete()
	}

	if p.HTTPMajor != 1 {
		p.VersionRejected = true
		return true, rest, nil
	}

	if p.chunked {
		p.state = sChunkSize
		return p.execChunk(rest)
	}

	if p.hasContentLength && p.contentLength > 0 {
		p.remaining = p.contentLength
		p.state = sBodyPlain
		return p.execBodyPlain(rest)
	}

	if p.cb.OnMessageComplete != nil {
		p.cb.OnMessageComplete()
	}
	return true, rest, nil
}

func (p *Parser) classifyHeaderName() {
	p.curKind = hNone
	p.wantValue = false

	switch len(p.curName) {
	case 7:
		if strcomp.EqualFold(string(p.curName), "upgrade") {
			p.curKind, p.wantValue = hUpgrade, true
		}
	case 10:
		if strcomp.EqualFold(string(p.curName), "connection") {
			p.curKind, p.wantValue = hConnection, true
		}
	case 14:
		if strcomp.EqualFold(string(p.curName), "content-length") {
			p.curKind, p.wantValue = hContentLength, true
		}
	case 17:
		if strcomp.EqualFold(string(p.curName), "transfer-encoding") {
			p.curKind, p.wantValue = hTransferEncoding, true
		}
	}
}

func (p *Parser) finalizeFramingHeader() {
	value := strings.TrimSpace(string(p.curValue))

	switch p.curKind {
	case hContentLength:
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil && n >= 0 {
			p.hasContentLength = true
			p.contentLength = n
		}
	case hTransferEncoding:
		if containsToken(value, "chunked") {
			p.chunked = true
		}
	case hConnection:
		if containsToken(value, "close") {
			p.connectionClose = true
		}
		if containsToken(value, "keep-alive") {
			p.connectionKeepAliveToken = true
		}
	case hUpgrade:
		if len(value) > 0 {
			p.Upgrade = true
		}
	}
}

func containsToken(value, token string) bool {
	for _, part := range strings.Split(value, ",") {
		if strcomp.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}
