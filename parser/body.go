package parser

import (
	"bytes"

	"github.com/yourusername/httpconn/internal/hexconv"
)

// execBodyPlain drains a Content-Length-framed body, grounded on the
// teacher's min()-based chunkBody slice arithmetic in
// internal/protocol/http1/chunked.go, generalized to a flat byte counter
// since there is no chunk framing to re-enter between fragments.
func (p *Parser) execBodyPlain(data []byte) (bool, []byte, error) {
	n := int64(len(data))
	if n > p.remaining {
		n = p.remaining
	}

	chunk := data[:n]
	p.remaining -= n
	final := p.remaining == 0

	if len(chunk) > 0 && p.cb.OnBody != nil {
		p.cb.OnBody(chunk, final)
	}

	if !final {
		p.state = sBodyPlain
		return false, nil, nil
	}

	if p.cb.OnMessageComplete != nil {
		p.cb.OnMessageComplete()
	}
	return true, data[n:], nil
}

// execChunk decodes a chunked-transfer-encoding body, grounded directly on
// the teacher's internal/protocol/http1/chunked.go goto-driven chunk
// framer. It diverges from the teacher in one respect: where the teacher
// discards trailer field lines outright (chunkTrailerFieldLine just scans
// to the next '\n' and loops), this reenters execHeaders once the
// terminating zero-size chunk is seen, so trailer fields flow through the
// same OnHeaderField/OnHeaderValue callbacks request headers use.
func (p *Parser) execChunk(data []byte) (bool, []byte, error) {
	switch p.state {
	case sChunkExt:
		goto chunkExt
	case sChunkSizeCR:
		goto chunkSizeCR
	case sChunkData:
		goto chunkData
	case sChunkDataDone:
		goto chunkDataDone
	case sChunkDataCRLF:
		goto chunkDataCRLF
	}

chunkSize:
	for i := 0; i < len(data); i++ {
		switch c := data[i]; c {
		case '\r':
			data = data[i+1:]
			goto chunkSizeCR
		case '\n':
			data = data[i:]
			goto chunkSizeCR
		case ';':
			data = data[i+1:]
			goto chunkExt
		default:
			v := hexconv.Halfbyte[c]
			if v == 0xFF {
				return true, nil, ErrMalformed
			}
			p.chunkLen = (p.chunkLen << 4) | uint64(v)
			if p.maxChunkSize > 0 && p.chunkLen > uint64(p.maxChunkSize) {
				return true, nil, ErrChunkTooLarge
			}
		}
	}

	p.state = sChunkSize
	return false, nil, nil

chunkExt:
	{
		// Chunk extensions are recognized but ignored, same as the teacher.
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			p.state = sChunkExt
			return false, nil, nil
		}
		data = data[lf+1:]
		goto chunkSizeDone
	}

chunkSizeCR:
	if len(data) == 0 {
		p.state = sChunkSizeCR
		return false, nil, nil
	}
	if data[0] != '\n' {
		return true, nil, ErrMalformed
	}
	data = data[1:]
	goto chunkSizeDone

chunkSizeDone:
	if p.chunkLen == 0 {
		if p.cb.OnBody != nil {
			p.cb.OnBody(nil, true)
		}
		p.trailer = true
		p.curName = p.curName[:0]
		p.state = sHeaderKey
		return p.execHeaders(data)
	}
	p.state = sChunkData
	goto chunkData

chunkData:
	{
		n := p.chunkLen
		if uint64(len(data)) < n {
			n = uint64(len(data))
		}

		chunk := data[:n]
		p.chunkLen -= n
		data = data[n:]

		if len(chunk) > 0 && p.cb.OnBody != nil {
			p.cb.OnBody(chunk, false)
		}

		if p.chunkLen != 0 {
			p.state = sChunkData
			return false, nil, nil
		}
		goto chunkDataDone
	}

chunkDataDone:
	if len(data) == 0 {
		p.state = sChunkDataDone
		return false, nil, nil
	}

	switch data[0] {
	case '\r':
		data = data[1:]
		goto chunkDataCRLF
	case '\n':
		data = data[1:]
		goto chunkSize
	default:
		return true, nil, ErrMalformed
	}

chunkDataCRLF:
	if len(data) == 0 {
		p.state = sChunkDataCRLF
		return false, nil, nil
	}
	if data[0] != '\n' {
		return true, nil, ErrMalformed
	}
	data = data[1:]
	goto chunkSize
}
