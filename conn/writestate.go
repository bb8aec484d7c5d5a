package conn

import "github.com/yourusername/httpconn/httperr"

// writeOp names the operation being attempted against the write-state
// machine, one per ResponseSerializer entry point (spec.md §4.1).
type writeOp uint8

const (
	opMessage writeOp = iota
	opContinue
	opMetadata
	opChunk
	opTrailers
	opEnd
)

// writeTransition implements the table in spec.md §4.1 exactly: from each
// state, only the listed operations are legal, and every legal transition
// is monotone (no state is ever revisited once left, except chunked_body's
// self-loop for repeated chunk writes).
func writeTransition(cur writeState, op writeOp) (next writeState, ok bool) {
	switch cur {
	case wsEmpty:
		switch op {
		case opMessage:
			return wsMessageIssued, true
		case opContinue:
			return wsContinueIssued, true
		case opMetadata:
			return wsMetadataIssued, true
		}
	case wsContinueIssued:
		switch op {
		case opMessage:
			return wsMessageIssued, true
		case opMetadata:
			return wsMetadataIssued, true
		}
	case wsMetadataIssued, wsChunkedBody:
		switch op {
		case opChunk:
			return wsChunkedBody, true
		case opTrailers:
			return wsTrailersIssued, true
		case opEnd:
			return wsFinished, true
		}
	}

	return cur, false
}

// applyWrite validates op against the current write state and, if legal,
// commits the transition. An illegal operation never touches the
// transport (spec.md §4.1: "does not touch the transport").
func (c *Connection) applyWrite(op writeOp) error {
	next, ok := writeTransition(c.writeState, op)
	if !ok {
		return httperr.ErrOutOfOrder
	}

	c.writeState = next
	return nil
}
