// Package httperr defines the sentinel errors surfaced by the connection
// engine. Most of them are returned standalone; the one exception is
// ErrCloseConnection, which wraps the underlying transport error so
// callers can still recover it with errors.Unwrap while checking for the
// close condition with errors.Is.
package httperr

import "errors"

var (
	// ErrOutOfOrder is returned when a read or write operation is invoked
	// while the connection's read/write state machine forbids it. The
	// transport is left untouched.
	ErrOutOfOrder = errors.New("operation out of order")

	// ErrParsing is returned when the inbound bytes violate HTTP grammar,
	// or, after the canned 505 response has been written, when the request
	// declares an HTTP major version other than 1.
	ErrParsing = errors.New("parsing error")

	// ErrBufferExhausted is returned when the input buffer filled up
	// before the requested read milestone was reached. The connection is
	// not reset; the caller may retry with more buffer or close it.
	ErrBufferExhausted = errors.New("buffer exhausted")

	// ErrNativeStreamUnsupported is returned by WriteMetadata when the
	// connection is not HTTP/1.1, which cannot carry chunked responses.
	ErrNativeStreamUnsupported = errors.New("native stream unsupported")

	// ErrInvalidBuffer is returned synchronously by conn.New when handed
	// a zero-capacity input buffer.
	ErrInvalidBuffer = errors.New("input buffer must not be zero-sized")

	// ErrUnsupportedVersion names the condition behind the canned 505
	// response: the request's HTTP major version is not 1. The engine does
	// not return it; that path is reported as ErrParsing.
	ErrUnsupportedVersion = errors.New("unsupported HTTP major version")

	// ErrCloseConnection wraps a transport error returned from a read, to
	// signal that the connection is no longer usable and must be closed.
	// Check with errors.Is(err, httperr.ErrCloseConnection); the original
	// transport error is still reachable with errors.Unwrap.
	ErrCloseConnection = errors.New("connection must be closed")
)
