package parser

import "errors"

var (
	// ErrMalformed is returned by Execute when the inbound bytes violate
	// HTTP/1.x grammar. It never reflects a semantic decision (such as an
	// unsupported HTTP major version) — those are surfaced through
	// VersionRejected instead, per the design note on bridging callback
	// errors to typed flags.
	ErrMalformed = errors.New("malformed request")

	// ErrChunkTooLarge is returned when a chunk declares a size exceeding
	// the configured maxChunkSize.
	ErrChunkTooLarge = errors.New("chunk size exceeds configured maximum")
)
