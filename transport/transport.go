// Package transport defines the byte-oriented duplex channel the engine is
// driven over (spec.md §2, §6): IsOpen/Close/ReadSome plus a free
// WriteAll helper for scatter/gather writes. net.Conn and in-memory
// adapters live alongside it (nettransport.go, dummy/).
package transport

// Transport is the duplex byte channel a Connection is built over.
type Transport interface {
	// IsOpen reports whether the transport is still usable.
	IsOpen() bool

	// Close tears down the transport. Idempotent.
	Close() error

	// ReadSome reads at least one byte into p, or returns an error.
	ReadSome(p []byte) (int, error)

	// Write writes p, returning a short count only on error.
	Write(p []byte) (int, error)
}

// WriteAll issues a full scatter/gather write across bufs (spec.md §6's
// "async_write_all ... issues a full write"), looping past short writes on
// the underlying transport.
func WriteAll(t Transport, bufs ...[]byte) (int, error) {
	total := 0
	for _, b := range bufs {
		for len(b) > 0 {
			n, err := t.Write(b)
			total += n
			if err != nil {
				return total, err
			}
			b = b[n:]
		}
	}
	return total, nil
}
