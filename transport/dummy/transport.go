// Package dummy provides in-memory transport.Transport test doubles, the
// way the teacher's transport/dummy package provides Client doubles for
// http1 parser and server tests: a scripted reader plus a journaling
// writer, with no real socket underneath.
package dummy

import (
	"io"

	"github.com/yourusername/httpconn/transport"
)

var _ transport.Transport = new(Transport)

// Transport replays a fixed sequence of reads and journals every write,
// grounded on the teacher's dummy.Client (NewMockClient/Read/Written):
// generalized from the teacher's whole-slice Read() to the narrower
// ReadSome(p []byte) contract the engine's transport.Transport needs.
type Transport struct {
	reads      [][]byte
	pointer    int
	loop       bool
	closed     bool
	journaling bool
	written    []byte
}

// New builds a Transport that yields reads in order, once each, then
// returns io.EOF.
func New(reads ...[]byte) *Transport {
	return &Transport{reads: reads, journaling: true}
}

// Loop makes the scripted reads repeat indefinitely instead of EOF-ing
// once exhausted, for benchmarks and keep-alive loop tests.
func (t *Transport) Loop() *Transport {
	t.loop = true
	return t
}

// Journaling toggles whether Write appends to the captured buffer Written
// returns. Tests that only care about read-side behavior can disable it.
func (t *Transport) Journaling(flag bool) *Transport {
	t.journaling = flag
	return t
}

func (t *Transport) IsOpen() bool {
	return !t.closed
}

func (t *Transport) Close() error {
	t.closed = true
	return nil
}

func (t *Transport) ReadSome(p []byte) (int, error) {
	if t.closed {
		return 0, io.EOF
	}

	if t.pointer >= len(t.reads) {
		if t.loop {
			t.pointer = 0
		} else {
			t.closed = true
			return 0, io.EOF
		}
	}

	if len(t.reads) == 0 {
		t.closed = true
		return 0, io.EOF
	}

	chunk := t.reads[t.pointer]
	t.pointer++

	n := copy(p, chunk)
	return n, nil
}

func (t *Transport) Write(p []byte) (int, error) {
	if t.journaling {
		t.written = append(t.written, p...)
	}

	return len(p), nil
}

// Written returns everything captured by Write so far. Panics if
// journaling was disabled, the same guard the teacher's dummy.Client
// applies to catch tests that forgot they turned it off.
func (t *Transport) Written() []byte {
	if !t.journaling {
		panic("dummy transport: cannot access written data: journaling is disabled")
	}

	return t.written
}
