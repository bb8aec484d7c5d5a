package conn

// flags is the compact per-request milestone bitset spec.md §3 and §9
// describe: a few independent booleans that the read driver and the
// parser callback bridge communicate through instead of threading extra
// return values everywhere.
type flags uint8

const (
	flagHTTP11 flags = 1 << iota
	flagREADY
	flagDATA
	flagEND
	flagKeepAlive
	flagUpgrade
)

func (f flags) has(bit flags) bool {
	return f&bit != 0
}

// readState is the read-side half of the two coupled state machines
// spec.md §9 calls for (independent tagged enumerations for read_state and
// write_state).
type readState uint8

const (
	rsEmpty readState = iota
	rsMessageReady
	rsBodyReady
)

// writeState is the write-side half; its legal transitions are the table
// in spec.md §4.1, implemented in writestate.go.
type writeState uint8

const (
	wsEmpty writeState = iota
	wsContinueIssued
	wsMetadataIssued
	wsMessageIssued
	wsChunkedBody
	wsTrailersIssued
	wsFinished
)
