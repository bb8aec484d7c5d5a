package parser

// Callbacks is the event set the incremental parser drives, matching the
// contract spec.md §1 assumes of the grammar parser it treats as an
// external collaborator: message-begin, url, header-field, header-value,
// headers-complete, body and message-complete. Every field is optional;
// a nil callback is simply not invoked.
//
// Fragment callbacks (OnURL, OnHeaderField, OnHeaderValue, OnBody) may be
// invoked any number of times for a single logical token — Execute hands
// over whatever contiguous run it scanned before running out of input or
// hitting a delimiter. Callers accumulate fragments themselves; the parser
// does not reassemble a token before handing it to a callback.
type Callbacks struct {
	OnMessageBegin    func()
	OnURL             func(fragment []byte)
	OnHeaderField     func(fragment []byte)
	OnHeaderValue     func(fragment []byte)
	OnHeadersComplete func()
	OnBody            func(fragment []byte, final bool)
	OnMessageComplete func()
}
