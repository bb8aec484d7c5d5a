package parser

// methods is the fixed, ordered table of method tokens the parser
// recognizes, in the exact order spec.md §4.3 mandates: the numeric index
// of a method IS its position in this slice, and is what ParserCallbackBridge
// receives before translating it into the canonical uppercase token.
var methods = [...]string{
	"DELETE",
	"GET",
	"HEAD",
	"POST",
	"PUT",
	"CONNECT",
	"OPTIONS",
	"TRACE",
	"COPY",
	"LOCK",
	"MKCOL",
	"MOVE",
	"PROPFIND",
	"PROPPATCH",
	"SEARCH",
	"UNLOCK",
	"BIND",
	"REBIND",
	"UNBIND",
	"ACL",
	"REPORT",
	"MKACTIVITY",
	"CHECKOUT",
	"MERGE",
	"M-SEARCH",
	"NOTIFY",
	"SUBSCRIBE",
	"UNSUBSCRIBE",
	"PATCH",
	"PURGE",
	"MKCALENDAR",
	"LINK",
	"UNLINK",
}

// ConnectMethod is the index of CONNECT within the methods table, used by
// ParserCallbackBridge to detect CONNECT requests (spec.md §4.3).
const ConnectMethod = 5

// methodIndex maps every recognized method token to its position in
// methods. The corpus's smaller method sets get away with a 2-byte prefix
// lookup table; this one can't, since MKCOL/MKCALENDAR and the four
// UN-prefixed methods share prefixes, so a plain map is used instead.
var methodIndex = func() map[string]int {
	m := make(map[string]int, len(methods))
	for i, name := range methods {
		m[name] = i
	}
	return m
}()

// MethodName returns the canonical token for a method index produced by the
// parser, and true if the index is valid.
func MethodName(index int) (string, bool) {
	if index < 0 || index >= len(methods) {
		return "", false
	}

	return methods[index], true
}

// lookupMethod returns the table index for an exact method token, or -1 if
// unrecognized.
func lookupMethod(token string) int {
	if idx, ok := methodIndex[token]; ok {
		return idx
	}

	return -1
}
