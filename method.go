package routec

// Method is an HTTP method recognized in route text.
//
// The set is closed: route text is decoded against a single table, and every
// Method maps one-to-one to the lower-case routing-call name used by generated
// registration code.
type Method int

const (
	MethodGet Method = iota
	MethodHead
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodOptions
	MethodTrace
)

// methodTable is the single decode table for method keywords. Each entry pairs
// the route-text keyword with its routing-call name.
var methodTable = [...]struct {
	keyword string
	routing string
}{
	MethodGet:     {"GET", "get"},
	MethodHead:    {"HEAD", "head"},
	MethodPost:    {"POST", "post"},
	MethodPut:     {"PUT", "put"},
	MethodPatch:   {"PATCH", "patch"},
	MethodDelete:  {"DELETE", "delete"},
	MethodOptions: {"OPTIONS", "options"},
	MethodTrace:   {"TRACE", "trace"},
}

// ParseMethod decodes a method keyword as it appears in route text.
func ParseMethod(keyword string) (Method, bool) {
	for m, e := range methodTable {
		if e.keyword == keyword {
			return Method(m), true
		}
	}
	return 0, false
}

// String returns the route-text keyword, e.g. "GET".
func (m Method) String() string {
	if int(m) < 0 || int(m) >= len(methodTable) {
		return "invalid"
	}
	return methodTable[m].keyword
}

// RoutingName returns the canonical lower-case routing-call name, e.g. "get".
func (m Method) RoutingName() string {
	if int(m) < 0 || int(m) >= len(methodTable) {
		return "invalid"
	}
	return methodTable[m].routing
}
