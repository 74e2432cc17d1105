package routec

import "fmt"

// SyntaxError reports malformed route text: an unknown method keyword, an
// empty or invalid capture/wildcard name, a duplicate name within one path,
// or an empty or duplicate query-name list.
//
// Parsing is all-or-nothing; no partial route is ever returned alongside a
// SyntaxError.
type SyntaxError struct {
	// Msg is the human-readable description.
	Msg string

	// Text is the offending substring, when one can be identified.
	Text string

	// Offset is the byte offset of the offending text within the parsed
	// route text.
	Offset int
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func syntaxErrorf(offset int, text, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Text:   text,
		Offset: offset,
	}
}

// BindKind identifies which section of the route a binding failure came from.
type BindKind int

const (
	BindPath BindKind = iota
	BindQuery
)

// String returns "path" or "query".
func (k BindKind) String() string {
	switch k {
	case BindPath:
		return "path"
	case BindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// BindingError reports a capture, wildcard, or query name with no
// corresponding handler parameter. The failure aborts the entire compilation
// for the route; there is no partial CompiledRoute.
type BindingError struct {
	// Kind is the route section the name was declared in.
	Kind BindKind

	// Name is the unresolved identifier.
	Name string

	// Offset is the byte offset of the name within the route literal.
	Offset int
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s parameter `%s` not found in function arguments", e.Kind, e.Name)
}
