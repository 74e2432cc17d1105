package routec

import "go/ast"

// SegmentKind identifies the category of a path segment.
type SegmentKind int

const (
	KindStatic   SegmentKind = iota // literal, unparameterized text
	KindCapture                     // ":name", bound to one handler parameter
	KindWildcard                    // "*name", matches the rest of the path
)

// String returns the string representation of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case KindStatic:
		return "Static"
	case KindCapture:
		return "Capture"
	case KindWildcard:
		return "Wildcard"
	default:
		return "Unknown"
	}
}

// Segment is one "/"-delimited component of a route path.
// Segment order is significant and is preserved from parse through to the
// emitted descriptor views.
type Segment interface {
	// Kind returns the segment kind for type switching.
	Kind() SegmentKind

	// Ensure only types in this package can implement Segment.
	sealed()
}

// Binding is a resolved (identifier, type) pair taken from the handler's
// parameter list.
type Binding struct {
	// Name is the handler parameter identifier.
	Name string

	// Type is the handler parameter's type expression.
	Type ast.Expr
}

// StaticSegment is a literal path component.
type StaticSegment struct {
	// Text is the literal segment text. Never empty.
	Text string
}

// Kind returns KindStatic.
func (s *StaticSegment) Kind() SegmentKind { return KindStatic }

func (s *StaticSegment) sealed() {}

// CaptureSegment is a named path component bound to exactly one handler
// parameter by position within the path.
type CaptureSegment struct {
	// Name is the capture name as written in route text.
	Name string

	// Binding is the resolved handler parameter.
	// Nil on a freshly parsed route; set by Compile.
	Binding *Binding

	// off is the byte offset of the name within the route literal.
	off int
}

// Kind returns KindCapture.
func (s *CaptureSegment) Kind() SegmentKind { return KindCapture }

func (s *CaptureSegment) sealed() {}

// WildcardSegment is a named path component matching the remainder of the
// path, bound to one handler parameter. It may only appear in final position.
type WildcardSegment struct {
	// Name is the wildcard name as written in route text.
	Name string

	// Binding is the resolved handler parameter.
	// Nil on a freshly parsed route; set by Compile.
	Binding *Binding

	// off is the byte offset of the name within the route literal.
	off int
}

// Kind returns KindWildcard.
func (s *WildcardSegment) Kind() SegmentKind { return KindWildcard }

func (s *WildcardSegment) sealed() {}
