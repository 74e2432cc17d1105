package routec

import (
	"fmt"
	"go/types"
	"strings"
)

// Path returns the canonical path string: static segments emit their literal
// text, captures emit {name}, wildcards emit {*name}, and every segment
// contributes exactly one leading slash. A route with zero segments yields
// "/".
func (c *CompiledRoute) Path() string {
	if len(c.Segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range c.Segments {
		b.WriteByte('/')
		switch s := seg.(type) {
		case *StaticSegment:
			b.WriteString(s.Text)
		case *CaptureSegment:
			b.WriteByte('{')
			b.WriteString(s.Name)
			b.WriteByte('}')
		case *WildcardSegment:
			b.WriteString("{*")
			b.WriteString(s.Name)
			b.WriteByte('}')
		}
	}
	return b.String()
}

// PathBindings returns the resolved (identifier, type) pairs of every capture
// and wildcard segment, in path order. Together they define the single
// tuple-shaped extraction target for path values.
func (c *CompiledRoute) PathBindings() []Binding {
	var out []Binding
	for _, seg := range c.Segments {
		switch s := seg.(type) {
		case *CaptureSegment:
			if s.Binding != nil {
				out = append(out, *s.Binding)
			}
		case *WildcardSegment:
			if s.Binding != nil {
				out = append(out, *s.Binding)
			}
		}
	}
	return out
}

// QueryBindings returns the resolved query bindings in declaration order,
// defining the field order of the ephemeral query record.
func (c *CompiledRoute) QueryBindings() []Binding {
	out := make([]Binding, len(c.QueryParams))
	copy(out, c.QueryParams)
	return out
}

// Remaining returns every original parameter not consumed by path or query
// binding, in original left-to-right order. Each is re-labelled with a
// synthetic collision-free positional name derived from its original index;
// the type is kept unchanged so the parameter can be forwarded verbatim into
// the handler invocation.
func (c *CompiledRoute) Remaining() []Param {
	out := make([]Param, len(c.remaining))
	for i, p := range c.remaining {
		p.Name = fmt.Sprintf("__arg%d", p.Index)
		out[i] = p
	}
	return out
}

// ExtractedNames returns path-bound identifiers in path order followed by
// query-bound identifiers in declared order: the exact argument order a
// forwarding call must use ahead of the remaining parameters.
func (c *CompiledRoute) ExtractedNames() []string {
	var names []string
	for _, b := range c.PathBindings() {
		names = append(names, b.Name)
	}
	for _, b := range c.QueryParams {
		names = append(names, b.Name)
	}
	return names
}

// StateString renders the state type expression as Go source text.
func (c *CompiledRoute) StateString() string {
	return types.ExprString(c.State)
}

// DocLines returns the handler information block attached to generated code.
func (c *CompiledRoute) DocLines() []string {
	return []string{
		"Handler information",
		fmt.Sprintf("  - Method: %s", c.Method.RoutingName()),
		fmt.Sprintf("  - Path:   %s", c.Literal),
		fmt.Sprintf("  - State:  %s", c.StateString()),
	}
}
