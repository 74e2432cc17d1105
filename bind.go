package routec

import "go/ast"

// CompiledRoute is the immutable, fully resolved result of binding a parsed
// route against a handler's parameter list.
type CompiledRoute struct {
	// Method is the route's HTTP method.
	Method Method

	// Segments is the ordered path segment sequence; capture and wildcard
	// segments carry their resolved bindings.
	Segments []Segment

	// QueryParams holds the resolved query bindings in declaration order.
	QueryParams []Binding

	// State is the state type expression, explicit or inferred. Never nil:
	// routes with no explicit clause and no State-shaped parameter get an
	// empty struct type.
	State ast.Expr

	// Literal is the path+query literal the route was parsed from.
	Literal string

	// remaining holds unconsumed parameters in original order.
	remaining []Param
}

// Compile resolves every capture, wildcard, and query name of route against
// the handler parameters, consuming each matched parameter from the pool.
//
// Path segments resolve first, in path order, then query names in declared
// order. A name appearing in both sections binds to the path; the query
// lookup then finds the pool entry already consumed and fails. Any unresolved
// name aborts the compilation with a *BindingError; there is no partial
// result.
func Compile(route *Route, params []Param) (*CompiledRoute, error) {
	pool := buildPool(params)
	consumed := make(map[int]bool)

	segments := make([]Segment, len(route.Segments))
	for i, seg := range route.Segments {
		switch s := seg.(type) {
		case *CaptureSegment:
			b, ok := take(pool, consumed, s.Name)
			if !ok {
				return nil, &BindingError{Kind: BindPath, Name: s.Name, Offset: s.off}
			}
			segments[i] = &CaptureSegment{Name: s.Name, Binding: b, off: s.off}
		case *WildcardSegment:
			b, ok := take(pool, consumed, s.Name)
			if !ok {
				return nil, &BindingError{Kind: BindPath, Name: s.Name, Offset: s.off}
			}
			segments[i] = &WildcardSegment{Name: s.Name, Binding: b, off: s.off}
		default:
			segments[i] = seg
		}
	}

	queryParams := make([]Binding, 0, len(route.QueryNames))
	for i, name := range route.QueryNames {
		b, ok := take(pool, consumed, name)
		if !ok {
			off := 0
			if i < len(route.queryOff) {
				off = route.queryOff[i]
			}
			return nil, &BindingError{Kind: BindQuery, Name: name, Offset: off}
		}
		queryParams = append(queryParams, *b)
	}

	// State resolution reads the original parameter list, so consumption
	// order never affects it.
	state := route.ExplicitState
	if state == nil {
		state = inferStateType(params)
	}

	var remaining []Param
	for _, p := range params {
		if !consumed[p.Index] {
			remaining = append(remaining, p)
		}
	}

	return &CompiledRoute{
		Method:      route.Method,
		Segments:    segments,
		QueryParams: queryParams,
		State:       state,
		Literal:     route.Literal,
		remaining:   remaining,
	}, nil
}

// take removes name from the pool, recording which original parameter was
// consumed. A miss leaves the pool untouched so the caller can raise the
// distinguishing BindingError.
func take(pool map[string]Param, consumed map[int]bool, name string) (*Binding, bool) {
	p, ok := pool[name]
	if !ok {
		return nil, false
	}
	delete(pool, name)
	consumed[p.Index] = true
	return &Binding{Name: p.Name, Type: p.Type}, true
}

// inferStateType scans the parameter types, in declaration order, for the
// first written as a one-argument instantiation of a type named State and
// returns its argument. The match is syntactic, over the written type
// expression; no type resolution is involved.
func inferStateType(params []Param) ast.Expr {
	for _, p := range params {
		if arg := stateArgument(p.Type); arg != nil {
			return arg
		}
	}
	return &ast.StructType{Fields: &ast.FieldList{}}
}

// stateArgument returns T when expr is written State[T] or pkg.State[T].
// Multi-argument instantiations never match; the wrapper arity must be
// exactly one.
func stateArgument(expr ast.Expr) ast.Expr {
	ix, ok := expr.(*ast.IndexExpr)
	if !ok {
		return nil
	}
	switch x := ix.X.(type) {
	case *ast.Ident:
		if x.Name == "State" {
			return ix.Index
		}
	case *ast.SelectorExpr:
		if x.Sel.Name == "State" {
			return ix.Index
		}
	}
	return nil
}
