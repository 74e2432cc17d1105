package routec

import "go/ast"

// Param is one handler parameter: its identifier, type expression, and
// original position in the declaration.
type Param struct {
	// Name is the parameter identifier, or "" when the parameter is not
	// bound to a simple name (unnamed, or the blank identifier). Such
	// parameters are never binding candidates but keep their position for
	// the remaining view.
	Name string

	// Type is the parameter's type expression.
	Type ast.Expr

	// Index is the parameter's zero-based position in the original
	// declaration.
	Index int
}

// Params flattens a parameter field list into an ordered parameter slice.
// A field declaring n names yields n entries sharing the field's type.
func Params(fields *ast.FieldList) []Param {
	if fields == nil {
		return nil
	}
	var params []Param
	idx := 0
	for _, f := range fields.List {
		if len(f.Names) == 0 {
			params = append(params, Param{Type: f.Type, Index: idx})
			idx++
			continue
		}
		for _, n := range f.Names {
			name := n.Name
			if name == "_" {
				name = ""
			}
			params = append(params, Param{Name: name, Type: f.Type, Index: idx})
			idx++
		}
	}
	return params
}

// FuncParams extracts the ordered parameters of a function declaration.
// A method receiver is not part of the parameter list and is never a
// candidate.
func FuncParams(decl *ast.FuncDecl) []Param {
	if decl == nil || decl.Type == nil {
		return nil
	}
	return Params(decl.Type.Params)
}

// buildPool maps each simple parameter name to its slot. The pool is private
// to one compilation; resolution removes entries.
func buildPool(params []Param) map[string]Param {
	pool := make(map[string]Param, len(params))
	for _, p := range params {
		if p.Name == "" {
			continue
		}
		pool[p.Name] = p
	}
	return pool
}
