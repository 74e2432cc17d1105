package routec

import (
	"go/ast"
	"go/parser"
	"go/types"
	"testing"
)

// paramsOf parses a parameter list written as Go source, e.g.
// "id uint32, amount *uint32", into the analyzer's ordered slot slice.
func paramsOf(t *testing.T, list string) []Param {
	t.Helper()
	expr, err := parser.ParseExpr("func(" + list + ")")
	if err != nil {
		t.Fatalf("parse parameter list %q: %v", list, err)
	}
	return Params(expr.(*ast.FuncType).Params)
}

// mustParseRoute parses route attribute text, failing the test on error.
func mustParseRoute(t *testing.T, text string) *Route {
	t.Helper()
	route, err := ParseRoute(text)
	if err != nil {
		t.Fatalf("ParseRoute(%q): %v", text, err)
	}
	return route
}

// mustCompile parses and binds a route against a parameter list.
func mustCompile(t *testing.T, routeText, paramList string) *CompiledRoute {
	t.Helper()
	compiled, err := Compile(mustParseRoute(t, routeText), paramsOf(t, paramList))
	if err != nil {
		t.Fatalf("Compile(%q, %q): %v", routeText, paramList, err)
	}
	return compiled
}

// typeString renders a type expression for assertions.
func typeString(e ast.Expr) string {
	if e == nil {
		return "<nil>"
	}
	return types.ExprString(e)
}
