// Package directive parses routec route directives from Go source files.
//
// Directives are line comments in the form:
//
//	//routec:route GET "/item/:id?amount&offset"
//	//routec:route POST "/submit" with AppState
//
// A route directive marks the handler function declared immediately below it.
// The attribute text after the marker is handed to the routec compiler
// unchanged; this package only locates directives and pairs them with their
// function declarations.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

const marker = "//routec:"

// IsDirective reports whether a comment line is a routec directive.
// The text must include the leading "//".
func IsDirective(text string) bool {
	return strings.HasPrefix(text, marker)
}

// Directive represents one parsed route directive.
type Directive struct {
	// RouteText is the attribute text following "routec:route",
	// e.g. `GET "/item/:id" with AppState`.
	RouteText string

	// FuncName is the name of the handler function the directive precedes.
	FuncName string

	// Decl is the handler's declaration, with doc comments attached.
	Decl *ast.FuncDecl

	// Imports maps the local qualifier of each import in the handler's file
	// to its import path, so generated code can re-import the packages named
	// in the handler's parameter types.
	Imports map[string]string

	// Pos is the source location of the directive comment.
	Pos token.Position
}

// Result contains all route directives found in a package.
type Result struct {
	// Routes holds the directives in file, then declaration order.
	Routes []Directive

	// PackageName is the package's declared name.
	PackageName string

	// PackagePath is the import path of the parsed package.
	PackagePath string

	// Dir is the directory containing the package.
	Dir string
}

// Parse scans a Go package for routec directives.
//
// The pattern follows go command semantics: "." for the current directory, an
// import path, or a directory path.
//
// Returns an error if the package cannot be loaded, a directive is not
// immediately followed by a package-level function declaration, or an unknown
// //routec: directive is found.
func Parse(pattern string) (*Result, error) {
	return ParseDir(pattern, "")
}

// ParseDir is like Parse but allows specifying a working directory.
// If dir is empty, the current directory is used.
func ParseDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackageName: pkg.Name,
		PackagePath: pkg.PkgPath,
	}

	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, f := range pkg.Syntax {
		directives, err := parseFile(pkg.Fset, f)
		if err != nil {
			return nil, err
		}
		result.Routes = append(result.Routes, directives...)
	}

	return result, nil
}

// FileImports maps the local qualifier of each import in f to its path.
// Blank and dot imports carry no usable qualifier and are skipped; unnamed
// imports fall back to the last path element.
func FileImports(f *ast.File) map[string]string {
	out := make(map[string]string, len(f.Imports))
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		out[name] = path
	}
	return out
}

// parseFile extracts directives from a single file and matches them to the
// function declarations that follow them.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	type pending struct {
		routeText string
		pos       token.Position
	}
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !IsDirective(c.Text) {
				continue
			}

			text := strings.TrimPrefix(c.Text, marker)
			pos := fset.Position(c.Pos())

			verb, rest, _ := strings.Cut(text, " ")
			if verb != "route" {
				return nil, fmt.Errorf("%s: unknown directive //routec:%s", pos, verb)
			}
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return nil, fmt.Errorf("%s: //routec:route has no route attribute", pos)
			}

			commentToDirective[cg.End()] = pending{
				routeText: rest,
				pos:       pos,
			}
		}
	}

	imports := FileImports(f)

	var directives []Directive
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		p, ok := commentToDirective[fn.Doc.End()]
		if !ok {
			continue
		}
		if fn.Recv != nil {
			return nil, fmt.Errorf("%s: //routec:route must be on a package-level function, not a method", p.pos)
		}
		directives = append(directives, Directive{
			RouteText: p.routeText,
			FuncName:  fn.Name.Name,
			Decl:      fn,
			Imports:   imports,
			Pos:       p.pos,
		})
		delete(commentToDirective, fn.Doc.End())
	}

	for _, p := range commentToDirective {
		return nil, fmt.Errorf("%s: //routec:route directive must be followed by a function declaration", p.pos)
	}

	return directives, nil
}
