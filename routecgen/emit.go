package routecgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/types"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/routec/routec"
	"github.com/routec/routec/internal/directive"
)

const qparamImport = "github.com/routec/routec/qparam"

// emitter renders the forwarding code for one package's compiled routes.
// The route blocks are accumulated first; the file header is composed last
// so that the import list reflects what the blocks actually use.
type emitter struct {
	body       bytes.Buffer
	needQParam bool

	// imports maps the path of each package named by a qualified type
	// expression carried into the generated file to the qualifier the
	// handler's file used for it.
	imports map[string]string
}

// noteImports records the import behind every package qualifier appearing in
// a type expression that will be rendered into the generated file.
// fileImports is the handler file's qualifier → path table.
func (e *emitter) noteImports(expr ast.Expr, fileImports map[string]string) {
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			if path, ok := fileImports[id.Name]; ok {
				if e.imports == nil {
					e.imports = make(map[string]string)
				}
				e.imports[path] = id.Name
			}
		}
		return true
	})
}

// emitRoute appends the record types and the typed-route constructor for a
// single handler.
func (e *emitter) emitRoute(d directive.Directive, c *routec.CompiledRoute) {
	fn := d.FuncName
	path := c.PathBindings()
	query := c.QueryBindings()
	remaining := c.Remaining()

	for _, b := range path {
		e.noteImports(b.Type, d.Imports)
	}
	for _, b := range query {
		e.noteImports(b.Type, d.Imports)
	}
	for _, p := range remaining {
		e.noteImports(p.Type, d.Imports)
	}
	if tp := d.Decl.Type.TypeParams; tp != nil {
		for _, f := range tp.List {
			e.noteImports(f.Type, d.Imports)
		}
	}

	if len(path) > 0 {
		e.emitRecord(fn+"PathParams", path)
	}
	if len(query) > 0 {
		e.emitRecord(fn+"QueryParams", query)
	}

	e.emitDoc(d.Decl.Doc, c)

	decl, inst := typeParamLists(d.Decl.Type.TypeParams)
	fmt.Fprintf(&e.body, "func %sTypedRoute%s(", exportIdent(fn), decl)
	for i, p := range remaining {
		if i > 0 {
			e.body.WriteString(", ")
		}
		fmt.Fprintf(&e.body, "%s %s", p.Name, types.ExprString(p.Type))
	}
	e.body.WriteString(") (method, path string, h func(http.ResponseWriter, *http.Request) error) {\n")
	e.body.WriteString("\th = func(w http.ResponseWriter, r *http.Request) error {\n")

	if len(path) > 0 {
		e.needQParam = true
		fmt.Fprintf(&e.body, "\t\tvar pv %sPathParams\n", fn)
		names := make([]string, len(path))
		for i, b := range path {
			names[i] = fmt.Sprintf("%q", b.Name)
		}
		fmt.Fprintf(&e.body, "\t\tif err := qparam.DecodePath(r, &pv, %s); err != nil {\n", strings.Join(names, ", "))
		e.body.WriteString("\t\t\treturn err\n\t\t}\n")
	}
	if len(query) > 0 {
		e.needQParam = true
		fmt.Fprintf(&e.body, "\t\tvar qv %sQueryParams\n", fn)
		e.body.WriteString("\t\tif err := qparam.DecodeQuery(r, &qv); err != nil {\n")
		e.body.WriteString("\t\t\treturn err\n\t\t}\n")
	}

	// Extracted values first, in path-then-query order, then the remaining
	// parameters forwarded verbatim.
	var args []string
	for _, b := range path {
		args = append(args, "pv."+exportIdent(b.Name))
	}
	for _, b := range query {
		args = append(args, "qv."+exportIdent(b.Name))
	}
	for _, p := range remaining {
		args = append(args, p.Name)
	}

	call := fmt.Sprintf("%s%s(%s)", fn, inst, strings.Join(args, ", "))
	if soleErrorResult(d.Decl.Type) {
		fmt.Fprintf(&e.body, "\t\treturn %s\n", call)
	} else {
		fmt.Fprintf(&e.body, "\t\t%s\n\t\treturn nil\n", call)
	}
	e.body.WriteString("\t}\n")
	fmt.Fprintf(&e.body, "\treturn %q, %q, h\n", c.Method.RoutingName(), c.Path())
	e.body.WriteString("}\n\n")
}

// emitRecord writes one decoding record type. Field names are exported forms
// of the parameter names; the schema tag carries the wire name.
func (e *emitter) emitRecord(name string, bindings []routec.Binding) {
	fmt.Fprintf(&e.body, "type %s struct {\n", name)
	for _, b := range bindings {
		fmt.Fprintf(&e.body, "\t%s %s `schema:%q`\n", exportIdent(b.Name), types.ExprString(b.Type), b.Name)
	}
	e.body.WriteString("}\n\n")
}

// emitDoc carries the handler's own doc comment over to the constructor,
// minus any directive lines, and appends the route summary block.
func (e *emitter) emitDoc(doc *ast.CommentGroup, c *routec.CompiledRoute) {
	wrote := false
	if doc != nil {
		for _, comment := range doc.List {
			if directive.IsDirective(comment.Text) {
				continue
			}
			e.body.WriteString(comment.Text)
			e.body.WriteByte('\n')
			wrote = true
		}
	}
	if wrote {
		e.body.WriteString("//\n")
	}
	for _, line := range c.DocLines() {
		e.body.WriteString("// ")
		e.body.WriteString(line)
		e.body.WriteByte('\n')
	}
}

// file assembles the complete generated source and gofmts it.
func (e *emitter) file(pkgName string) ([]byte, error) {
	needed := map[string]string{"net/http": ""}
	for p, name := range e.imports {
		needed[p] = name
	}
	if e.needQParam {
		needed[qparamImport] = ""
	}
	var std, ext []string
	for p := range needed {
		root := p
		if i := strings.IndexByte(p, '/'); i >= 0 {
			root = p[:i]
		}
		if strings.Contains(root, ".") {
			ext = append(ext, p)
		} else {
			std = append(std, p)
		}
	}
	sort.Strings(std)
	sort.Strings(ext)

	// An import keeps its alias only when the handler's qualifier differs
	// from the path's last element.
	writeImport := func(out *bytes.Buffer, p string) {
		name := needed[p]
		base := p
		if i := strings.LastIndex(p, "/"); i >= 0 {
			base = p[i+1:]
		}
		if name != "" && name != base {
			fmt.Fprintf(out, "\t%s %q\n", name, p)
			return
		}
		fmt.Fprintf(out, "\t%q\n", p)
	}

	var out bytes.Buffer
	out.WriteString("// Code generated by routec. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", pkgName)
	out.WriteString("import (\n")
	for _, p := range std {
		writeImport(&out, p)
	}
	if len(std) > 0 && len(ext) > 0 {
		out.WriteByte('\n')
	}
	for _, p := range ext {
		writeImport(&out, p)
	}
	out.WriteString(")\n\n")
	out.Write(e.body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

// typeParamLists renders a handler's type parameter list twice: once as the
// declaration to copy onto the constructor, once as the explicit
// instantiation for the forwarding call.
func typeParamLists(tp *ast.FieldList) (decl, inst string) {
	if tp == nil || len(tp.List) == 0 {
		return "", ""
	}
	var decls, names []string
	for _, f := range tp.List {
		ns := make([]string, len(f.Names))
		for i, n := range f.Names {
			ns[i] = n.Name
		}
		names = append(names, ns...)
		decls = append(decls, strings.Join(ns, ", ")+" "+types.ExprString(f.Type))
	}
	return "[" + strings.Join(decls, ", ") + "]", "[" + strings.Join(names, ", ") + "]"
}

// soleErrorResult reports whether the handler returns exactly one value of
// type error, in which case the wrapper propagates it.
func soleErrorResult(ft *ast.FuncType) bool {
	if ft.Results == nil || len(ft.Results.List) != 1 {
		return false
	}
	f := ft.Results.List[0]
	if len(f.Names) > 1 {
		return false
	}
	id, ok := f.Type.(*ast.Ident)
	return ok && id.Name == "error"
}

// commonInitialisms are parameter names whose exported field form is the
// all-caps initialism rather than a capitalized word.
var commonInitialisms = map[string]string{
	"api":  "API",
	"db":   "DB",
	"html": "HTML",
	"http": "HTTP",
	"id":   "ID",
	"ip":   "IP",
	"json": "JSON",
	"sql":  "SQL",
	"uid":  "UID",
	"uri":  "URI",
	"url":  "URL",
	"uuid": "UUID",
}

func exportIdent(name string) string {
	if up, ok := commonInitialisms[name]; ok {
		return up
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
