// Package routecgen turns route directives into generated forwarding code.
//
// It scans a Go package for //routec:route directives, compiles each route
// attribute against its handler's signature, and emits one Go file of
// typed-route constructors plus the decoding record types they use.
package routecgen

import (
	"context"
	"fmt"

	"github.com/routec/routec"
	"github.com/routec/routec/internal/directive"
	"github.com/routec/routec/routecgen/sink"
)

// DefaultFileName is the output file name used when none is configured.
const DefaultFileName = "routes_gen.go"

// Config holds the configuration for code generation.
type Config struct {
	// Pattern is the package to scan, in go command syntax
	// ("." for the current directory, an import path, or a directory path).
	Pattern string

	// Dir is the working directory for package loading.
	// Empty means the current directory.
	Dir string

	// FileName is the name of the generated file (default: routes_gen.go).
	FileName string
}

// Generator provides a fluent API for code generation.
// Create with FromPackage() and configure with method chaining.
//
// Example:
//
//	routecgen.FromPackage("./internal/api").
//	    FileName("routes.gen.go").
//	    ToDir("./internal/api")
type Generator struct {
	cfg Config
}

// FromPackage creates a Generator scanning the given package pattern.
// This is the entry point for the fluent API.
func FromPackage(pattern string) *Generator {
	return &Generator{cfg: Config{Pattern: pattern}}
}

// Dir sets the working directory for package loading.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// FileName sets the name of the generated file.
func (g *Generator) FileName(name string) *Generator {
	g.cfg.FileName = name
	return g
}

// ToDir generates the forwarding code and writes it to the given directory.
func (g *Generator) ToDir(out string) error {
	return g.Generate(context.Background(), sink.NewFilesystemSink(out))
}

// ToPackage generates the forwarding code and writes it next to the scanned
// package's sources.
func (g *Generator) ToPackage() error {
	result, src, err := g.build()
	if err != nil {
		return err
	}
	s := sink.NewFilesystemSink(result.Dir)
	return s.WriteFile(context.Background(), g.fileName(), src)
}

// Check compiles every directive in the package without writing output.
// It reports the first directive, grammar, or binding error found.
func (g *Generator) Check() error {
	return g.Generate(context.Background(), sink.NewMemorySink())
}

// Generate scans the package, compiles all routes, and writes the generated
// file to the sink.
func (g *Generator) Generate(ctx context.Context, s sink.OutputSink) error {
	_, src, err := g.build()
	if err != nil {
		return err
	}
	return s.WriteFile(ctx, g.fileName(), src)
}

func (g *Generator) fileName() string {
	if g.cfg.FileName != "" {
		return g.cfg.FileName
	}
	return DefaultFileName
}

func (g *Generator) build() (*directive.Result, []byte, error) {
	result, err := directive.ParseDir(g.cfg.Pattern, g.cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Routes) == 0 {
		return nil, nil, fmt.Errorf("no //routec:route directives found in %s", result.PackagePath)
	}
	src, err := buildFile(result)
	if err != nil {
		return nil, nil, err
	}
	return result, src, nil
}

// buildFile compiles every directive and renders the generated source.
func buildFile(result *directive.Result) ([]byte, error) {
	var e emitter
	for _, d := range result.Routes {
		route, err := routec.ParseRoute(d.RouteText)
		if err != nil {
			return nil, fmt.Errorf("%s: handler %s: %w", d.Pos, d.FuncName, err)
		}
		compiled, err := routec.Compile(route, routec.FuncParams(d.Decl))
		if err != nil {
			return nil, fmt.Errorf("%s: handler %s: %w", d.Pos, d.FuncName, err)
		}
		e.emitRoute(d, compiled)
	}
	return e.file(result.PackageName)
}
