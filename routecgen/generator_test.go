package routecgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/routec/routec/routecgen/sink"
)

// writeModule lays out a throwaway module for package loading.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("GOWORK", "off")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module test\n\ngo 1.21\n"), 0644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerate(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route GET "/item/:id?amount"
func getItem(id uint32, amount *uint32) error {
	_ = id
	_ = amount
	return nil
}

//routec:route POST "/item"
func createItem(body string) error {
	_ = body
	return nil
}
`,
	})

	ms := sink.NewMemorySink()
	if err := FromPackage(".").Dir(dir).Generate(context.Background(), ms); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := string(ms.Get(DefaultFileName))
	if out == "" {
		t.Fatalf("no %s written", DefaultFileName)
	}
	for _, want := range []string{
		"// Code generated by routec. DO NOT EDIT.",
		"package api",
		"func GetItemTypedRoute(",
		"func CreateItemTypedRoute(__arg0 string)",
		`return "get", "/item/{id}", h`,
		`return "post", "/item", h`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated file missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateQualifiedTypeImports(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

import "time"

//routec:route GET "/wait/:d"
func wait(d time.Duration) error {
	_ = d
	return nil
}
`,
	})

	ms := sink.NewMemorySink()
	if err := FromPackage(".").Dir(dir).Generate(context.Background(), ms); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := string(ms.Get(DefaultFileName))
	for _, want := range []string{
		"\t\"time\"\n",
		"D time.Duration",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated file missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateFileName(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route GET "/ping"
func ping() {}
`,
	})

	ms := sink.NewMemorySink()
	err := FromPackage(".").Dir(dir).FileName("custom_gen.go").Generate(context.Background(), ms)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ms.Get("custom_gen.go") == nil {
		t.Error("custom file name not used")
	}
	if ms.Get(DefaultFileName) != nil {
		t.Error("default file name used despite override")
	}
}

func TestGenerateToDir(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route GET "/ping"
func ping() {}
`,
	})
	out := t.TempDir()

	if err := FromPackage(".").Dir(dir).ToDir(out); err != nil {
		t.Fatalf("ToDir: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(out, DefaultFileName))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.Contains(string(content), "func PingTypedRoute(") {
		t.Errorf("generated file missing constructor:\n%s", content)
	}
}

func TestGenerateNoDirectives(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

func plain() {}
`,
	})

	err := FromPackage(".").Dir(dir).Check()
	if err == nil {
		t.Fatal("expected error for package without directives")
	}
	if !strings.Contains(err.Error(), "no //routec:route directives") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateBindingError(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route GET "/item/:id"
func getItem(other string) {
	_ = other
}
`,
	})

	err := FromPackage(".").Dir(dir).Check()
	if err == nil {
		t.Fatal("expected binding error")
	}
	if !strings.Contains(err.Error(), "path parameter `id` not found in function arguments") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(err.Error(), "getItem") {
		t.Errorf("error does not name the handler: %v", err)
	}
}

func TestGenerateSyntaxError(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route GET "item"
func getItem() {}
`,
	})

	err := FromPackage(".").Dir(dir).Check()
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(err.Error(), "route path must begin with `/`") {
		t.Errorf("error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"handlers.go": `package api

//routec:route PUT "/item/:id"
func updateItem(id uint32) error {
	_ = id
	return nil
}
`,
	})

	if err := FromPackage(".").Dir(dir).Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	// Check must not write anything next to the sources.
	if _, err := os.Stat(filepath.Join(dir, DefaultFileName)); !os.IsNotExist(err) {
		t.Error("check mode wrote a file")
	}
}
