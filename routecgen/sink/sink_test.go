package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid simple path",
			path: "routes_gen.go",
		},
		{
			name: "valid nested path",
			path: "internal/api/routes_gen.go",
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "empty",
		},
		{
			name:    "absolute path",
			path:    "/tmp/routes_gen.go",
			wantErr: true,
			errMsg:  "absolute paths not allowed",
		},
		{
			name:    "windows drive prefix",
			path:    `C:\routes_gen.go`,
			wantErr: true,
			errMsg:  "absolute paths not allowed",
		},
		{
			name:    "path traversal",
			path:    "../routes_gen.go",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "embedded traversal",
			path:    "a/../routes_gen.go",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "unclean path",
			path:    "./routes_gen.go",
			wantErr: true,
			errMsg:  "not clean",
		},
		{
			name:    "double slash",
			path:    "a//routes_gen.go",
			wantErr: true,
			errMsg:  "not clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidatePath(%q) = nil, want error", tt.path)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePath(%q) = %v, want nil", tt.path, err)
			}
		})
	}
}

func TestFilesystemSinkWrite(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)

	content := []byte("package api\n")
	if err := s.WriteFile(context.Background(), "gen/routes_gen.go", content); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "gen", "routes_gen.go"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}

	// No temp files should be left behind.
	entries, err := os.ReadDir(filepath.Join(root, "gen"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".routec-") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}

func TestFilesystemSinkOverwriteReplaces(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)

	if err := s.WriteFile(context.Background(), "routes_gen.go", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(context.Background(), "routes_gen.go", []byte("b")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(root, "routes_gen.go"))
	if string(got) != "b" {
		t.Errorf("content = %q, want %q", got, "b")
	}
}

func TestFilesystemSinkCancelledContext(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.WriteFile(ctx, "routes_gen.go", []byte("a")); err == nil {
		t.Fatal("WriteFile with cancelled context = nil, want error")
	}
	if _, err := os.Stat(filepath.Join(root, "routes_gen.go")); !os.IsNotExist(err) {
		t.Error("file was written despite cancelled context")
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()

	if err := s.WriteFile(context.Background(), "routes_gen.go", []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := s.Get("routes_gen.go"); string(got) != "x" {
		t.Errorf("Get = %q, want %q", got, "x")
	}
	if got := s.Get("missing.go"); got != nil {
		t.Errorf("Get(missing) = %q, want nil", got)
	}

	files := s.Files()
	if len(files) != 1 {
		t.Fatalf("Files() has %d entries, want 1", len(files))
	}

	// Mutating the returned copy must not affect the stored content.
	files["routes_gen.go"][0] = 'z'
	if got := s.Get("routes_gen.go"); string(got) != "x" {
		t.Errorf("stored content mutated through Files() copy: %q", got)
	}
}

func TestMemorySinkRejectsBadPath(t *testing.T) {
	s := NewMemorySink()
	if err := s.WriteFile(context.Background(), "../escape.go", []byte("x")); err == nil {
		t.Fatal("WriteFile with traversal path = nil, want error")
	}
}
