package fstest

import (
	"bytes"
	"os"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// TestWriteFSWithConfig tests Create, OpenFile, WriteFile and MkdirAll.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	config.subtests(t, "WriteFS", []subtest{
		{"CreateAndWrite", func(t *testing.T) {
			f, err := filesystem.Create("created.txt")
			if err != nil {
				t.Fatalf("Create: got error %v, want nil", err)
			}
			if _, err := f.Write([]byte("created")); err != nil {
				t.Fatalf("Write: got error %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close: got error %v", err)
			}
			expectContent(t, filesystem, "created.txt", []byte("created"))
		}},
		{"WriteFileTruncates", func(t *testing.T) {
			if err := filesystem.WriteFile("trunc.txt", []byte("a much longer payload"), 0o644); err != nil {
				t.Fatalf("WriteFile: got error %v", err)
			}
			if err := filesystem.WriteFile("trunc.txt", []byte("short"), 0o644); err != nil {
				t.Fatalf("WriteFile (overwrite): got error %v", err)
			}
			expectContent(t, filesystem, "trunc.txt", []byte("short"))
		}},
		{"OpenFileWrite", func(t *testing.T) {
			f, err := filesystem.OpenFile("opened.txt", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				t.Fatalf("OpenFile: got error %v, want nil", err)
			}
			if _, err := f.Write([]byte("opened")); err != nil {
				t.Fatalf("Write: got error %v", err)
			}
			if s, ok := f.(core.Syncer); ok {
				if err := s.Sync(); err != nil {
					t.Errorf("Sync: got error %v", err)
				}
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close: got error %v", err)
			}
			expectContent(t, filesystem, "opened.txt", []byte("opened"))
		}},
		{"MkdirAll", func(t *testing.T) {
			if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
				t.Fatalf("MkdirAll: got error %v", err)
			}
			if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
				t.Errorf("MkdirAll (again): got error %v, want nil", err)
			}
			if err := filesystem.WriteFile("a/b/c/leaf.txt", []byte("leaf"), 0o644); err != nil {
				t.Fatalf("WriteFile in nested dir: got error %v", err)
			}
			expectContent(t, filesystem, "a/b/c/leaf.txt", []byte("leaf"))
		}},
	})
}

func expectContent(t *testing.T, filesystem core.FS, name string, want []byte) {
	t.Helper()
	got, err := filesystem.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v", name, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile(%q) = %q, want %q", name, got, want)
	}
}
