package billy

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fstest"
)

// TestLocalFS_Constructor verifies NewLocal roots at "/" by default.
func TestLocalFS_Constructor(t *testing.T) {
	fs := NewLocal()
	if fs.bfs == nil {
		t.Fatal("NewLocal() bfs field is nil")
	}
	if fs.Root() != string(filepath.Separator) {
		t.Errorf("NewLocal().Root() = %q, want %q", fs.Root(), string(filepath.Separator))
	}
}

// TestLocalFS_WithRoot verifies WithRoot scopes the filesystem.
func TestLocalFS_WithRoot(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocal(WithRoot(dir))
	if fs.Root() != dir {
		t.Errorf("Root() = %q, want %q", fs.Root(), dir)
	}

	if err := fs.WriteFile("scoped.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := NewLocal().Stat(filepath.ToSlash(filepath.Join(dir, "scoped.txt"))); err != nil {
		t.Errorf("file written through WithRoot not visible at host path: %v", err)
	}
}

// TestLocalFS_Path verifies Path joins names onto the root.
func TestLocalFS_Path(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocal(WithRoot(dir))

	tests := []struct {
		name string
		want string
	}{
		{".", dir},
		{"a.txt", filepath.Join(dir, "a.txt")},
		{"a/b/c.txt", filepath.Join(dir, "a", "b", "c.txt")},
		{"a/./b/../c.txt", filepath.Join(dir, "a", "c.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fs.Path(tt.name)
			if !ok {
				t.Fatalf("Path(%q) reported no path", tt.name)
			}
			if got != tt.want {
				t.Errorf("Path(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// TestMemoryFS_NotPather verifies memory filesystems expose no host paths.
func TestMemoryFS_NotPather(t *testing.T) {
	var fs core.FS = NewMemory()
	if _, ok := fs.(core.Pather); ok {
		t.Error("MemoryFS implements core.Pather, want no host path capability")
	}
}

// TestFS_Type verifies the reported filesystem types.
func TestFS_Type(t *testing.T) {
	if got := NewLocal().Type(); got != core.FSTypeLocal {
		t.Errorf("LocalFS.Type() = %s, want %s", got, core.FSTypeLocal)
	}
	if got := NewMemory().Type(); got != core.FSTypeMemory {
		t.Errorf("MemoryFS.Type() = %s, want %s", got, core.FSTypeMemory)
	}
}

// TestMemoryFS_Unwrap verifies Unwrap returns a usable billy.Filesystem.
func TestMemoryFS_Unwrap(t *testing.T) {
	fs := NewMemory()
	f, err := fs.Unwrap().Create("raw.txt")
	if err != nil {
		t.Fatalf("Unwrap().Create() error = %v", err)
	}
	_ = f.Close()

	if ok, err := fs.Exists("raw.txt"); err != nil || !ok {
		t.Errorf("Exists(raw.txt) = %v, %v; want true, nil", ok, err)
	}
}

// TestMemoryFS_ErrorsArePathErrors verifies failures carry the operation and name.
func TestMemoryFS_ErrorsArePathErrors(t *testing.T) {
	fs := NewMemory()

	_, err := fs.ReadFile("missing/file.txt")
	var pe *iofs.PathError
	if !errors.As(err, &pe) {
		t.Fatalf("ReadFile() error = %T, want *fs.PathError", err)
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}
	if err := fs.Remove("missing"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Remove() error = %v, want fs.ErrNotExist", err)
	}
}

// TestNormalize verifies path normalization.
func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":              ".",
		"a/b/../c":      "a/c",
		"./a//b/":       "a/b",
		"/abs/path.txt": "/abs/path.txt",
	}
	for in, want := range tests {
		if got := normalize(in); got != want {
			t.Errorf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestLocalFS runs the fstest conformance suite against LocalFS.
func TestLocalFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS {
		return NewLocal(WithRoot(t.TempDir()))
	})
}

// TestMemoryFS runs the fstest conformance suite against MemoryFS.
func TestMemoryFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS {
		return NewMemory()
	})
}
