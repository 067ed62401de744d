package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// TestManageFSWithConfig tests Remove, RemoveAll and Rename.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	mustWrite := func(t *testing.T, name, data string) {
		t.Helper()
		if err := filesystem.WriteFile(name, []byte(data), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}
	expectGone := func(t *testing.T, name string) {
		t.Helper()
		if _, err := filesystem.Stat(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%s): got error %v, want fs.ErrNotExist", name, err)
		}
	}

	config.subtests(t, "ManageFS", []subtest{
		{"RemoveFile", func(t *testing.T) {
			mustWrite(t, "remove.txt", "x")
			if err := filesystem.Remove("remove.txt"); err != nil {
				t.Fatalf("Remove: got error %v", err)
			}
			expectGone(t, "remove.txt")
		}},
		{"RemoveNotExist", func(t *testing.T) {
			err := filesystem.Remove("nonexistent.txt")
			if config.IdempotentDelete {
				if err != nil {
					t.Errorf("Remove(nonexistent.txt): got error %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Remove(nonexistent.txt): got error %v, want fs.ErrNotExist", err)
			}
		}},
		{"RemoveAll", func(t *testing.T) {
			if err := filesystem.MkdirAll("tree/child", 0o755); err != nil {
				t.Fatalf("MkdirAll: setup failed: %v", err)
			}
			mustWrite(t, "tree/a.txt", "a")
			mustWrite(t, "tree/child/b.txt", "b")
			if err := filesystem.RemoveAll("tree"); err != nil {
				t.Fatalf("RemoveAll: got error %v", err)
			}
			expectGone(t, "tree/child/b.txt")
			expectGone(t, "tree")
			if err := filesystem.RemoveAll("tree"); err != nil {
				t.Errorf("RemoveAll on missing path: got error %v, want nil", err)
			}
		}},
		{"RenameFile", func(t *testing.T) {
			mustWrite(t, "old.txt", "moved")
			if err := filesystem.Rename("old.txt", "new.txt"); err != nil {
				t.Fatalf("Rename: got error %v", err)
			}
			expectGone(t, "old.txt")
			expectContent(t, filesystem, "new.txt", []byte("moved"))
		}},
		{"RenameReplaces", func(t *testing.T) {
			mustWrite(t, "src.txt", "new contents")
			mustWrite(t, "dst.txt", "old contents")
			if err := filesystem.Rename("src.txt", "dst.txt"); err != nil {
				t.Fatalf("Rename over existing file: got error %v", err)
			}
			expectGone(t, "src.txt")
			expectContent(t, filesystem, "dst.txt", []byte("new contents"))
		}},
	})
}
