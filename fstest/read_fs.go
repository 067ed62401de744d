package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// TestReadFSWithConfig tests Open, Stat, ReadDir, ReadFile and Exists.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	content := []byte("test file content")
	if err := filesystem.MkdirAll("testdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/testfile.txt", content, 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/testfile.txt): setup failed: %v", err)
	}

	config.subtests(t, "ReadFS", []subtest{
		{"Open", func(t *testing.T) {
			f, err := filesystem.Open("testdir/testfile.txt")
			if err != nil {
				t.Fatalf("Open: got error %v, want nil", err)
			}
			defer func() { _ = f.Close() }()
			data, err := io.ReadAll(f)
			if err != nil {
				t.Fatalf("ReadAll: got error %v", err)
			}
			if !bytes.Equal(data, content) {
				t.Errorf("Read: got %q, want %q", data, content)
			}
		}},
		{"StatFile", func(t *testing.T) {
			info, err := filesystem.Stat("testdir/testfile.txt")
			if err != nil {
				t.Fatalf("Stat: got error %v, want nil", err)
			}
			if info.IsDir() {
				t.Errorf("Stat: IsDir() = true, want false")
			}
			if info.Size() != int64(len(content)) {
				t.Errorf("Stat: Size() = %d, want %d", info.Size(), len(content))
			}
		}},
		{"StatDir", func(t *testing.T) {
			if config.VirtualDirectories {
				t.Skip("directories are virtual")
			}
			info, err := filesystem.Stat("testdir")
			if err != nil {
				t.Fatalf("Stat(testdir): got error %v, want nil", err)
			}
			if !info.IsDir() {
				t.Errorf("Stat(testdir): IsDir() = false, want true")
			}
		}},
		{"ReadDir", func(t *testing.T) {
			entries, err := filesystem.ReadDir("testdir")
			if err != nil {
				t.Fatalf("ReadDir: got error %v, want nil", err)
			}
			if len(entries) != 1 || entries[0].Name() != "testfile.txt" || entries[0].IsDir() {
				t.Errorf("ReadDir: got %v, want single file testfile.txt", entries)
			}
		}},
		{"ReadFile", func(t *testing.T) {
			data, err := filesystem.ReadFile("testdir/testfile.txt")
			if err != nil {
				t.Fatalf("ReadFile: got error %v, want nil", err)
			}
			if !bytes.Equal(data, content) {
				t.Errorf("ReadFile: got %q, want %q", data, content)
			}
		}},
		{"NotExist", func(t *testing.T) {
			if _, err := filesystem.Open("nonexistent"); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Open(nonexistent): got error %v, want fs.ErrNotExist", err)
			}
			if _, err := filesystem.Stat("nonexistent"); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Stat(nonexistent): got error %v, want fs.ErrNotExist", err)
			}
			if _, err := filesystem.ReadFile("nonexistent"); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("ReadFile(nonexistent): got error %v, want fs.ErrNotExist", err)
			}
		}},
		{"Exists", func(t *testing.T) {
			cases := map[string]bool{
				"testdir/testfile.txt": true,
				"nonexistent":          false,
			}
			if !config.VirtualDirectories {
				cases["testdir"] = true
			}
			for name, want := range cases {
				got, err := filesystem.Exists(name)
				if err != nil {
					t.Errorf("Exists(%q): got error %v, want nil", name, err)
					continue
				}
				if got != want {
					t.Errorf("Exists(%q) = %v, want %v", name, got, want)
				}
			}
		}},
	})
}
