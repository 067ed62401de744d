package billy

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
)

// TestFile_Name verifies Name() returns the stored filename.
func TestFile_Name(t *testing.T) {
	bfs := memfs.New()
	bf, err := bfs.Create("stored.txt")
	if err != nil {
		t.Fatalf("Failed to create billy file: %v", err)
	}
	defer func() { _ = bf.Close() }()

	file := &File{file: bf, fs: bfs, name: "dir/as-opened.txt"}
	if got := file.Name(); got != "dir/as-opened.txt" {
		t.Errorf("Name() = %q, want %q", got, "dir/as-opened.txt")
	}
}

// TestFile_ReadWriteSeek verifies the delegating I/O methods.
func TestFile_ReadWriteSeek(t *testing.T) {
	fs := NewMemory()
	f, err := fs.OpenFile("rw.txt", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	seeker := f.(io.Seeker)
	if _, err := seeker.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(buf) != "world" {
		t.Errorf("read after seek = %q, want %q", buf, "world")
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != int64(len("hello world")) {
		t.Errorf("Stat().Size() = %d, want %d", info.Size(), len("hello world"))
	}
}

// TestFile_Sync verifies Sync succeeds on both disk and memory backends.
func TestFile_Sync(t *testing.T) {
	local := NewLocal(WithRoot(t.TempDir()))
	lf, err := local.Create("synced.txt")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := lf.Write([]byte("durable")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := lf.(*File).Sync(); err != nil {
		t.Errorf("LocalFS File.Sync() error = %v", err)
	}
	_ = lf.Close()

	data, err := os.ReadFile(filepath.Join(local.Root(), "synced.txt"))
	if err != nil || string(data) != "durable" {
		t.Errorf("host file = %q, %v; want %q", data, err, "durable")
	}

	mf, err := NewMemory().Create("synced.txt")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer func() { _ = mf.Close() }()
	if err := mf.(*File).Sync(); err != nil {
		t.Errorf("MemoryFS File.Sync() error = %v, want no-op", err)
	}
}
