package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/go/fsutil/core"
)

// LocalFS wraps billy's osfs for disk-backed access.
type LocalFS struct {
	*base
	root string
}

// MemoryFS wraps billy's memfs for in-memory access.
type MemoryFS struct {
	*base
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot roots a LocalFS at dir instead of "/". Relative directories are
// made absolute against the working directory at construction time.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// NewLocal creates a go-billy-backed local filesystem.
func NewLocal(opts ...Option) *LocalFS {
	cfg := config{root: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}
	root := cfg.root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &LocalFS{
		base: &base{bfs: osfs.New(root)},
		root: root,
	}
}

// NewMemory creates an empty go-billy-backed in-memory filesystem.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{base: &base{bfs: memfs.New()}}
}

// Root returns the host directory the filesystem is rooted at.
func (lfs *LocalFS) Root() string {
	return lfs.root
}

// Path maps name to its host path below the filesystem root.
func (lfs *LocalFS) Path(name string) (string, bool) {
	name = normalize(name)
	if name == "." || name == "/" {
		return lfs.root, true
	}
	return filepath.Join(lfs.root, filepath.FromSlash(name)), true
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// base holds the operations shared by every billy backend.
type base struct {
	bfs billy.Filesystem
}

// Unwrap returns the underlying billy.Filesystem for go-git integration.
func (b *base) Unwrap() billy.Filesystem {
	return b.bfs
}

// normalize converts paths to use forward slashes consistently.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Open opens the named file for reading.
func (b *base) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return info, nil
}

// ReadDir returns the entries of the named directory sorted by filename.
func (b *base) ReadDir(name string) ([]fs.DirEntry, error) {
	name = normalize(name)
	infos, err := b.bfs.ReadDir(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (b *base) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, pathError("readfile", name, err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *base) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (b *base) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.Create(name)
	if err != nil {
		return nil, pathError("create", name, err)
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (b *base) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = normalize(name)
	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return pathError("writefile", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return pathError("writefile", name, err)
	}
	return f.Close()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	path = normalize(path)
	if err := b.bfs.MkdirAll(path, perm); err != nil {
		return pathError("mkdirall", path, err)
	}
	return nil
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	name = normalize(name)
	if err := b.bfs.Remove(name); err != nil {
		return pathError("remove", name, err)
	}
	return nil
}

// RemoveAll removes path and any children it contains.
func (b *base) RemoveAll(path string) error {
	path = normalize(path)
	info, err := b.bfs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return pathError("removeall", path, err)
	}

	if info.IsDir() {
		entries, err := b.bfs.ReadDir(path)
		if err != nil {
			return pathError("removeall", path, err)
		}
		for _, entry := range entries {
			if err := b.RemoveAll(normalize(filepath.Join(path, entry.Name()))); err != nil {
				return err
			}
		}
	}

	return b.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (b *base) Rename(oldpath, newpath string) error {
	oldpath = normalize(oldpath)
	if err := b.bfs.Rename(oldpath, normalize(newpath)); err != nil {
		return pathError("rename", oldpath, err)
	}
	return nil
}

// pathError wraps err in an *fs.PathError unless it already is one.
func pathError(op, name string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// Compile-time interface checks.
var (
	_ core.FS     = (*LocalFS)(nil)
	_ core.FS     = (*MemoryFS)(nil)
	_ core.Pather = (*LocalFS)(nil)
)
